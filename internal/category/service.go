package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/config"
	"github.com/gabrielmlima/quizhub/internal/policy"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameTaken        = errors.New("category name already taken")
	ErrEmptyName        = errors.New("category name is required")
)

type CategoryService interface {
	Create(ctx context.Context, dto CreateCategoryDTO) (*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo CategoryRepository
}

func NewService(repo CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, dto CreateCategoryDTO) (*Category, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminWriteUserRead(principal, true); err != nil {
		return nil, err
	}

	if dto.Name == "" {
		return nil, ErrEmptyName
	}

	c := Category{Name: dto.Name, IsActive: true}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}

	if err := s.repo.Create(&c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to create category")
		return nil, err
	}

	log.WithField("category_id", c.ID).Info("Category created")
	return &c, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminWriteUserRead(principal, false); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]Category, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminWriteUserRead(principal, false); err != nil {
		return nil, err
	}

	return s.repo.FindAll()
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*Category, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminWriteUserRead(principal, true); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	if dto.Name != nil {
		if *dto.Name == "" {
			return nil, ErrEmptyName
		}
		c.Name = *dto.Name
	}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to update category")
		return nil, err
	}

	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := policy.AdminWriteUserRead(principal, true); err != nil {
		return err
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCategoryNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete category")
		return err
	}

	log.WithField("category_id", id).Info("Category deleted")
	return nil
}
