package category

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(c *Category) error
	FindByID(id uuid.UUID) (*Category, error)
	FindAll() ([]Category, error)
	Update(c *Category) error
	Delete(id uuid.UUID) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(c *Category) error {
	return r.db.Create(c).Error
}

func (r *categoryRepository) FindByID(id uuid.UUID) (*Category, error) {
	var c Category
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindAll() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(c *Category) error {
	return r.db.Save(c).Error
}

func (r *categoryRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Category{}, "id = ?", id).Error
}
