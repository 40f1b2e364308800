package submission

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(s *Submission) error
	CreateAnswer(a *Answer) error
	UpdateScore(id uuid.UUID, score float64) error
	FindByID(id uuid.UUID) (*Submission, error)
	FindAll() ([]Submission, error)
	FindByUser(userID uuid.UUID) ([]Submission, error)
	Delete(id uuid.UUID) error

	// WithTx runs fn against a repository bound to one transaction; any error
	// rolls back everything written inside it.
	WithTx(fn func(repo SubmissionRepository) error) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(s *Submission) error {
	return r.db.Omit("Answers", "User", "Quiz").Create(s).Error
}

func (r *submissionRepository) CreateAnswer(a *Answer) error {
	return r.db.Create(a).Error
}

func (r *submissionRepository) UpdateScore(id uuid.UUID, score float64) error {
	return r.db.Model(&Submission{}).Where("id = ?", id).Update("score", score).Error
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*Submission, error) {
	var s Submission
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answered_at ASC")
		}).
		First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) FindAll() ([]Submission, error) {
	var submissions []Submission
	if err := r.db.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) FindByUser(userID uuid.UUID) ([]Submission, error) {
	var submissions []Submission
	if err := r.db.
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Submission{}, "id = ?", id).Error
}

func (r *submissionRepository) WithTx(fn func(repo SubmissionRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
