package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	FindByID(id uuid.UUID) (*Quiz, error)
	FindAll() ([]Quiz, error)
	FindActive() ([]Quiz, error)
	Update(q *Quiz) error
	Delete(id uuid.UUID) error

	FindQuestion(id uuid.UUID) (*Question, error)
	CreateQuestion(question *Question) error
	UpdateQuestion(question *Question) error
	DeleteQuestion(id uuid.UUID) error

	CreateOption(option *Option) error

	// WithTx runs fn against a repository bound to one transaction; any error
	// rolls back everything written inside it.
	WithTx(fn func(repo QuizRepository) error) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) FindByID(id uuid.UUID) (*Quiz, error) {
	var q Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&q, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) FindAll() ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindActive() ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Update(q *Quiz) error {
	return r.db.Omit("Questions", "Category", "CreatedBy").Save(q).Error
}

func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

func (r *quizRepository) FindQuestion(id uuid.UUID) (*Question, error) {
	var question Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *quizRepository) CreateQuestion(question *Question) error {
	return r.db.Create(question).Error
}

func (r *quizRepository) UpdateQuestion(question *Question) error {
	return r.db.Omit("Options").Save(question).Error
}

func (r *quizRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&Question{}, "id = ?", id).Error
}

func (r *quizRepository) CreateOption(option *Option) error {
	return r.db.Create(option).Error
}

func (r *quizRepository) WithTx(fn func(repo QuizRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
