package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/category"
	"github.com/gabrielmlima/quizhub/internal/user"
)

type Quiz struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string            `gorm:"type:varchar(255);not null" json:"title"`
	CategoryID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    category.Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID uuid.UUID         `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedBy   user.User         `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text            string     `gorm:"type:text;not null" json:"text"`
	CorrectOptionID *uuid.UUID `gorm:"type:uuid" json:"correct_option_id,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:varchar(255);not null" json:"text"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ActiveQuestions filters the loaded question set down to the ones users see
// when taking the quiz.
func (q *Quiz) ActiveQuestions() []Question {
	active := make([]Question, 0, len(q.Questions))
	for _, question := range q.Questions {
		if question.IsActive {
			active = append(active, question)
		}
	}
	return active
}

func (q *Question) HasOption(optionID uuid.UUID) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}
