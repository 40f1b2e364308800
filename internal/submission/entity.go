package submission

import (
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/quiz"
	"github.com/gabrielmlima/quizhub/internal/user"
)

// Submission is one graded quiz attempt. The score is computed once at
// submission time and never recomputed, even if the quiz's answer key
// changes later. The surrogate primary key deliberately allows several
// attempts by the same taker on the same quiz.
type Submission struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	QuizID      uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz        quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Score       float64   `gorm:"not null" json:"score"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`

	Answers []Answer `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// Answer records one selected option. IsCorrect is derived from the
// question's correct-option reference as it stands when the answer is
// created. At most one answer may exist per (submission, question) pair.
type Answer struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubmissionID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_answers_submission_question" json:"submission_id"`
	QuestionID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_answers_submission_question" json:"question_id"`
	SelectedOptionID uuid.UUID `gorm:"type:uuid;not null" json:"selected_option_id"`
	IsCorrect        bool      `gorm:"not null" json:"is_correct"`
	AnsweredAt       time.Time `gorm:"autoCreateTime" json:"answered_at"`
}
