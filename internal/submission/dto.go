package submission

import (
	"time"

	"github.com/google/uuid"
)

type SubmitDTO struct {
	Answers map[uuid.UUID]uuid.UUID `json:"answers"`
}

type AnswerResponse struct {
	QuestionID       uuid.UUID `json:"question_id"`
	SelectedOptionID uuid.UUID `json:"selected_option_id"`
	IsCorrect        bool      `json:"is_correct"`
}

type SubmissionResponse struct {
	ID          uuid.UUID        `json:"id"`
	QuizID      uuid.UUID        `json:"quiz_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Score       float64          `json:"score"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Answers     []AnswerResponse `json:"answers,omitempty"`
}

func toResponse(s *Submission) *SubmissionResponse {
	resp := &SubmissionResponse{
		ID:          s.ID,
		QuizID:      s.QuizID,
		UserID:      s.UserID,
		Score:       s.Score,
		SubmittedAt: s.SubmittedAt,
	}
	for _, a := range s.Answers {
		resp.Answers = append(resp.Answers, AnswerResponse{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        a.IsCorrect,
		})
	}
	return resp
}
