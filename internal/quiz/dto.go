package quiz

import (
	"github.com/google/uuid"
)

type CreateQuizDTO struct {
	Title      string              `json:"title"`
	CategoryID uuid.UUID           `json:"category_id"`
	IsActive   *bool               `json:"is_active"`
	Questions  []CreateQuestionDTO `json:"questions"`
}

type UpdateQuizDTO struct {
	Title      *string    `json:"title"`
	CategoryID *uuid.UUID `json:"category_id"`
	IsActive   *bool      `json:"is_active"`
}

type CreateQuestionDTO struct {
	Text     string   `json:"text"`
	IsActive *bool    `json:"is_active"`
	Options  []string `json:"options"`
}

type UpdateQuestionDTO struct {
	Text     *string `json:"text"`
	IsActive *bool   `json:"is_active"`
}

type AddOptionDTO struct {
	Text string `json:"text"`
}

type SetCorrectOptionDTO struct {
	OptionID *uuid.UUID `json:"option_id"`
}

// PublicOption and PublicQuestion are the taker-facing views: the correct
// option reference is never serialized for USER flows.
type PublicOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type PublicQuestion struct {
	ID      uuid.UUID      `json:"id"`
	Text    string         `json:"text"`
	Options []PublicOption `json:"options"`
}

type PublicQuizResponse struct {
	ID         uuid.UUID        `json:"id"`
	Title      string           `json:"title"`
	CategoryID uuid.UUID        `json:"category_id"`
	Questions  []PublicQuestion `json:"questions,omitempty"`
}

func toPublicQuiz(q *Quiz, withQuestions bool) *PublicQuizResponse {
	resp := &PublicQuizResponse{
		ID:         q.ID,
		Title:      q.Title,
		CategoryID: q.CategoryID,
	}
	if !withQuestions {
		return resp
	}
	for _, question := range q.ActiveQuestions() {
		pq := PublicQuestion{
			ID:      question.ID,
			Text:    question.Text,
			Options: make([]PublicOption, 0, len(question.Options)),
		}
		for _, o := range question.Options {
			pq.Options = append(pq.Options, PublicOption{ID: o.ID, Text: o.Text})
		}
		resp.Questions = append(resp.Questions, pq)
	}
	return resp
}
