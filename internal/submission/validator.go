package submission

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/quiz"
)

// OptionMismatch names an (question, option) pair where the selected option
// does not belong to the question's option set.
type OptionMismatch struct {
	QuestionID uuid.UUID `json:"question_id"`
	OptionID   uuid.UUID `json:"option_id"`
}

// ValidationError describes why a candidate answer set was rejected. The
// whole submission is rejected together: either every active question is
// answered with one of its own options, or nothing is persisted.
type ValidationError struct {
	MissingQuestions []uuid.UUID      `json:"missing_questions,omitempty"`
	ExtraQuestions   []uuid.UUID      `json:"extra_questions,omitempty"`
	Mismatches       []OptionMismatch `json:"mismatched_options,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingQuestions) > 0 {
		parts = append(parts, fmt.Sprintf("missing answers for questions %v", e.MissingQuestions))
	}
	if len(e.ExtraQuestions) > 0 {
		parts = append(parts, fmt.Sprintf("answers for unknown or inactive questions %v", e.ExtraQuestions))
	}
	for _, m := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("option %s does not belong to question %s", m.OptionID, m.QuestionID))
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// ValidateAnswers checks a candidate answer map against the quiz's currently
// active questions. The answered set must equal the active question set
// exactly, and every selected option must belong to its question.
func ValidateAnswers(questions []quiz.Question, answers map[uuid.UUID]uuid.UUID) error {
	verr := &ValidationError{}

	active := make(map[uuid.UUID]*quiz.Question, len(questions))
	for i := range questions {
		active[questions[i].ID] = &questions[i]
	}

	for questionID := range active {
		if _, ok := answers[questionID]; !ok {
			verr.MissingQuestions = append(verr.MissingQuestions, questionID)
		}
	}
	for questionID := range answers {
		if _, ok := active[questionID]; !ok {
			verr.ExtraQuestions = append(verr.ExtraQuestions, questionID)
		}
	}

	for questionID, optionID := range answers {
		question, ok := active[questionID]
		if !ok {
			continue
		}
		if !question.HasOption(optionID) {
			verr.Mismatches = append(verr.Mismatches, OptionMismatch{
				QuestionID: questionID,
				OptionID:   optionID,
			})
		}
	}

	if len(verr.MissingQuestions) == 0 && len(verr.ExtraQuestions) == 0 && len(verr.Mismatches) == 0 {
		return nil
	}

	sortIDs(verr.MissingQuestions)
	sortIDs(verr.ExtraQuestions)
	sort.Slice(verr.Mismatches, func(i, j int) bool {
		return verr.Mismatches[i].QuestionID.String() < verr.Mismatches[j].QuestionID.String()
	})
	return verr
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
