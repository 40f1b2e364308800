package submission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/config"
	"github.com/gabrielmlima/quizhub/internal/policy"
	"github.com/gabrielmlima/quizhub/internal/quiz"
)

var (
	ErrQuizNotFound       = quiz.ErrQuizNotFound
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNoActiveQuestions  = errors.New("quiz has no active questions")
	ErrDuplicateAnswer    = errors.New("answer already recorded for question")
)

type SubmissionService interface {
	Submit(ctx context.Context, quizID uuid.UUID, dto SubmitDTO) (*SubmissionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error)
	List(ctx context.Context) ([]SubmissionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type submissionService struct {
	repo     SubmissionRepository
	quizRepo quiz.QuizRepository
}

func NewService(repo SubmissionRepository, quizRepo quiz.QuizRepository) SubmissionService {
	return &submissionService{repo: repo, quizRepo: quizRepo}
}

// Submit grades one quiz attempt. The answer set must cover the quiz's
// active questions exactly; correctness is derived per answer from the
// question's current correct-option reference, and the aggregate score is
// frozen on the submission. Submission, answers and score are written inside
// one transaction so a failure never leaves a partial attempt behind.
func (s *submissionService) Submit(ctx context.Context, quizID uuid.UUID, dto SubmitDTO) (*SubmissionResponse, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.UserOnly(principal); err != nil {
		return nil, err
	}

	q, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return nil, err
	}
	if q == nil || !q.IsActive {
		return nil, ErrQuizNotFound
	}

	questions := q.ActiveQuestions()
	if len(questions) == 0 {
		return nil, ErrNoActiveQuestions
	}

	if err := ValidateAnswers(questions, dto.Answers); err != nil {
		return nil, err
	}

	sub := Submission{
		ID:     uuid.New(),
		UserID: principal.UserID,
		QuizID: q.ID,
	}

	err = s.repo.WithTx(func(tx SubmissionRepository) error {
		if err := tx.Create(&sub); err != nil {
			return err
		}

		correctCount := 0
		for _, question := range questions {
			selected := dto.Answers[question.ID]
			isCorrect := question.CorrectOptionID != nil && *question.CorrectOptionID == selected

			answer := Answer{
				ID:               uuid.New(),
				SubmissionID:     sub.ID,
				QuestionID:       question.ID,
				SelectedOptionID: selected,
				IsCorrect:        isCorrect,
			}
			if err := tx.CreateAnswer(&answer); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrDuplicateAnswer
				}
				return err
			}
			sub.Answers = append(sub.Answers, answer)
			if isCorrect {
				correctCount++
			}
		}

		sub.Score = 100 * float64(correctCount) / float64(len(questions))
		return tx.UpdateScore(sub.ID, sub.Score)
	})
	if err != nil {
		log.WithError(err).Warn("Failed to grade submission")
		return nil, err
	}

	log.WithField("submission_id", sub.ID).
		WithField("score", sub.Score).
		Info("Submission graded")
	return toResponse(&sub), nil
}

func (s *submissionService) Get(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	if err := policy.OwnerOrAdmin(principal, policy.SubmissionResource(sub.UserID)); err != nil {
		return nil, err
	}

	return toResponse(sub), nil
}

// List returns every submission for admins and only the principal's own for
// regular users.
func (s *submissionService) List(ctx context.Context) ([]SubmissionResponse, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	var submissions []Submission
	if principal.Role == policy.RoleAdmin {
		submissions, err = s.repo.FindAll()
	} else {
		submissions, err = s.repo.FindByUser(principal.UserID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, *toResponse(&submissions[i]))
	}
	return responses, nil
}

func (s *submissionService) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return err
	}

	sub, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubmissionNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete submission")
		return err
	}

	log.WithField("submission_id", id).Info("Submission deleted")
	return nil
}
