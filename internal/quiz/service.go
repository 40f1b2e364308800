package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/category"
	"github.com/gabrielmlima/quizhub/internal/config"
	"github.com/gabrielmlima/quizhub/internal/policy"
)

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrCategoryNotFound  = category.ErrCategoryNotFound
	ErrEmptyTitle        = errors.New("quiz title is required")
	ErrEmptyQuestionText = errors.New("question text is required")
	ErrEmptyOptionText   = errors.New("option text is required")
	ErrOptionMismatch    = errors.New("option does not belong to question")
)

const copySuffix = " (Copy)"

type QuizService interface {
	CreateQuiz(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (*Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	UpdateQuiz(ctx context.Context, id uuid.UUID, dto UpdateQuizDTO) (*Quiz, error)
	DeleteQuiz(ctx context.Context, id uuid.UUID) error
	DuplicateQuiz(ctx context.Context, id uuid.UUID) (*Quiz, error)

	AddQuestion(ctx context.Context, quizID uuid.UUID, dto CreateQuestionDTO) (*Question, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, dto UpdateQuestionDTO) (*Question, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
	AddOption(ctx context.Context, questionID uuid.UUID, dto AddOptionDTO) (*Option, error)
	SetCorrectOption(ctx context.Context, questionID uuid.UUID, dto SetCorrectOptionDTO) (*Question, error)

	ListActiveQuizzes(ctx context.Context) ([]PublicQuizResponse, error)
	GetActiveQuiz(ctx context.Context, id uuid.UUID) (*PublicQuizResponse, error)
}

type quizService struct {
	repo         QuizRepository
	categoryRepo category.CategoryRepository
}

func NewService(repo QuizRepository, categoryRepo category.CategoryRepository) QuizService {
	return &quizService{repo: repo, categoryRepo: categoryRepo}
}

func (s *quizService) CreateQuiz(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	if dto.Title == "" {
		return nil, ErrEmptyTitle
	}

	c, err := s.categoryRepo.FindByID(dto.CategoryID)
	if err != nil {
		log.WithError(err).Error("Failed to look up category")
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	q := Quiz{
		ID:          uuid.New(),
		Title:       dto.Title,
		CategoryID:  dto.CategoryID,
		CreatedByID: principal.UserID,
		IsActive:    true,
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}

	for _, questionDTO := range dto.Questions {
		if questionDTO.Text == "" {
			return nil, ErrEmptyQuestionText
		}
		question := Question{
			ID:       uuid.New(),
			QuizID:   q.ID,
			Text:     questionDTO.Text,
			IsActive: true,
		}
		if questionDTO.IsActive != nil {
			question.IsActive = *questionDTO.IsActive
		}
		for _, text := range questionDTO.Options {
			if text == "" {
				return nil, ErrEmptyOptionText
			}
			question.Options = append(question.Options, Option{
				ID:         uuid.New(),
				QuestionID: question.ID,
				Text:       text,
			})
		}
		q.Questions = append(q.Questions, question)
	}

	if err := s.repo.Create(&q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.WithField("quiz_id", q.ID).Info("Quiz created")
	return &q, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	q, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	return s.repo.FindAll()
}

func (s *quizService) UpdateQuiz(ctx context.Context, id uuid.UUID, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	q, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	if dto.Title != nil {
		if *dto.Title == "" {
			return nil, ErrEmptyTitle
		}
		q.Title = *dto.Title
	}
	if dto.CategoryID != nil {
		c, err := s.categoryRepo.FindByID(*dto.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
		q.CategoryID = *dto.CategoryID
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return err
	}

	q, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrQuizNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}

	log.WithField("quiz_id", id).Info("Quiz deleted")
	return nil
}

// DuplicateQuiz deep-copies a quiz for the requesting admin. The copy always
// starts inactive, carries every question (inactive ones included) and its
// options, and the correct-option reference of each question is remapped to
// the freshly created option rather than the source one.
func (s *quizService) DuplicateQuiz(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	source, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrQuizNotFound
	}

	dup := Quiz{
		ID:          uuid.New(),
		Title:       source.Title + copySuffix,
		CategoryID:  source.CategoryID,
		CreatedByID: principal.UserID,
		IsActive:    false,
	}

	err = s.repo.WithTx(func(tx QuizRepository) error {
		if err := tx.Create(&dup); err != nil {
			return err
		}

		for _, sourceQuestion := range source.Questions {
			newQuestion := Question{
				ID:       uuid.New(),
				QuizID:   dup.ID,
				Text:     sourceQuestion.Text,
				IsActive: sourceQuestion.IsActive,
			}
			if err := tx.CreateQuestion(&newQuestion); err != nil {
				return err
			}

			optionIDMap := make(map[uuid.UUID]uuid.UUID, len(sourceQuestion.Options))
			for _, sourceOption := range sourceQuestion.Options {
				newOption := Option{
					ID:         uuid.New(),
					QuestionID: newQuestion.ID,
					Text:       sourceOption.Text,
				}
				if err := tx.CreateOption(&newOption); err != nil {
					return err
				}
				optionIDMap[sourceOption.ID] = newOption.ID
				newQuestion.Options = append(newQuestion.Options, newOption)
			}

			if sourceQuestion.CorrectOptionID != nil {
				newID, ok := optionIDMap[*sourceQuestion.CorrectOptionID]
				if !ok {
					return ErrOptionMismatch
				}
				newQuestion.CorrectOptionID = &newID
				if err := tx.UpdateQuestion(&newQuestion); err != nil {
					return err
				}
			}

			dup.Questions = append(dup.Questions, newQuestion)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to duplicate quiz")
		return nil, err
	}

	log.WithField("quiz_id", dup.ID).WithField("source_id", id).Info("Quiz duplicated")
	return &dup, nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID uuid.UUID, dto CreateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	if dto.Text == "" {
		return nil, ErrEmptyQuestionText
	}

	q, err := s.repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	question := Question{
		ID:       uuid.New(),
		QuizID:   quizID,
		Text:     dto.Text,
		IsActive: true,
	}
	if dto.IsActive != nil {
		question.IsActive = *dto.IsActive
	}
	for _, text := range dto.Options {
		if text == "" {
			return nil, ErrEmptyOptionText
		}
		question.Options = append(question.Options, Option{
			ID:         uuid.New(),
			QuestionID: question.ID,
			Text:       text,
		})
	}

	if err := s.repo.CreateQuestion(&question); err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, err
	}

	log.WithField("question_id", question.ID).Info("Question added")
	return &question, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, dto UpdateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	question, err := s.repo.FindQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if dto.Text != nil {
		if *dto.Text == "" {
			return nil, ErrEmptyQuestionText
		}
		question.Text = *dto.Text
	}
	if dto.IsActive != nil {
		question.IsActive = *dto.IsActive
	}

	if err := s.repo.UpdateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}
	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return err
	}

	question, err := s.repo.FindQuestion(questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}

	if err := s.repo.DeleteQuestion(questionID); err != nil {
		log.WithError(err).Error("Failed to delete question")
		return err
	}
	return nil
}

func (s *quizService) AddOption(ctx context.Context, questionID uuid.UUID, dto AddOptionDTO) (*Option, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	if dto.Text == "" {
		return nil, ErrEmptyOptionText
	}

	question, err := s.repo.FindQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	option := Option{
		ID:         uuid.New(),
		QuestionID: questionID,
		Text:       dto.Text,
	}
	if err := s.repo.CreateOption(&option); err != nil {
		log.WithError(err).Error("Failed to add option")
		return nil, err
	}

	log.WithField("option_id", option.ID).Info("Option added")
	return &option, nil
}

// SetCorrectOption assigns the answer key of a question. A nil option id
// clears the key; a non-nil id must reference one of the question's own
// options.
func (s *quizService) SetCorrectOption(ctx context.Context, questionID uuid.UUID, dto SetCorrectOptionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(principal); err != nil {
		return nil, err
	}

	question, err := s.repo.FindQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if dto.OptionID == nil {
		question.CorrectOptionID = nil
	} else {
		if !question.HasOption(*dto.OptionID) {
			return nil, ErrOptionMismatch
		}
		question.CorrectOptionID = dto.OptionID
	}

	if err := s.repo.UpdateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to set correct option")
		return nil, err
	}

	return question, nil
}

func (s *quizService) ListActiveQuizzes(ctx context.Context) ([]PublicQuizResponse, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminWriteUserRead(principal, false); err != nil {
		return nil, err
	}

	quizzes, err := s.repo.FindActive()
	if err != nil {
		return nil, err
	}

	responses := make([]PublicQuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, *toPublicQuiz(&quizzes[i], false))
	}
	return responses, nil
}

func (s *quizService) GetActiveQuiz(ctx context.Context, id uuid.UUID) (*PublicQuizResponse, error) {
	principal, err := policy.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminWriteUserRead(principal, false); err != nil {
		return nil, err
	}

	q, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil || !q.IsActive {
		return nil, ErrQuizNotFound
	}

	return toPublicQuiz(q, true), nil
}
