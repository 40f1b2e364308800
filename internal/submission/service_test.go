package submission

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/auth"
	"github.com/gabrielmlima/quizhub/internal/policy"
	"github.com/gabrielmlima/quizhub/internal/quiz"
)

type fakeQuizStore struct {
	quizzes map[uuid.UUID]*quiz.Quiz
}

func newFakeQuizStore(quizzes ...*quiz.Quiz) *fakeQuizStore {
	store := &fakeQuizStore{quizzes: map[uuid.UUID]*quiz.Quiz{}}
	for _, q := range quizzes {
		store.quizzes[q.ID] = q
	}
	return store
}

func (s *fakeQuizStore) Create(q *quiz.Quiz) error {
	s.quizzes[q.ID] = q
	return nil
}

func (s *fakeQuizStore) FindByID(id uuid.UUID) (*quiz.Quiz, error) {
	q, ok := s.quizzes[id]
	if !ok {
		return nil, nil
	}
	return q, nil
}

func (s *fakeQuizStore) FindAll() ([]quiz.Quiz, error)    { return nil, nil }
func (s *fakeQuizStore) FindActive() ([]quiz.Quiz, error) { return nil, nil }
func (s *fakeQuizStore) Update(q *quiz.Quiz) error        { return nil }
func (s *fakeQuizStore) Delete(id uuid.UUID) error        { return nil }

func (s *fakeQuizStore) FindQuestion(id uuid.UUID) (*quiz.Question, error) { return nil, nil }
func (s *fakeQuizStore) CreateQuestion(q *quiz.Question) error             { return nil }
func (s *fakeQuizStore) UpdateQuestion(q *quiz.Question) error             { return nil }
func (s *fakeQuizStore) DeleteQuestion(id uuid.UUID) error                 { return nil }
func (s *fakeQuizStore) CreateOption(o *quiz.Option) error                 { return nil }

func (s *fakeQuizStore) WithTx(fn func(quiz.QuizRepository) error) error { return fn(s) }

type answerKey struct {
	submissionID uuid.UUID
	questionID   uuid.UUID
}

// fakeSubmissionStore mimics the transactional repository: WithTx snapshots
// the maps and restores them when fn fails, so partial writes are never
// observable afterwards.
type fakeSubmissionStore struct {
	submissions map[uuid.UUID]*Submission
	answers     map[answerKey]*Answer

	answerErrAfter int // fail CreateAnswer once this many answers exist, 0 disables
	answerErr      error
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{
		submissions: map[uuid.UUID]*Submission{},
		answers:     map[answerKey]*Answer{},
	}
}

func (s *fakeSubmissionStore) Create(sub *Submission) error {
	copied := *sub
	copied.Answers = nil
	s.submissions[sub.ID] = &copied
	return nil
}

func (s *fakeSubmissionStore) CreateAnswer(a *Answer) error {
	if s.answerErrAfter > 0 && len(s.answers) >= s.answerErrAfter {
		return s.answerErr
	}
	key := answerKey{submissionID: a.SubmissionID, questionID: a.QuestionID}
	if _, exists := s.answers[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	copied := *a
	s.answers[key] = &copied
	return nil
}

func (s *fakeSubmissionStore) UpdateScore(id uuid.UUID, score float64) error {
	sub, ok := s.submissions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.Score = score
	return nil
}

func (s *fakeSubmissionStore) FindByID(id uuid.UUID) (*Submission, error) {
	sub, ok := s.submissions[id]
	if !ok {
		return nil, nil
	}
	copied := *sub
	for key, a := range s.answers {
		if key.submissionID == id {
			copied.Answers = append(copied.Answers, *a)
		}
	}
	return &copied, nil
}

func (s *fakeSubmissionStore) FindAll() ([]Submission, error) {
	out := make([]Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		out = append(out, *sub)
	}
	return out, nil
}

func (s *fakeSubmissionStore) FindByUser(userID uuid.UUID) ([]Submission, error) {
	var out []Submission
	for _, sub := range s.submissions {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (s *fakeSubmissionStore) Delete(id uuid.UUID) error {
	delete(s.submissions, id)
	for key := range s.answers {
		if key.submissionID == id {
			delete(s.answers, key)
		}
	}
	return nil
}

func (s *fakeSubmissionStore) WithTx(fn func(SubmissionRepository) error) error {
	subSnapshot := make(map[uuid.UUID]*Submission, len(s.submissions))
	for id, sub := range s.submissions {
		copied := *sub
		subSnapshot[id] = &copied
	}
	answerSnapshot := make(map[answerKey]*Answer, len(s.answers))
	for key, a := range s.answers {
		copied := *a
		answerSnapshot[key] = &copied
	}

	if err := fn(s); err != nil {
		s.submissions = subSnapshot
		s.answers = answerSnapshot
		return err
	}
	return nil
}

func ctxWithPrincipal(id uuid.UUID, role policy.Role) context.Context {
	claims := &auth.UserClaims{UserID: id.String(), Role: string(role)}
	return auth.ContextWithClaims(context.Background(), claims)
}

// makeQuestion builds an active question with the given option texts;
// correctIdx < 0 leaves the key unset.
func makeQuestion(correctIdx int, optionTexts ...string) quiz.Question {
	q := quiz.Question{ID: uuid.New(), IsActive: true}
	for _, text := range optionTexts {
		q.Options = append(q.Options, quiz.Option{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Text:       text,
		})
	}
	if correctIdx >= 0 {
		q.CorrectOptionID = &q.Options[correctIdx].ID
	}
	return q
}

func makeQuiz(active bool, questions ...quiz.Question) *quiz.Quiz {
	q := &quiz.Quiz{
		ID:       uuid.New(),
		Title:    "Capitals",
		IsActive: active,
	}
	for i := range questions {
		questions[i].QuizID = q.ID
		q.Questions = append(q.Questions, questions[i])
	}
	return q
}

func TestSubmit_GradingDeterminism(t *testing.T) {
	question := makeQuestion(0, "X", "Y")
	q := makeQuiz(true, question)
	taker := uuid.New()

	t.Run("WrongOptionScoresZero", func(t *testing.T) {
		service := NewService(newFakeSubmissionStore(), newFakeQuizStore(q))

		resp, err := service.Submit(ctxWithPrincipal(taker, policy.RoleUser), q.ID, SubmitDTO{
			Answers: map[uuid.UUID]uuid.UUID{question.ID: question.Options[1].ID},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.Score)
		require.Len(t, resp.Answers, 1)
		assert.False(t, resp.Answers[0].IsCorrect)
	})

	t.Run("CorrectOptionScoresHundred", func(t *testing.T) {
		service := NewService(newFakeSubmissionStore(), newFakeQuizStore(q))

		resp, err := service.Submit(ctxWithPrincipal(taker, policy.RoleUser), q.ID, SubmitDTO{
			Answers: map[uuid.UUID]uuid.UUID{question.ID: question.Options[0].ID},
		})
		require.NoError(t, err)
		assert.Equal(t, 100.0, resp.Score)
		require.Len(t, resp.Answers, 1)
		assert.True(t, resp.Answers[0].IsCorrect)
	})
}

func TestSubmit_TwoOfThreeCorrect(t *testing.T) {
	q1 := makeQuestion(0, "A", "B")
	q2 := makeQuestion(0, "C", "D")
	q3 := makeQuestion(0, "E", "F")
	q := makeQuiz(true, q1, q2, q3)

	service := NewService(newFakeSubmissionStore(), newFakeQuizStore(q))

	resp, err := service.Submit(ctxWithPrincipal(uuid.New(), policy.RoleUser), q.ID, SubmitDTO{
		Answers: map[uuid.UUID]uuid.UUID{
			q1.ID: q1.Options[0].ID, // correct
			q2.ID: q2.Options[0].ID, // correct
			q3.ID: q3.Options[1].ID, // wrong
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 66.67, resp.Score, 0.01)
}

func TestSubmit_ValidationFailureLeavesNoWrites(t *testing.T) {
	q1 := makeQuestion(0, "A", "B")
	q2 := makeQuestion(0, "C", "D")
	q := makeQuiz(true, q1, q2)

	store := newFakeSubmissionStore()
	service := NewService(store, newFakeQuizStore(q))

	_, err := service.Submit(ctxWithPrincipal(uuid.New(), policy.RoleUser), q.ID, SubmitDTO{
		Answers: map[uuid.UUID]uuid.UUID{q1.ID: q1.Options[0].ID},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []uuid.UUID{q2.ID}, verr.MissingQuestions)

	assert.Empty(t, store.submissions)
	assert.Empty(t, store.answers)
}

func TestSubmit_MidWriteFailureRollsBack(t *testing.T) {
	q1 := makeQuestion(0, "A", "B")
	q2 := makeQuestion(0, "C", "D")
	q := makeQuiz(true, q1, q2)

	store := newFakeSubmissionStore()
	store.answerErrAfter = 1
	store.answerErr = gorm.ErrDuplicatedKey
	service := NewService(store, newFakeQuizStore(q))

	_, err := service.Submit(ctxWithPrincipal(uuid.New(), policy.RoleUser), q.ID, SubmitDTO{
		Answers: map[uuid.UUID]uuid.UUID{
			q1.ID: q1.Options[0].ID,
			q2.ID: q2.Options[0].ID,
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateAnswer)

	assert.Empty(t, store.submissions)
	assert.Empty(t, store.answers)
}

func TestSubmit_QuizAvailability(t *testing.T) {
	user := ctxWithPrincipal(uuid.New(), policy.RoleUser)

	t.Run("UnknownQuiz", func(t *testing.T) {
		service := NewService(newFakeSubmissionStore(), newFakeQuizStore())

		_, err := service.Submit(user, uuid.New(), SubmitDTO{})
		assert.ErrorIs(t, err, ErrQuizNotFound)
	})

	t.Run("InactiveQuiz", func(t *testing.T) {
		q := makeQuiz(false, makeQuestion(0, "A", "B"))
		service := NewService(newFakeSubmissionStore(), newFakeQuizStore(q))

		_, err := service.Submit(user, q.ID, SubmitDTO{})
		assert.ErrorIs(t, err, ErrQuizNotFound)
	})

	t.Run("NoActiveQuestions", func(t *testing.T) {
		inactive := makeQuestion(0, "A", "B")
		inactive.IsActive = false
		q := makeQuiz(true, inactive)
		service := NewService(newFakeSubmissionStore(), newFakeQuizStore(q))

		_, err := service.Submit(user, q.ID, SubmitDTO{})
		assert.ErrorIs(t, err, ErrNoActiveQuestions)
	})
}

func TestSubmit_RoleGate(t *testing.T) {
	q := makeQuiz(true, makeQuestion(0, "A", "B"))
	service := NewService(newFakeSubmissionStore(), newFakeQuizStore(q))

	t.Run("AdminForbidden", func(t *testing.T) {
		_, err := service.Submit(ctxWithPrincipal(uuid.New(), policy.RoleAdmin), q.ID, SubmitDTO{})
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		_, err := service.Submit(context.Background(), q.ID, SubmitDTO{})
		assert.ErrorIs(t, err, policy.ErrUnauthorized)
	})
}

func TestSubmit_ScoreFrozenAfterKeyChange(t *testing.T) {
	question := makeQuestion(0, "X", "Y")
	q := makeQuiz(true, question)
	taker := uuid.New()

	store := newFakeSubmissionStore()
	service := NewService(store, newFakeQuizStore(q))

	ctx := ctxWithPrincipal(taker, policy.RoleUser)
	resp, err := service.Submit(ctx, q.ID, SubmitDTO{
		Answers: map[uuid.UUID]uuid.UUID{question.ID: question.Options[0].ID},
	})
	require.NoError(t, err)
	require.Equal(t, 100.0, resp.Score)

	// Re-keying the question afterwards must not touch the recorded score.
	q.Questions[0].CorrectOptionID = &q.Questions[0].Options[1].ID

	reread, err := service.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, reread.Score)
}

func TestGet_Ownership(t *testing.T) {
	question := makeQuestion(0, "X", "Y")
	q := makeQuiz(true, question)
	owner := uuid.New()
	stranger := uuid.New()

	store := newFakeSubmissionStore()
	service := NewService(store, newFakeQuizStore(q))

	resp, err := service.Submit(ctxWithPrincipal(owner, policy.RoleUser), q.ID, SubmitDTO{
		Answers: map[uuid.UUID]uuid.UUID{question.ID: question.Options[0].ID},
	})
	require.NoError(t, err)

	t.Run("OwnerCanRead", func(t *testing.T) {
		_, err := service.Get(ctxWithPrincipal(owner, policy.RoleUser), resp.ID)
		assert.NoError(t, err)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		_, err := service.Get(ctxWithPrincipal(stranger, policy.RoleUser), resp.ID)
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("AdminCanRead", func(t *testing.T) {
		_, err := service.Get(ctxWithPrincipal(uuid.New(), policy.RoleAdmin), resp.ID)
		assert.NoError(t, err)
	})

	t.Run("UnknownSubmission", func(t *testing.T) {
		_, err := service.Get(ctxWithPrincipal(owner, policy.RoleUser), uuid.New())
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})
}

func TestList_Scoping(t *testing.T) {
	question := makeQuestion(0, "X", "Y")
	q := makeQuiz(true, question)
	alice := uuid.New()
	bob := uuid.New()

	store := newFakeSubmissionStore()
	service := NewService(store, newFakeQuizStore(q))

	answers := SubmitDTO{Answers: map[uuid.UUID]uuid.UUID{question.ID: question.Options[0].ID}}
	_, err := service.Submit(ctxWithPrincipal(alice, policy.RoleUser), q.ID, answers)
	require.NoError(t, err)
	_, err = service.Submit(ctxWithPrincipal(bob, policy.RoleUser), q.ID, answers)
	require.NoError(t, err)

	t.Run("UserSeesOnlyOwn", func(t *testing.T) {
		mine, err := service.List(ctxWithPrincipal(alice, policy.RoleUser))
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, alice, mine[0].UserID)
	})

	t.Run("AdminSeesAll", func(t *testing.T) {
		all, err := service.List(ctxWithPrincipal(uuid.New(), policy.RoleAdmin))
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestDelete_AdminOnly(t *testing.T) {
	question := makeQuestion(0, "X", "Y")
	q := makeQuiz(true, question)
	owner := uuid.New()

	store := newFakeSubmissionStore()
	service := NewService(store, newFakeQuizStore(q))

	resp, err := service.Submit(ctxWithPrincipal(owner, policy.RoleUser), q.ID, SubmitDTO{
		Answers: map[uuid.UUID]uuid.UUID{question.ID: question.Options[0].ID},
	})
	require.NoError(t, err)

	t.Run("OwnerCannotDelete", func(t *testing.T) {
		err := service.Delete(ctxWithPrincipal(owner, policy.RoleUser), resp.ID)
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("AdminCanDelete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctxWithPrincipal(uuid.New(), policy.RoleAdmin), resp.ID))
		_, err := service.Get(ctxWithPrincipal(uuid.New(), policy.RoleAdmin), resp.ID)
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})
}
