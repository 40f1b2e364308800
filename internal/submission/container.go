package submission

import (
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/quiz"
)

type SubmissionContainer struct {
	Repo    SubmissionRepository
	Service SubmissionService
	Handler *Handler
}

func NewSubmissionContainer(db *gorm.DB, quizRepo quiz.QuizRepository) *SubmissionContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizRepo)
	handler := NewHandler(service)

	return &SubmissionContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
