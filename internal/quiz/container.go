package quiz

import (
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/category"
)

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, categoryRepo category.CategoryRepository) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, categoryRepo)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
