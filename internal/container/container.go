package container

import (
	"context"
	"log"
	"os"

	"github.com/gabrielmlima/quizhub/internal/auth"
	"github.com/gabrielmlima/quizhub/internal/category"
	"github.com/gabrielmlima/quizhub/internal/config"
	"github.com/gabrielmlima/quizhub/internal/quiz"
	"github.com/gabrielmlima/quizhub/internal/submission"
	"github.com/gabrielmlima/quizhub/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CategoryContainer   *category.CategoryContainer
	QuizContainer       *quiz.QuizContainer
	SubmissionContainer *submission.SubmissionContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&category.Category{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Option{},
		&submission.Submission{},
		&submission.Answer{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	categoryContainer := category.NewCategoryContainer(config.DB)
	quizContainer := quiz.NewQuizContainer(config.DB, categoryContainer.Repo)
	submissionContainer := submission.NewSubmissionContainer(config.DB, quizContainer.Repo)

	return &Container{
		UserContainer:       userContainer,
		CategoryContainer:   categoryContainer,
		QuizContainer:       quizContainer,
		SubmissionContainer: submissionContainer,
	}
}
