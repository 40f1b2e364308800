package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gabrielmlima/quizhub/internal/auth"
	"github.com/gabrielmlima/quizhub/internal/category"
	"github.com/gabrielmlima/quizhub/internal/middlewares"
	"github.com/gabrielmlima/quizhub/internal/quiz"
	"github.com/gabrielmlima/quizhub/internal/submission"
	"github.com/gabrielmlima/quizhub/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CategoryHandler   *category.Handler
	QuizHandler       *quiz.Handler
	SubmissionHandler *submission.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/categories", category.Routes(cfg.CategoryHandler))

		// Admin authoring surface; role checks live in the services.
		r.Mount("/admin/quizzes", quiz.AdminRoutes(cfg.QuizHandler))

		// Taker-facing surface.
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Post("/quizzes/{quizID}/submit", cfg.SubmissionHandler.Submit)
		r.Mount("/submissions", submission.Routes(cfg.SubmissionHandler))
	})
	return r
}
