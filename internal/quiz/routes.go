package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes carries the authoring surface; role checks live in the service.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateQuiz)
	r.Get("/", h.ListQuizzes)
	r.Get("/{id}", h.GetQuiz)
	r.Put("/{id}", h.UpdateQuiz)
	r.Delete("/{id}", h.DeleteQuiz)
	r.Post("/{id}/duplicate", h.DuplicateQuiz)
	r.Post("/{id}/questions", h.AddQuestion)
	r.Put("/questions/{questionID}", h.UpdateQuestion)
	r.Delete("/questions/{questionID}", h.DeleteQuestion)
	r.Post("/questions/{questionID}/options", h.AddOption)
	r.Put("/questions/{questionID}/correct-option", h.SetCorrectOption)
	return r
}

// Routes is the taker-facing surface: active quizzes only, answer key hidden.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListActiveQuizzes)
	r.Get("/{id}", h.GetActiveQuiz)
	return r
}
