package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/config"
	"github.com/gabrielmlima/quizhub/internal/policy"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.CreateQuiz(r.Context(), dto)
	if err != nil {
		respondError(w, r, err, "Failed to create quiz")
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	q, err := h.service.GetQuiz(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to fetch quiz")
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes(r.Context())
	if err != nil {
		respondError(w, r, err, "Failed to list quizzes")
		return
	}

	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.UpdateQuiz(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err, "Failed to update quiz")
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), id); err != nil {
		respondError(w, r, err, "Failed to delete quiz")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}

func (h *Handler) DuplicateQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	q, err := h.service.DuplicateQuiz(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to duplicate quiz")
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var dto CreateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question, err := h.service.AddQuestion(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err, "Failed to add question")
		return
	}

	config.JSON(w, http.StatusCreated, question)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseID(w, r, "questionID")
	if !ok {
		return
	}

	var dto UpdateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err, "Failed to update question")
		return
	}

	config.JSON(w, http.StatusOK, question)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "questionID")
	if !ok {
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		respondError(w, r, err, "Failed to delete question")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "question deleted successfully",
	})
}

func (h *Handler) AddOption(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseID(w, r, "questionID")
	if !ok {
		return
	}

	var dto AddOptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	option, err := h.service.AddOption(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err, "Failed to add option")
		return
	}

	config.JSON(w, http.StatusCreated, option)
}

func (h *Handler) SetCorrectOption(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseID(w, r, "questionID")
	if !ok {
		return
	}

	var dto SetCorrectOptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question, err := h.service.SetCorrectOption(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err, "Failed to set correct option")
		return
	}

	config.JSON(w, http.StatusOK, question)
}

func (h *Handler) ListActiveQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListActiveQuizzes(r.Context())
	if err != nil {
		respondError(w, r, err, "Failed to list active quizzes")
		return
	}

	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetActiveQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	q, err := h.service.GetActiveQuiz(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to fetch quiz")
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		http.Error(w, param+" required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid "+param, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, policy.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, policy.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrQuizNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEmptyTitle),
		errors.Is(err, ErrEmptyQuestionText),
		errors.Is(err, ErrEmptyOptionText),
		errors.Is(err, ErrOptionMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		config.WithContext(r.Context()).WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
