package submission

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
	service SubmissionService
}

func NewHandler(s SubmissionService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, ok := parseID(w, r, "quizID")
	if !ok {
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.Submit(r.Context(), quizID, dto)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			config.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  verr.Error(),
				"detail": verr,
			})
			return
		}
		respondError(w, r, err, "Failed to grade submission")
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to fetch submission")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, err, "Failed to list submissions")
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, "Failed to delete submission")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "submission deleted successfully",
	})
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
	case errors.Is(err, ErrQuizNotFound), errors.Is(err, ErrSubmissionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoActiveQuestions):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDuplicateAnswer):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		config.WithContext(r.Context()).WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
