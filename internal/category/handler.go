package category

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
	service CategoryService
}

func NewHandler(service CategoryService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(r.Context(), dto)
	if err != nil {
		respondError(w, r, err, "Failed to create category")
		return
	}

	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to fetch category")
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, err, "Failed to list categories")
		return
	}

	config.JSON(w, http.StatusOK, categories)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		respondError(w, r, err, "Failed to update category")
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, "Failed to delete category")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "category deleted successfully",
	})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
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
	case errors.Is(err, ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEmptyName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		config.WithContext(r.Context()).WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
