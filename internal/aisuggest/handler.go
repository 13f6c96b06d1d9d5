package aisuggest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
	"github.com/okrhub/okrhub-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) SuggestKeyResults(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	suggestions, err := h.service.SuggestKeyResults(r.Context(), req)
	if err != nil {
		var verr *apperror.ValidationError
		if errors.As(err, &verr) {
			config.JSONError(w, http.StatusBadRequest, "validation failed", verr.Fields)
			return
		}
		log.WithError(err).Error("Failed to suggest key results")
		http.Error(w, "failed to suggest key results", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, SuggestionResponse{Suggestions: suggestions})
}
