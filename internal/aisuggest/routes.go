package aisuggest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/key-results", h.SuggestKeyResults)
	return r
}
