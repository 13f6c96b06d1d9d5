package spreadsheet

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okrhub/okrhub-lambda/internal/config"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ImportOKR takes a multipart upload (file = spreadsheet, draft = JSON of
// the current form state) and replies with the merged draft. Advisory only.
func (h *Handler) ImportOKR(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		log.WithError(err).Error("Failed to read uploaded file")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var draft Draft
	if raw := r.FormValue("draft"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &draft); err != nil {
			http.Error(w, "invalid draft payload", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.ExtractDraft(r.Context(), data, draft)
	if err != nil {
		if errors.Is(err, ErrUnreadable) {
			config.JSONError(w, http.StatusUnprocessableEntity, "spreadsheet could not be read", nil)
			return
		}
		log.WithError(err).Error("Failed to extract OKR draft")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, result)
}
