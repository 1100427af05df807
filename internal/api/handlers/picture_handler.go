package handlers

import (
	"context"
	"net/http"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// DailyPictureService defines the picture-of-the-day lookup
type DailyPictureService interface {
	GetDaily(ctx context.Context) (*entities.PictureOfDay, error)
}

// PictureHandler serves the standalone picture-of-the-day view
type PictureHandler struct {
	service DailyPictureService
}

// NewPictureHandler creates a new picture handler
func NewPictureHandler(service DailyPictureService) *PictureHandler {
	return &PictureHandler{service: service}
}

// GetDaily handles GET /api/picture-of-day
func (h *PictureHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	pic, err := h.service.GetDaily(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pic)
}
