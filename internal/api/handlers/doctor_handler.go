package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// DoctorService defines the interface for doctor operations
type DoctorService interface {
	Create(ctx context.Context, name string) (*entities.Doctor, error)
	List(ctx context.Context) ([]*entities.Doctor, error)
}

// DoctorHandler handles doctor-management requests
type DoctorHandler struct {
	service DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// Create handles POST /api/doctors
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	doctor, err := h.service.Create(r.Context(), payload.Name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, doctor)
}

// List handles GET /api/doctors
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}
