package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	Create(ctx context.Context, form entities.AppointmentForm) (*entities.Appointment, error)
	Update(ctx context.Context, id int64, form entities.AppointmentForm) (*entities.Appointment, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entities.Appointment, error)
	Get(ctx context.Context, id int64) (*entities.Appointment, error)
}

// PictureService defines the detail-view picture lookup
type PictureService interface {
	GetForAppointment(ctx context.Context, id int64) (*entities.Enrichment, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service  AppointmentService
	pictures PictureService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService, pictures PictureService) *AppointmentHandler {
	return &AppointmentHandler{
		service:  service,
		pictures: pictures,
	}
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form entities.AppointmentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Create(r.Context(), form)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// Get handles GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Update handles PUT /api/appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	var form entities.AppointmentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Update(r.Context(), id, form)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Delete handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetEnrichment handles GET /api/appointments/{id}/enrichment
func (h *AppointmentHandler) GetEnrichment(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	enrichment, err := h.pictures.GetForAppointment(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, enrichment)
}

func appointmentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "appointment ID must be an integer")
		return 0, false
	}
	return id, true
}
