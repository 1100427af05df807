package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

type mockAppointmentService struct {
	mock.Mock
}

func (m *mockAppointmentService) Create(ctx context.Context, form entities.AppointmentForm) (*entities.Appointment, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *mockAppointmentService) Update(ctx context.Context, id int64, form entities.AppointmentForm) (*entities.Appointment, error) {
	args := m.Called(ctx, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *mockAppointmentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAppointmentService) List(ctx context.Context) ([]*entities.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *mockAppointmentService) Get(ctx context.Context, id int64) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

type mockPictureService struct {
	mock.Mock
}

func (m *mockPictureService) GetForAppointment(ctx context.Context, id int64) (*entities.Enrichment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Enrichment), args.Error(1)
}

func newHandler() (*handlers.AppointmentHandler, *mockAppointmentService, *mockPictureService) {
	service := new(mockAppointmentService)
	pictures := new(mockPictureService)
	return handlers.NewAppointmentHandler(service, pictures), service, pictures
}

func TestAppointmentHandler_Create(t *testing.T) {
	handler, service, _ := newHandler()

	form := entities.AppointmentForm{
		PatientName: "Ada Lovelace",
		DoctorName:  "Dr. Gregory House",
		Date:        "30/08/2026",
		Time:        "10:30",
		Reason:      "Checkup",
	}
	created := &entities.Appointment{ID: 1756549800000, PatientName: form.PatientName, DoctorName: form.DoctorName}
	service.On("Create", mock.Anything, form).Return(created, nil)

	body, _ := json.Marshal(form)
	req := httptest.NewRequest("POST", "/api/appointments", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got entities.Appointment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada Lovelace", got.PatientName)
	service.AssertExpectations(t)
}

func TestAppointmentHandler_Create_ValidationError(t *testing.T) {
	handler, service, _ := newHandler()
	service.On("Create", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("patient name is required"))

	req := httptest.NewRequest("POST", "/api/appointments", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "patient name is required", resp["error"])
}

func TestAppointmentHandler_Create_InvalidPayload(t *testing.T) {
	handler, service, _ := newHandler()

	req := httptest.NewRequest("POST", "/api/appointments", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Create")
}

func TestAppointmentHandler_List(t *testing.T) {
	handler, service, _ := newHandler()
	service.On("List", mock.Anything).Return([]*entities.Appointment{
		{ID: 1, PatientName: "Ada Lovelace"},
		{ID: 2, PatientName: "Grace Hopper"},
	}, nil)

	req := httptest.NewRequest("GET", "/api/appointments", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, float64(2), resp["count"])
	appointments, ok := resp["appointments"].([]interface{})
	require.True(t, ok)
	assert.Len(t, appointments, 2)
}

func TestAppointmentHandler_Get_NotFound(t *testing.T) {
	handler, service, _ := newHandler()
	service.On("Get", mock.Anything, int64(42)).
		Return(nil, apperrors.NewNotFoundError("appointment not found"))

	req := httptest.NewRequest("GET", "/api/appointments/42", nil)
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentHandler_Get_InvalidID(t *testing.T) {
	handler, service, _ := newHandler()

	req := httptest.NewRequest("GET", "/api/appointments/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Get")
}

func TestAppointmentHandler_Update(t *testing.T) {
	handler, service, _ := newHandler()

	form := entities.AppointmentForm{PatientName: "Grace Hopper", DoctorName: "Dr. Lisa Cuddy"}
	updated := &entities.Appointment{ID: 42, PatientName: form.PatientName, DoctorName: form.DoctorName}
	service.On("Update", mock.Anything, int64(42), form).Return(updated, nil)

	body, _ := json.Marshal(form)
	req := httptest.NewRequest("PUT", "/api/appointments/42", bytes.NewReader(body))
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	handler.Update(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestAppointmentHandler_Delete(t *testing.T) {
	handler, service, _ := newHandler()
	service.On("Delete", mock.Anything, int64(42)).Return(nil)

	req := httptest.NewRequest("DELETE", "/api/appointments/42", nil)
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	service.AssertExpectations(t)
}

func TestAppointmentHandler_GetEnrichment(t *testing.T) {
	handler, _, pictures := newHandler()
	pictures.On("GetForAppointment", mock.Anything, int64(42)).Return(&entities.Enrichment{
		URL:    "https://apod.nasa.gov/a.jpg",
		Title:  "Andromeda",
		Author: "NASA",
	}, nil)

	req := httptest.NewRequest("GET", "/api/appointments/42/enrichment", nil)
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	handler.GetEnrichment(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got entities.Enrichment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "https://apod.nasa.gov/a.jpg", got.URL)
	pictures.AssertExpectations(t)
}
