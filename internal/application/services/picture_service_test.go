package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

func TestPictureService_GetDaily_Memoizes(t *testing.T) {
	provider := &scriptedProvider{results: []*entities.PictureOfDay{image("https://apod.nasa.gov/a.jpg")}}
	svc := services.NewPictureService(provider, newFakeAppointmentRepo())

	first, err := svc.GetDaily(context.Background())
	require.NoError(t, err)
	second, err := svc.GetDaily(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "repeated daily lookups must serve from cache")
}

func TestPictureService_GetForAppointment_PrefersStoredEnrichment(t *testing.T) {
	provider := &scriptedProvider{results: []*entities.PictureOfDay{image("https://apod.nasa.gov/fresh.jpg")}}
	repo := newFakeAppointmentRepo()
	stored := &entities.Enrichment{URL: "https://apod.nasa.gov/stored.jpg", Title: "Stored"}
	repo.records = append(repo.records, &entities.Appointment{ID: 7, Enrichment: stored})
	svc := services.NewPictureService(provider, repo)

	enrichment, err := svc.GetForAppointment(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, stored.URL, enrichment.URL)
	assert.Equal(t, 0, provider.calls)
}

func TestPictureService_GetForAppointment_FallsBackToDaily(t *testing.T) {
	provider := &scriptedProvider{results: []*entities.PictureOfDay{image("https://apod.nasa.gov/daily.jpg")}}
	repo := newFakeAppointmentRepo()
	repo.records = append(repo.records, &entities.Appointment{ID: 7})
	svc := services.NewPictureService(provider, repo)

	enrichment, err := svc.GetForAppointment(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "https://apod.nasa.gov/daily.jpg", enrichment.URL)

	// The fallback is transient; the stored record stays bare.
	stored, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, stored.Enrichment)
}

func TestPictureService_GetForAppointment_UnknownID(t *testing.T) {
	svc := services.NewPictureService(&scriptedProvider{}, newFakeAppointmentRepo())

	_, err := svc.GetForAppointment(context.Background(), 99)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
