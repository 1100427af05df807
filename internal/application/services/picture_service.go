package services

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
)

const dailyPictureCacheKey = "picture:daily"

// PictureService is the single place the detail views get their picture
// data from: the stored enrichment when an appointment has one, a fresh
// (non-persisted) daily fetch otherwise. Daily responses are memoized so
// repeated detail opens do not hammer the upstream API.
type PictureService struct {
	provider providers.PictureProvider
	repo     repositories.AppointmentRepository
	cache    *gocache.Cache
}

// NewPictureService creates a new picture service
func NewPictureService(provider providers.PictureProvider, repo repositories.AppointmentRepository) *PictureService {
	return &PictureService{
		provider: provider,
		repo:     repo,
		cache:    gocache.New(1*time.Hour, 10*time.Minute),
	}
}

// GetDaily returns the current picture of the day, cached for an hour.
func (s *PictureService) GetDaily(ctx context.Context) (*entities.PictureOfDay, error) {
	if cached, found := s.cache.Get(dailyPictureCacheKey); found {
		return cached.(*entities.PictureOfDay), nil
	}

	pic, err := s.provider.FetchDaily(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(dailyPictureCacheKey, pic, gocache.DefaultExpiration)
	return pic, nil
}

// GetForAppointment returns the enrichment to show in an appointment's
// detail view. Appointments without a stored enrichment get a transient
// one derived from the daily picture; it is not persisted.
func (s *PictureService) GetForAppointment(ctx context.Context, id int64) (*entities.Enrichment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Enrichment != nil {
		return appointment.Enrichment, nil
	}

	pic, err := s.GetDaily(ctx)
	if err != nil {
		return nil, err
	}
	return entities.NewEnrichment(pic), nil
}
