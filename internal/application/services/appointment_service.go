package services

import (
	"context"
	"strings"
	"sync"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// EnrichmentFetcher is the slice of EnrichmentService the appointment
// service depends on.
type EnrichmentFetcher interface {
	FetchUnused(ctx context.Context, claim ClaimFunc) (*entities.Enrichment, error)
}

// AppointmentService handles the appointment collection: creation with
// picture enrichment, edits, deletion. The in-flight reservation set
// closes the double-submit window where two concurrent creations would
// otherwise both admit the same image URL.
type AppointmentService struct {
	repo     repositories.AppointmentRepository
	enricher EnrichmentFetcher
	bus      providers.EventBus

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewAppointmentService creates a new appointment service. The event bus
// is optional; a nil bus disables mutation events.
func NewAppointmentService(
	repo repositories.AppointmentRepository,
	enricher EnrichmentFetcher,
	bus providers.EventBus,
) *AppointmentService {
	return &AppointmentService{
		repo:     repo,
		enricher: enricher,
		bus:      bus,
		inFlight: make(map[string]struct{}),
	}
}

// Create validates the form, runs the enrichment routine and appends the
// assembled record. Enrichment failure degrades to a record without an
// image; it never blocks creation.
func (s *AppointmentService) Create(ctx context.Context, form entities.AppointmentForm) (*entities.Appointment, error) {
	if strings.TrimSpace(form.PatientName) == "" {
		return nil, apperrors.NewValidationError("patient name is required")
	}
	if strings.TrimSpace(form.DoctorName) == "" {
		return nil, apperrors.NewValidationError("doctor name is required")
	}

	// The committed-URL set is re-read inside the claim, under the same
	// mutex that guards the reservations. A snapshot taken before the
	// fetch would miss URLs committed by a creation that finished while
	// this one was still fetching.
	var claimed string
	claim := func(url string) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, taken := s.inFlight[url]; taken {
			return false
		}
		used, err := s.repo.UsedEnrichmentURLs(ctx)
		if err != nil {
			// Can't prove the URL is unused, so don't admit it.
			return false
		}
		if _, taken := used[url]; taken {
			return false
		}
		s.inFlight[url] = struct{}{}
		claimed = url
		return true
	}
	// Releasing on return is safe either way: a committed URL is visible
	// to later claims through the repo read, and a failed creation frees
	// its candidate for reuse.
	defer func() {
		if claimed != "" {
			s.mu.Lock()
			delete(s.inFlight, claimed)
			s.mu.Unlock()
		}
	}()

	enrichment, err := s.enricher.FetchUnused(ctx, claim)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Msg("enrichment fetch failed, creating appointment without image")
		enrichment = nil
	}

	appointment := &entities.Appointment{
		ID:         s.repo.NextID(),
		Enrichment: enrichment,
	}
	appointment.ApplyForm(form)

	if err := s.repo.Append(ctx, appointment); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewAppointmentEvent(
		appointment.ID, entities.AppointmentEventTypeCreated,
		appointment.PatientName, appointment.DoctorName,
	))

	return appointment, nil
}

// Update replaces the user-editable fields of an existing record. The
// enrichment is preserved untouched; edits never re-run the fetch loop.
func (s *AppointmentService) Update(ctx context.Context, id int64, form entities.AppointmentForm) (*entities.Appointment, error) {
	if strings.TrimSpace(form.PatientName) == "" {
		return nil, apperrors.NewValidationError("patient name is required")
	}
	if strings.TrimSpace(form.DoctorName) == "" {
		return nil, apperrors.NewValidationError("doctor name is required")
	}

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment.ApplyForm(form)

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewAppointmentEvent(
		appointment.ID, entities.AppointmentEventTypeUpdated,
		appointment.PatientName, appointment.DoctorName,
	))

	return appointment, nil
}

// Delete removes a record. Unknown IDs are a no-op.
func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.NewAppointmentEvent(id, entities.AppointmentEventTypeDeleted, "", ""))
	return nil
}

// List returns the collection in insertion order.
func (s *AppointmentService) List(ctx context.Context) ([]*entities.Appointment, error) {
	return s.repo.List(ctx)
}

// Get returns a single appointment.
func (s *AppointmentService) Get(ctx context.Context, id int64) (*entities.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) publish(ctx context.Context, event *entities.AppointmentEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, providers.EventChannelAppointments, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("event_id", event.ID).
			Msg("failed to publish appointment event")
	}
}
