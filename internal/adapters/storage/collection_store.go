package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// CollectionKey is the fixed key the whole collection is serialized under.
const CollectionKey = "appointments"

// CollectionStore implements AppointmentRepository over a KeyValueStore.
// It owns the ordered collection in memory and rewrites the entire
// serialized value on every mutation. Record IDs are millisecond
// timestamps bumped to stay strictly monotonic across same-instant
// creations.
type CollectionStore struct {
	kv  providers.KeyValueStore
	key string

	mu      sync.Mutex
	records []*entities.Appointment
	lastID  int64

	now func() time.Time
}

// NewCollectionStore creates a collection store. Call Load before use.
func NewCollectionStore(kv providers.KeyValueStore) *CollectionStore {
	return &CollectionStore{
		kv:  kv,
		key: CollectionKey,
		now: time.Now,
	}
}

// Load reads the persisted collection once at startup. A missing key or
// corrupt value leaves the collection empty; the failure is logged, not
// surfaced.
func (s *CollectionStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.lastID = 0

	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to load appointment collection, starting empty")
		return
	}
	if !found {
		return
	}

	var records []*entities.Appointment
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("corrupt appointment collection, starting empty")
		return
	}

	s.records = records
	for _, r := range records {
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}
}

// List returns the full collection in insertion order.
func (s *CollectionStore) List(ctx context.Context) ([]*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entities.Appointment, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, cloneAppointment(r))
	}
	return out, nil
}

// GetByID retrieves a single appointment.
func (s *CollectionStore) GetByID(ctx context.Context, id int64) (*entities.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return cloneAppointment(r), nil
		}
	}
	return nil, apperrors.NewNotFoundError("appointment not found")
}

// Append adds a record to the end of the collection and persists it.
func (s *CollectionStore) Append(ctx context.Context, appointment *entities.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, cloneAppointment(appointment))
	if appointment.ID > s.lastID {
		s.lastID = appointment.ID
	}
	return s.saveLocked(ctx)
}

// Update replaces the record with the matching ID and persists.
func (s *CollectionStore) Update(ctx context.Context, appointment *entities.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == appointment.ID {
			s.records[i] = cloneAppointment(appointment)
			return s.saveLocked(ctx)
		}
	}
	return apperrors.NewNotFoundError("appointment not found")
}

// Delete removes the record with the matching ID. Unknown IDs are a no-op.
func (s *CollectionStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.saveLocked(ctx)
		}
	}
	return nil
}

// UsedEnrichmentURLs returns the enrichment URLs attached to any record.
func (s *CollectionStore) UsedEnrichmentURLs(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := make(map[string]struct{})
	for _, r := range s.records {
		if r.Enrichment != nil && r.Enrichment.URL != "" {
			used[r.Enrichment.URL] = struct{}{}
		}
	}
	return used, nil
}

// NextID issues a strictly monotonic, timestamp-derived record ID.
func (s *CollectionStore) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *CollectionStore) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize appointment collection", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return apperrors.NewInternalError("failed to persist appointment collection", err)
	}
	return nil
}

func cloneAppointment(a *entities.Appointment) *entities.Appointment {
	clone := *a
	if a.Enrichment != nil {
		enrichment := *a.Enrichment
		clone.Enrichment = &enrichment
	}
	return &clone
}

var _ repositories.AppointmentRepository = (*CollectionStore)(nil)
