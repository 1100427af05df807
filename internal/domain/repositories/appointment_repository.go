package repositories

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// AppointmentRepository is the collection of appointment records. The
// collection is ordered (insertion order is display order) and owned
// exclusively by the store behind this interface; callers receive copies.
type AppointmentRepository interface {
	// List returns the full collection in insertion order.
	List(ctx context.Context) ([]*entities.Appointment, error)

	// GetByID retrieves a single appointment.
	GetByID(ctx context.Context, id int64) (*entities.Appointment, error)

	// Append adds a record to the end of the collection and persists it.
	Append(ctx context.Context, appointment *entities.Appointment) error

	// Update replaces the record with the matching ID and persists.
	Update(ctx context.Context, appointment *entities.Appointment) error

	// Delete removes the record with the matching ID and persists.
	// Deleting an unknown ID is a no-op, not an error.
	Delete(ctx context.Context, id int64) error

	// UsedEnrichmentURLs returns the set of enrichment URLs currently
	// attached to any record in the collection.
	UsedEnrichmentURLs(ctx context.Context) (map[string]struct{}, error)

	// NextID issues a strictly monotonic record ID.
	NextID() int64
}
