package providers

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// PictureProvider defines the interface for external picture-of-the-day
// services (NASA APOD or a local mock).
type PictureProvider interface {
	// FetchDaily issues a single request for the current daily picture.
	// No internal retry: a timeout, transport failure, non-2xx status or
	// malformed body surfaces as an ErrorTypeExternal AppError, and the
	// caller decides what to do with it.
	FetchDaily(ctx context.Context) (*entities.PictureOfDay, error)
}
