package astronomy

import (
	"context"
	"fmt"
	"sync"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
)

// MockAdapter provides deterministic daily pictures for local development.
// Each call hands out a fresh URL so the dedup loop accepts on the first
// attempt.
type MockAdapter struct {
	mu   sync.Mutex
	next int
}

// NewMockAdapter creates a mock picture provider.
func NewMockAdapter() providers.PictureProvider {
	return &MockAdapter{}
}

// FetchDaily returns a synthetic image result.
func (m *MockAdapter) FetchDaily(ctx context.Context) (*entities.PictureOfDay, error) {
	m.mu.Lock()
	m.next++
	n := m.next
	m.mu.Unlock()

	return &entities.PictureOfDay{
		URL:         fmt.Sprintf("https://example.com/apod/%d.jpg", n),
		Title:       fmt.Sprintf("Sample Nebula %d", n),
		Date:        "2026-01-01",
		Explanation: "A sample astronomy picture served by the mock provider for local development.",
		MediaKind:   entities.MediaKindImage,
	}, nil
}
