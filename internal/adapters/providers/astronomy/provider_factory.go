package astronomy

import (
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/pkg/config"
)

// NewProvider selects the configured picture provider. Unknown values fall
// back to the mock so local development never needs upstream credentials.
func NewProvider(cfg *config.AstronomyConfig) providers.PictureProvider {
	switch cfg.Provider {
	case "nasa":
		return NewAPODAdapter(cfg)
	default:
		return NewMockAdapter()
	}
}
