package services

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
)

// maxExtraAttempts is the retry ceiling: the counter is checked after
// incrementing, so the provider is called at most maxExtraAttempts+1 times
// per run.
const maxExtraAttempts = 10

// ClaimFunc reports whether a candidate URL is still unused and, when it
// is, claims it for the caller in the same step. The claim must be atomic
// with respect to other in-flight creations.
type ClaimFunc func(url string) bool

// EnrichmentService produces at most one fresh, image-typed, previously
// unused enrichment per appointment creation.
type EnrichmentService struct {
	provider providers.PictureProvider
	metrics  *observability.Metrics
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(provider providers.PictureProvider, metrics *observability.Metrics) *EnrichmentService {
	return &EnrichmentService{
		provider: provider,
		metrics:  metrics,
	}
}

// FetchUnused drives the provider in a bounded loop until it obtains an
// image whose URL claim succeeds, or the attempt budget runs out (nil
// result, no error). The loop body always runs at least once. A provider
// error on any attempt aborts the whole run and propagates; failures are
// never retried here.
func (s *EnrichmentService) FetchUnused(ctx context.Context, claim ClaimFunc) (*entities.Enrichment, error) {
	attempts := 0
	for {
		pic, err := s.provider.FetchDaily(ctx)
		if err != nil {
			return nil, err
		}
		attempts++
		observability.RecordEnrichmentAttempt(ctx, s.metrics)

		url := pic.URL
		if pic.MediaKind != entities.MediaKindImage {
			// Non-image media is never accepted, even with a unique URL.
			url = ""
			observability.RecordEnrichmentRejection(ctx, s.metrics, "non_image")
		}

		// Budget check comes before the acceptance test: once the ceiling
		// is crossed the run ends regardless of the last candidate.
		if attempts > maxExtraAttempts {
			observability.RecordEnrichmentExhausted(ctx, s.metrics)
			return nil, nil
		}

		if url == "" {
			continue
		}
		if !claim(url) {
			observability.RecordEnrichmentRejection(ctx, s.metrics, "duplicate")
			continue
		}

		return entities.NewEnrichment(pic), nil
	}
}
