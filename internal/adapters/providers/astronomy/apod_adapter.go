package astronomy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/pkg/config"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// APODAdapter implements PictureProvider against the NASA Astronomy
// Picture of the Day API.
type APODAdapter struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewAPODAdapter creates a new APOD adapter. The credential comes from
// config, never from ambient process state.
func NewAPODAdapter(cfg *config.AstronomyConfig) providers.PictureProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &APODAdapter{
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
	}
}

// FetchDaily issues a single GET /planetary/apod request. One call, no
// internal retry; the enrichment loop owns the retry policy.
func (a *APODAdapter) FetchDaily(ctx context.Context) (*entities.PictureOfDay, error) {
	endpoint := fmt.Sprintf("%s/planetary/apod?api_key=%s", a.baseURL, url.QueryEscape(a.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build apod request", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("apod request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("apod api error: status %d", resp.StatusCode), nil)
	}

	var body struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Date        string `json:"date"`
		Explanation string `json:"explanation"`
		MediaType   string `json:"media_type"`
		Copyright   string `json:"copyright"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewExternalError("failed to decode apod response", err)
	}

	return &entities.PictureOfDay{
		URL:         body.URL,
		Title:       body.Title,
		Date:        body.Date,
		Explanation: body.Explanation,
		Copyright:   body.Copyright,
		MediaKind:   entities.MediaKind(body.MediaType),
	}, nil
}
