package astronomy

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/pkg/config"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

func newTestAdapter(t *testing.T) *APODAdapter {
	t.Helper()
	adapter := NewAPODAdapter(&config.AstronomyConfig{
		BaseURL:        "https://api.nasa.gov",
		APIKey:         "TEST_KEY",
		TimeoutSeconds: 5,
	}).(*APODAdapter)
	httpmock.ActivateNonDefault(adapter.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return adapter
}

func TestAPODAdapter_FetchDaily_Success(t *testing.T) {
	adapter := newTestAdapter(t)

	var gotAPIKey string
	httpmock.RegisterResponder("GET", "https://api.nasa.gov/planetary/apod",
		func(req *http.Request) (*http.Response, error) {
			gotAPIKey = req.URL.Query().Get("api_key")
			return httpmock.NewStringResponse(200, `{
				"url": "https://apod.nasa.gov/image/2608/andromeda.jpg",
				"title": "Andromeda",
				"date": "2026-08-30",
				"explanation": "A nearby galaxy.",
				"media_type": "image",
				"copyright": "J. Doe"
			}`), nil
		})

	pic, err := adapter.FetchDaily(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "TEST_KEY", gotAPIKey)
	assert.Equal(t, "https://apod.nasa.gov/image/2608/andromeda.jpg", pic.URL)
	assert.Equal(t, "Andromeda", pic.Title)
	assert.Equal(t, "2026-08-30", pic.Date)
	assert.Equal(t, "A nearby galaxy.", pic.Explanation)
	assert.Equal(t, "J. Doe", pic.Copyright)
	assert.Equal(t, entities.MediaKindImage, pic.MediaKind)
}

func TestAPODAdapter_FetchDaily_VideoEntry(t *testing.T) {
	adapter := newTestAdapter(t)

	httpmock.RegisterResponder("GET", "https://api.nasa.gov/planetary/apod",
		httpmock.NewStringResponder(200, `{
			"url": "https://www.youtube.com/embed/xyz",
			"title": "A Flyover",
			"date": "2026-08-30",
			"explanation": "A video entry.",
			"media_type": "video"
		}`))

	pic, err := adapter.FetchDaily(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.MediaKindVideo, pic.MediaKind)
	assert.Empty(t, pic.Copyright, "missing copyright stays empty at this layer")
}

func TestAPODAdapter_FetchDaily_UpstreamError(t *testing.T) {
	adapter := newTestAdapter(t)

	httpmock.RegisterResponder("GET", "https://api.nasa.gov/planetary/apod",
		httpmock.NewStringResponder(503, `{"error": "service unavailable"}`))

	_, err := adapter.FetchDaily(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestAPODAdapter_FetchDaily_MalformedResponse(t *testing.T) {
	adapter := newTestAdapter(t)

	httpmock.RegisterResponder("GET", "https://api.nasa.gov/planetary/apod",
		httpmock.NewStringResponder(200, `{"url": `))

	_, err := adapter.FetchDaily(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestMockAdapter_ServesFreshURLs(t *testing.T) {
	provider := NewMockAdapter()

	first, err := provider.FetchDaily(context.Background())
	require.NoError(t, err)
	second, err := provider.FetchDaily(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.MediaKindImage, first.MediaKind)
	assert.NotEqual(t, first.URL, second.URL)
}
