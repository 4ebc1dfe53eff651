package providers

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathertrack.app/config"
	apperrors "weathertrack.app/errors"
)

func newTestGeocoder(baseURL string) *NominatimGeocoder {
	return NewNominatimGeocoder(&config.GeocoderConfig{
		BaseURL:   baseURL,
		UserAgent: "weathertrack-test",
	})
}

func TestNominatimGeocoder_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "weathertrack-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"lat": "48.8566", "lon": "2.3522", "display_name": "Paris, France"}]`)
	}))
	defer server.Close()

	geocoder := newTestGeocoder(server.URL)

	location, err := geocoder.Resolve("Paris")
	require.NoError(t, err)
	assert.Equal(t, 48.8566, location.Latitude)
	assert.Equal(t, 2.3522, location.Longitude)
	assert.Equal(t, "Paris, France", location.DisplayName)
}

func TestNominatimGeocoder_Resolve_EmptyLocation(t *testing.T) {
	geocoder := newTestGeocoder("http://localhost:0")

	location, err := geocoder.Resolve("")
	assert.Nil(t, location)

	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestNominatimGeocoder_Resolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	geocoder := newTestGeocoder(server.URL)

	location, err := geocoder.Resolve("Nowhereville12345")
	assert.Nil(t, location)

	// An unknown place is the client's mistake, not an upstream outage
	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
	assert.Contains(t, appErr.Message, "Nowhereville12345")
}

func TestNominatimGeocoder_Resolve_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	geocoder := newTestGeocoder(server.URL)

	location, err := geocoder.Resolve("Paris")
	assert.Nil(t, location)

	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
}
