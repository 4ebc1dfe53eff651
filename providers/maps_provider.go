package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weathertrack.app/config"
	"weathertrack.app/errors"
	"weathertrack.app/metrics"
	"weathertrack.app/models"
)

// GoogleMapsProvider implements MapsProvider against the Google Maps
// geocoding API. The API key is optional; without it EmbedURL falls back to
// the public keyless embed and geocoding calls fail with a validation error.
type GoogleMapsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleMapsProvider creates a new Google Maps provider
func NewGoogleMapsProvider(config *config.MapsConfig) *GoogleMapsProvider {
	return &GoogleMapsProvider{
		apiKey:     config.APIKey,
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		PlaceID          string   `json:"place_id"`
		Types            []string `json:"types"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-form address to coordinates
func (p *GoogleMapsProvider) Geocode(address string) (*models.GeocodeResult, error) {
	if address == "" {
		return nil, errors.NewValidationError("address cannot be empty")
	}
	values := url.Values{}
	values.Set("address", address)
	return p.geocodeRequest(values)
}

// ReverseGeocode resolves coordinates to the nearest address
func (p *GoogleMapsProvider) ReverseGeocode(lat, lon float64) (*models.GeocodeResult, error) {
	values := url.Values{}
	values.Set("latlng", fmt.Sprintf("%f,%f", lat, lon))
	return p.geocodeRequest(values)
}

func (p *GoogleMapsProvider) geocodeRequest(values url.Values) (*models.GeocodeResult, error) {
	if p.apiKey == "" {
		return nil, errors.NewValidationError("maps API key is not configured")
	}
	values.Set("key", p.apiKey)

	start := time.Now()
	resp, err := p.httpClient.Get(fmt.Sprintf("%s/geocode/json?%s", p.baseURL, values.Encode()))
	metrics.ObserveUpstream("google_maps", start, err)
	if err != nil {
		return nil, errors.NewExternalAPIError("geocoding request failed", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("geocoding request returned status %d", resp.StatusCode), nil)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("decode geocoding response", err)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil, errors.NewValidationError("no geocoding results found")
	}

	first := payload.Results[0]
	return &models.GeocodeResult{
		FormattedAddress: first.FormattedAddress,
		PlaceID:          first.PlaceID,
		Types:            first.Types,
		Location: models.Coordinates{
			Lat: first.Geometry.Location.Lat,
			Lon: first.Geometry.Location.Lng,
		},
	}, nil
}

// EmbedURL builds an iframe-embeddable map URL centered on a coordinate.
// Without an API key the public keyless embed endpoint is used instead.
func (p *GoogleMapsProvider) EmbedURL(lat, lon float64, zoom int) string {
	if p.apiKey == "" {
		return fmt.Sprintf("https://maps.google.com/maps?q=%f,%f&z=%d&output=embed", lat, lon, zoom)
	}
	return fmt.Sprintf("https://www.google.com/maps/embed/v1/view?key=%s&center=%f,%f&zoom=%d",
		p.apiKey, lat, lon, zoom)
}
