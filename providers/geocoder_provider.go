package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weathertrack.app/config"
	"weathertrack.app/errors"
	"weathertrack.app/metrics"
	"weathertrack.app/models"
)

// NominatimGeocoder implements GeocoderProvider against the OpenStreetMap
// Nominatim search API. Nominatim requires an identifying User-Agent.
type NominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimGeocoder creates a new Nominatim geocoder
func NewNominatimGeocoder(config *config.GeocoderConfig) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:    config.BaseURL,
		userAgent:  config.UserAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Nominatim returns coordinates as JSON strings
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve geocodes a free-text location. An unresolvable location is a
// client-class validation failure; upstream trouble is an external API failure.
func (g *NominatimGeocoder) Resolve(location string) (*models.LocationInfo, error) {
	if location == "" {
		return nil, errors.NewValidationError("location cannot be empty")
	}

	values := url.Values{}
	values.Set("q", location)
	values.Set("format", "json")
	values.Set("limit", "1")

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/search?%s", g.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build geocoding request", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	metrics.ObserveUpstream("nominatim", start, err)
	if err != nil {
		return nil, errors.NewExternalAPIError("geocoding request failed", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("geocoding request returned status %d", resp.StatusCode), nil)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.NewExternalAPIError("decode geocoding response", err)
	}

	if len(results) == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("location '%s' not found", location))
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.NewExternalAPIError("invalid latitude in geocoding response", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.NewExternalAPIError("invalid longitude in geocoding response", err)
	}

	return &models.LocationInfo{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
