package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weathertrack.app/config"
	"weathertrack.app/errors"
	"weathertrack.app/metrics"
	"weathertrack.app/models"
)

const maxNearbyResults = 10

// GooglePlacesProvider implements PlacesProvider against the Google Places
// API. With MockMode enabled it serves a fixed demo dataset instead of
// calling the upstream.
type GooglePlacesProvider struct {
	apiKey     string
	baseURL    string
	mockMode   bool
	httpClient *http.Client
}

// NewGooglePlacesProvider creates a new Google Places provider
func NewGooglePlacesProvider(config *config.PlacesConfig) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     config.APIKey,
		baseURL:    config.BaseURL,
		mockMode:   config.MockMode,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type googlePlaceItem struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	Website              string `json:"website"`
	FormattedPhoneNumber string `json:"formatted_phone_number"`
	OpeningHours         *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
}

// GetNearbyPlaces searches for places of one type around a coordinate,
// prominence-ordered, capped at ten results
func (p *GooglePlacesProvider) GetNearbyPlaces(lat, lon float64, radius int, placeType string) ([]models.Place, error) {
	if p.mockMode {
		slog.Debug("Places provider in mock mode", "type", placeType)
		return mockPlaces(lat, lon, placeType), nil
	}

	values := url.Values{}
	values.Set("location", fmt.Sprintf("%f,%f", lat, lon))
	values.Set("radius", fmt.Sprintf("%d", radius))
	values.Set("type", placeType)
	values.Set("rankby", "prominence")
	values.Set("key", p.apiKey)

	var payload struct {
		Results []googlePlaceItem `json:"results"`
	}
	if err := p.getJSON("google_places", fmt.Sprintf("%s/nearbysearch/json?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, err
	}

	results := payload.Results
	if len(results) > maxNearbyResults {
		results = results[:maxNearbyResults]
	}

	places := make([]models.Place, 0, len(results))
	for _, item := range results {
		places = append(places, p.toPlace(item))
	}
	return places, nil
}

// GetPlaceDetails retrieves detailed information about a specific place
func (p *GooglePlacesProvider) GetPlaceDetails(placeID string) (*models.Place, error) {
	if placeID == "" {
		return nil, errors.NewValidationError("place_id cannot be empty")
	}
	if p.mockMode {
		places := mockPlaces(0, 0, "restaurant")
		place := places[0]
		place.PlaceID = placeID
		return &place, nil
	}

	values := url.Values{}
	values.Set("place_id", placeID)
	values.Set("fields", "place_id,name,formatted_address,formatted_phone_number,website,rating,user_ratings_total,opening_hours,photos,geometry,types")
	values.Set("key", p.apiKey)

	var payload struct {
		Result googlePlaceItem `json:"result"`
	}
	if err := p.getJSON("google_places", fmt.Sprintf("%s/details/json?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, err
	}

	place := p.toPlace(payload.Result)
	return &place, nil
}

// PhotoURL builds the URL serving a place photo. Mock photo references and
// keyless operation fall back to placeholder images.
func (p *GooglePlacesProvider) PhotoURL(photoReference string, maxWidth int) string {
	if p.mockMode || p.apiKey == "" {
		return fmt.Sprintf("https://via.placeholder.com/%dx300/4A90E2/ffffff?text=Place+Photo", maxWidth)
	}
	return fmt.Sprintf("%s/photo?maxwidth=%d&photoreference=%s&key=%s",
		p.baseURL, maxWidth, url.QueryEscape(photoReference), p.apiKey)
}

func (p *GooglePlacesProvider) toPlace(item googlePlaceItem) models.Place {
	address := item.Vicinity
	if address == "" {
		address = item.FormattedAddress
	}

	place := models.Place{
		PlaceID:          item.PlaceID,
		Name:             item.Name,
		FormattedAddress: address,
		Rating:           item.Rating,
		UserRatingsTotal: item.UserRatingsTotal,
		Types:            item.Types,
		Location: models.Coordinates{
			Lat: item.Geometry.Location.Lat,
			Lon: item.Geometry.Location.Lng,
		},
		Website:     item.Website,
		PhoneNumber: item.FormattedPhoneNumber,
	}
	if len(item.Photos) > 0 {
		place.PhotoURL = p.PhotoURL(item.Photos[0].PhotoReference, 400)
	}
	if item.OpeningHours != nil {
		openNow := item.OpeningHours.OpenNow
		place.OpenNow = &openNow
	}
	return place
}

func (p *GooglePlacesProvider) getJSON(provider, requestURL string, out interface{}) error {
	start := time.Now()
	resp, err := p.httpClient.Get(requestURL)
	metrics.ObserveUpstream(provider, start, err)
	if err != nil {
		return errors.NewExternalAPIError("places request failed", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return errors.NewExternalAPIError(
			fmt.Sprintf("places request returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("decode places response", err)
	}
	return nil
}
