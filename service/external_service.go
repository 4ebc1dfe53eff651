package service

import (
	"log/slog"

	"weathertrack.app/models"
	"weathertrack.app/providers"
)

// ExternalService groups the auxiliary upstream lookups exposed through the
// API: places, maps and video search.
type ExternalService struct {
	places providers.PlacesProvider
	maps   providers.MapsProvider
	videos providers.VideoProvider
}

// NewExternalService creates a new external service
func NewExternalService(places providers.PlacesProvider, maps providers.MapsProvider, videos providers.VideoProvider) *ExternalService {
	return &ExternalService{
		places: places,
		maps:   maps,
		videos: videos,
	}
}

// GetNearbyPlaces returns places of one type around a coordinate
func (s *ExternalService) GetNearbyPlaces(lat, lon float64, radius int, placeType string) ([]models.Place, error) {
	return s.places.GetNearbyPlaces(lat, lon, radius, placeType)
}

// GetMultiplePlaceTypes fetches several place types in one call. A type that
// fails upstream yields an empty list rather than failing the whole lookup.
func (s *ExternalService) GetMultiplePlaceTypes(lat, lon float64, radius int, placeTypes []string) (map[string][]models.Place, error) {
	results := make(map[string][]models.Place, len(placeTypes))
	for _, placeType := range placeTypes {
		places, err := s.places.GetNearbyPlaces(lat, lon, radius, placeType)
		if err != nil {
			slog.Warn("Place type lookup failed", "type", placeType, "error", err)
			results[placeType] = []models.Place{}
			continue
		}
		results[placeType] = places
	}
	return results, nil
}

// GetPlaceDetails returns detailed information about a single place
func (s *ExternalService) GetPlaceDetails(placeID string) (*models.Place, error) {
	return s.places.GetPlaceDetails(placeID)
}

// GetPlacePhotoURL builds the URL serving a place photo
func (s *ExternalService) GetPlacePhotoURL(photoReference string, maxWidth int) string {
	return s.places.PhotoURL(photoReference, maxWidth)
}

// GetMapEmbedURL builds an iframe-embeddable map URL
func (s *ExternalService) GetMapEmbedURL(lat, lon float64, zoom int) string {
	return s.maps.EmbedURL(lat, lon, zoom)
}

// Geocode resolves an address to coordinates
func (s *ExternalService) Geocode(address string) (*models.GeocodeResult, error) {
	return s.maps.Geocode(address)
}

// ReverseGeocode resolves coordinates to the nearest address
func (s *ExternalService) ReverseGeocode(lat, lon float64) (*models.GeocodeResult, error) {
	return s.maps.ReverseGeocode(lat, lon)
}

// SearchVideos finds travel videos about a location
func (s *ExternalService) SearchVideos(location string, maxResults int) ([]models.Video, error) {
	return s.videos.SearchVideos(location, maxResults)
}
