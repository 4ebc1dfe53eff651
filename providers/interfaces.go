package providers

import "weathertrack.app/models"

// GeocoderProvider resolves free-text locations to coordinates
type GeocoderProvider interface {
	Resolve(location string) (*models.LocationInfo, error)
}

// ForecastProvider fetches current conditions and forecast slices for a
// coordinate from the weather upstream
type ForecastProvider interface {
	GetCurrentConditions(lat, lon float64) (*models.CurrentConditions, error)
	GetForecast(lat, lon float64) ([]models.ForecastSlice, error)
}

// PlacesProvider looks up nearby places and builds photo URLs
type PlacesProvider interface {
	GetNearbyPlaces(lat, lon float64, radius int, placeType string) ([]models.Place, error)
	GetPlaceDetails(placeID string) (*models.Place, error)
	PhotoURL(photoReference string, maxWidth int) string
}

// MapsProvider performs forward/reverse geocoding and builds embed URLs
type MapsProvider interface {
	Geocode(address string) (*models.GeocodeResult, error)
	ReverseGeocode(lat, lon float64) (*models.GeocodeResult, error)
	EmbedURL(lat, lon float64, zoom int) string
}

// VideoProvider searches for videos related to a location
type VideoProvider interface {
	SearchVideos(location string, maxResults int) ([]models.Video, error)
}
