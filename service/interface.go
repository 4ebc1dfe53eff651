// Package service contains business logic implementations
package service

import (
	"time"

	"weathertrack.app/models"
)

// WeatherServiceInterface defines weather validation and fetching operations
type WeatherServiceInterface interface {
	ValidateLocation(location string) (*models.LocationInfo, error)
	ValidateDateRange(startDate, endDate string) error
	FetchWeatherData(lat, lon float64, startDate, endDate string) (*models.TemperatureData, error)
	GetTodaysWeather(location string, lat, lon float64) (*models.TodayWeather, error)
}

// RecordServiceInterface defines CRUD operations over stored weather records
type RecordServiceInterface interface {
	CreateRecord(req *models.WeatherRecordRequest) (*models.WeatherRecord, error)
	GetRecord(id string) (*models.WeatherRecord, error)
	ListRecords() ([]models.WeatherRecord, error)
	UpdateRecord(id string, req *models.WeatherRecordRequest) (*models.WeatherRecord, error)
	DeleteRecord(id string) error
	ClearAll() (int64, error)
	Cleanup(days int) (int64, error)
	Stats() (*models.DatabaseStats, error)
}

// ExportServiceInterface defines export operations over stored records
type ExportServiceInterface interface {
	ExportRecords(format string) (*ExportResult, error)
}

// ExternalServiceInterface defines the auxiliary upstream operations exposed
// through the API
type ExternalServiceInterface interface {
	GetNearbyPlaces(lat, lon float64, radius int, placeType string) ([]models.Place, error)
	GetMultiplePlaceTypes(lat, lon float64, radius int, placeTypes []string) (map[string][]models.Place, error)
	GetPlaceDetails(placeID string) (*models.Place, error)
	GetPlacePhotoURL(photoReference string, maxWidth int) string
	GetMapEmbedURL(lat, lon float64, zoom int) string
	Geocode(address string) (*models.GeocodeResult, error)
	ReverseGeocode(lat, lon float64) (*models.GeocodeResult, error)
	SearchVideos(location string, maxResults int) ([]models.Video, error)
}

// RecordRepositoryInterface abstracts persistence for weather records
type RecordRepositoryInterface interface {
	FindByID(id string) (*models.WeatherRecord, error)
	FindAll() ([]models.WeatherRecord, error)
	Create(record *models.WeatherRecord) error
	Update(record *models.WeatherRecord) error
	Delete(record *models.WeatherRecord) error
	DeleteAll() (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	Count() (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	LocationCounts() ([]models.LocationCount, error)
}

// Compile-time interface compliance checks
var (
	_ WeatherServiceInterface  = (*WeatherService)(nil)
	_ RecordServiceInterface   = (*RecordService)(nil)
	_ ExportServiceInterface   = (*ExportService)(nil)
	_ ExternalServiceInterface = (*ExternalService)(nil)
)
