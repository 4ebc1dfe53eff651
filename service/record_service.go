package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weathertrack.app/errors"
	"weathertrack.app/models"
	"weathertrack.app/repository"
)

const (
	defaultCleanupDays = 30
	topLocationsLimit  = 5
)

// RecordService implements CRUD over stored weather records. Writes that
// touch upstream data run inside a transaction so a failed persist never
// leaves a partial record behind.
type RecordService struct {
	db      *gorm.DB
	repo    RecordRepositoryInterface
	weather WeatherServiceInterface
}

// NewRecordService creates a new record service
func NewRecordService(db *gorm.DB, weather WeatherServiceInterface) *RecordService {
	return &RecordService{
		db:      db,
		repo:    repository.NewWeatherRecordRepository(db),
		weather: weather,
	}
}

// CreateRecord validates the request, fetches weather data for the resolved
// location and persists a new record
func (s *RecordService) CreateRecord(req *models.WeatherRecordRequest) (*models.WeatherRecord, error) {
	location, data, err := s.resolveAndFetch(req)
	if err != nil {
		return nil, err
	}

	record := &models.WeatherRecord{
		ID:              uuid.New().String(),
		Location:        req.Location,
		Latitude:        location.Latitude,
		Longitude:       location.Longitude,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TemperatureData: *data,
	}

	err = s.withTransaction(func(txRepo RecordRepositoryInterface) error {
		return txRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Weather record created", "id", record.ID, "location", record.Location)
	return record, nil
}

// GetRecord returns a single record by ID
func (s *RecordService) GetRecord(id string) (*models.WeatherRecord, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("weather record '%s' not found", id))
	}
	return record, nil
}

// ListRecords returns all stored records, newest first
func (s *RecordService) ListRecords() ([]models.WeatherRecord, error) {
	return s.repo.FindAll()
}

// UpdateRecord re-validates the request, re-fetches weather data and saves
// the updated record
func (s *RecordService) UpdateRecord(id string, req *models.WeatherRecordRequest) (*models.WeatherRecord, error) {
	record, err := s.GetRecord(id)
	if err != nil {
		return nil, err
	}

	location, data, err := s.resolveAndFetch(req)
	if err != nil {
		return nil, err
	}

	record.Location = req.Location
	record.Latitude = location.Latitude
	record.Longitude = location.Longitude
	record.StartDate = req.StartDate
	record.EndDate = req.EndDate
	record.TemperatureData = *data

	err = s.withTransaction(func(txRepo RecordRepositoryInterface) error {
		return txRepo.Update(record)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Weather record updated", "id", record.ID, "location", record.Location)
	return record, nil
}

// DeleteRecord removes a single record by ID
func (s *RecordService) DeleteRecord(id string) error {
	record, err := s.GetRecord(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(record)
}

// ClearAll removes every stored record and returns the count removed
func (s *RecordService) ClearAll() (int64, error) {
	deleted, err := s.repo.DeleteAll()
	if err != nil {
		return 0, err
	}
	slog.Info("All weather records cleared", "deleted", deleted)
	return deleted, nil
}

// Cleanup removes records older than the given number of days, defaulting to
// thirty when the value is not positive
func (s *RecordService) Cleanup(days int) (int64, error) {
	if days <= 0 {
		days = defaultCleanupDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := s.repo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	slog.Info("Old weather records cleaned up", "days", days, "deleted", deleted)
	return deleted, nil
}

// Stats summarizes the stored record set
func (s *RecordService) Stats() (*models.DatabaseStats, error) {
	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.CountCreatedSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}
	locations, err := s.repo.LocationCounts()
	if err != nil {
		return nil, err
	}
	if len(locations) > topLocationsLimit {
		locations = locations[:topLocationsLimit]
	}

	return &models.DatabaseStats{
		TotalRecords: total,
		Recent24h:    recent,
		TopLocations: locations,
	}, nil
}

// resolveAndFetch runs the shared validation chain for create and update:
// resolve the location, check the date range, fetch and normalize weather.
func (s *RecordService) resolveAndFetch(req *models.WeatherRecordRequest) (*models.LocationInfo, *models.TemperatureData, error) {
	location, err := s.weather.ValidateLocation(req.Location)
	if err != nil {
		return nil, nil, err
	}
	if err := s.weather.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, nil, err
	}
	data, err := s.weather.FetchWeatherData(location.Latitude, location.Longitude, req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, err
	}
	return location, data, nil
}

func (s *RecordService) withTransaction(fn func(txRepo RecordRepositoryInterface) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.NewDatabaseError("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(repository.NewWeatherRecordRepository(tx)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return errors.NewDatabaseError("commit transaction", err)
	}
	return nil
}
