// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"weathertrack.app/models"
)

// WeatherRecordRepository handles data access operations for weather records
type WeatherRecordRepository struct {
	db *gorm.DB
}

// NewWeatherRecordRepository creates a new repository for weather record data
func NewWeatherRecordRepository(db *gorm.DB) *WeatherRecordRepository {
	return &WeatherRecordRepository{db: db}
}

// FindByID retrieves a weather record by its identifier. A missing record is
// reported as (nil, nil) so callers can map it to a not-found failure.
func (r *WeatherRecordRepository) FindByID(id string) (*models.WeatherRecord, error) {
	log.Printf("[DEBUG] WeatherRecordRepository.FindByID: id=%s\n", id)

	var record models.WeatherRecord
	result := r.db.Where("id = ?", id).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("[DEBUG] No weather record found")
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding weather record: %v\n", result.Error)
		return nil, result.Error
	}

	return &record, nil
}

// FindAll retrieves every stored weather record, most recently created first
func (r *WeatherRecordRepository) FindAll() ([]models.WeatherRecord, error) {
	log.Println("[DEBUG] WeatherRecordRepository.FindAll called")

	var records []models.WeatherRecord
	result := r.db.Order("created_at DESC").Find(&records)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing weather records: %v\n", result.Error)
		return nil, result.Error
	}

	log.Printf("[DEBUG] Found %d weather records\n", len(records))
	return records, nil
}

// Create persists a new weather record, assigning its identifier
func (r *WeatherRecordRepository) Create(record *models.WeatherRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	log.Printf("[DEBUG] WeatherRecordRepository.Create: id=%s location=%s\n", record.ID, record.Location)

	result := r.db.Create(record)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating weather record: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Update modifies an existing weather record
func (r *WeatherRecordRepository) Update(record *models.WeatherRecord) error {
	log.Printf("[DEBUG] WeatherRecordRepository.Update: id=%s\n", record.ID)

	result := r.db.Save(record)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating weather record: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Delete removes a weather record from the database
func (r *WeatherRecordRepository) Delete(record *models.WeatherRecord) error {
	log.Printf("[DEBUG] WeatherRecordRepository.Delete: id=%s\n", record.ID)

	result := r.db.Delete(record)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting weather record: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// DeleteAll removes every weather record and reports how many were deleted
func (r *WeatherRecordRepository) DeleteAll() (int64, error) {
	log.Println("[DEBUG] WeatherRecordRepository.DeleteAll called")

	result := r.db.Where("1 = 1").Delete(&models.WeatherRecord{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting all weather records: %v\n", result.Error)
		return 0, result.Error
	}

	log.Printf("[DEBUG] Deleted %d weather records\n", result.RowsAffected)
	return result.RowsAffected, nil
}

// DeleteOlderThan removes records created before the cutoff and reports how
// many were deleted
func (r *WeatherRecordRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	log.Printf("[DEBUG] WeatherRecordRepository.DeleteOlderThan: cutoff=%v\n", cutoff)

	result := r.db.Where("created_at < ?", cutoff).Delete(&models.WeatherRecord{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting old weather records: %v\n", result.Error)
		return 0, result.Error
	}

	log.Printf("[DEBUG] Deleted %d old weather records\n", result.RowsAffected)
	return result.RowsAffected, nil
}

// Count returns the total number of stored weather records
func (r *WeatherRecordRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.WeatherRecord{}).Count(&count)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when counting weather records: %v\n", result.Error)
		return 0, result.Error
	}
	return count, nil
}

// CountCreatedSince returns the number of records created at or after the
// given instant
func (r *WeatherRecordRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	result := r.db.Model(&models.WeatherRecord{}).Where("created_at >= ?", since).Count(&count)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when counting recent weather records: %v\n", result.Error)
		return 0, result.Error
	}
	return count, nil
}

// LocationCounts returns per-location record counts, largest first
func (r *WeatherRecordRepository) LocationCounts() ([]models.LocationCount, error) {
	var counts []models.LocationCount
	result := r.db.Model(&models.WeatherRecord{}).
		Select("location, count(id) as count").
		Group("location").
		Order("count DESC").
		Find(&counts)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when grouping weather records by location: %v\n", result.Error)
		return nil, result.Error
	}
	return counts, nil
}
