package service

import (
	goerrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	apperrors "weathertrack.app/errors"
	"weathertrack.app/models"
)

type mockWeatherService struct {
	mock.Mock
}

func (m *mockWeatherService) ValidateLocation(location string) (*models.LocationInfo, error) {
	args := m.Called(location)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationInfo), nil
}

func (m *mockWeatherService) ValidateDateRange(startDate, endDate string) error {
	args := m.Called(startDate, endDate)
	return args.Error(0)
}

func (m *mockWeatherService) FetchWeatherData(lat, lon float64, startDate, endDate string) (*models.TemperatureData, error) {
	args := m.Called(lat, lon, startDate, endDate)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TemperatureData), nil
}

func (m *mockWeatherService) GetTodaysWeather(location string, lat, lon float64) (*models.TodayWeather, error) {
	args := m.Called(location, lat, lon)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TodayWeather), nil
}

var _ WeatherServiceInterface = (*mockWeatherService)(nil)

func setupRecordService(t *testing.T) (*RecordService, *mockWeatherService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.WeatherRecord{}))

	weather := new(mockWeatherService)
	return NewRecordService(db, weather), weather, db
}

func parisRequest() *models.WeatherRecordRequest {
	return &models.WeatherRecordRequest{
		Location:  "Paris",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	}
}

func expectParisChain(weather *mockWeatherService) {
	location := &models.LocationInfo{Latitude: 48.8566, Longitude: 2.3522, DisplayName: "Paris, France"}
	slices := make([]models.ForecastSlice, 40)
	for i := range slices {
		slices[i] = models.ForecastSlice{Timestamp: "2026-09-01 00:00:00", Temperature: 20, Description: "clear sky"}
	}
	data := &models.TemperatureData{
		Current:           &models.CurrentConditions{Temperature: 22.1, Humidity: 48},
		Forecast:          slices,
		MostCommonWeather: "Clear Sky",
		TotalPeriods:      len(slices),
		RequestedStart:    "2026-09-01",
		RequestedEnd:      "2026-09-05",
	}

	weather.On("ValidateLocation", "Paris").Return(location, nil)
	weather.On("ValidateDateRange", "2026-09-01", "2026-09-05").Return(nil)
	weather.On("FetchWeatherData", 48.8566, 2.3522, "2026-09-01", "2026-09-05").Return(data, nil)
}

func TestRecordService_CreateRecord(t *testing.T) {
	service, weather, db := setupRecordService(t)
	expectParisChain(weather)

	record, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "Paris", record.Location)
	assert.Equal(t, 48.8566, record.Latitude)
	assert.Equal(t, "2026-09-01", record.StartDate)
	assert.Equal(t, "2026-09-05", record.EndDate)
	assert.Len(t, record.TemperatureData.Forecast, 40)
	assert.Equal(t, "Clear Sky", record.TemperatureData.MostCommonWeather)
	weather.AssertExpectations(t)

	var stored models.WeatherRecord
	require.NoError(t, db.First(&stored, "id = ?", record.ID).Error)
	assert.Equal(t, "Paris", stored.Location)
	assert.Len(t, stored.TemperatureData.Forecast, 40)
}

func TestRecordService_CreateRecord_FetchFailurePersistsNothing(t *testing.T) {
	service, weather, db := setupRecordService(t)

	location := &models.LocationInfo{Latitude: 48.8566, Longitude: 2.3522, DisplayName: "Paris, France"}
	weather.On("ValidateLocation", "Paris").Return(location, nil)
	weather.On("ValidateDateRange", "2026-09-01", "2026-09-05").Return(nil)
	weather.On("FetchWeatherData", 48.8566, 2.3522, "2026-09-01", "2026-09-05").
		Return(nil, apperrors.NewExternalAPIError("forecast fetch failed", nil))

	record, err := service.CreateRecord(parisRequest())
	assert.Nil(t, record)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.WeatherRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordService_CreateRecord_ValidationFailureSkipsFetch(t *testing.T) {
	service, weather, _ := setupRecordService(t)

	weather.On("ValidateLocation", "Paris").
		Return(&models.LocationInfo{Latitude: 48.8566, Longitude: 2.3522}, nil)
	weather.On("ValidateDateRange", "2026-09-01", "2026-09-05").
		Return(apperrors.NewValidationError("date range cannot exceed 7 days"))

	record, err := service.CreateRecord(parisRequest())
	assert.Nil(t, record)
	assert.Error(t, err)
	weather.AssertNotCalled(t, "FetchWeatherData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordService_GetRecord_NotFound(t *testing.T) {
	service, _, _ := setupRecordService(t)

	record, err := service.GetRecord("missing-id")
	assert.Nil(t, record)

	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestRecordService_UpdateRecord_RefetchesWeather(t *testing.T) {
	service, weather, _ := setupRecordService(t)
	expectParisChain(weather)

	created, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)

	lyon := &models.LocationInfo{Latitude: 45.764, Longitude: 4.8357, DisplayName: "Lyon, France"}
	lyonData := &models.TemperatureData{
		Current:        &models.CurrentConditions{Temperature: 25.3},
		RequestedStart: "2026-09-02",
		RequestedEnd:   "2026-09-04",
	}
	weather.On("ValidateLocation", "Lyon").Return(lyon, nil)
	weather.On("ValidateDateRange", "2026-09-02", "2026-09-04").Return(nil)
	weather.On("FetchWeatherData", 45.764, 4.8357, "2026-09-02", "2026-09-04").Return(lyonData, nil)

	updated, err := service.UpdateRecord(created.ID, &models.WeatherRecordRequest{
		Location:  "Lyon",
		StartDate: "2026-09-02",
		EndDate:   "2026-09-04",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Lyon", updated.Location)
	assert.Equal(t, 45.764, updated.Latitude)
	assert.Equal(t, 25.3, updated.TemperatureData.Current.Temperature)
	weather.AssertExpectations(t)
}

func TestRecordService_UpdateRecord_NotFound(t *testing.T) {
	service, _, _ := setupRecordService(t)

	updated, err := service.UpdateRecord("missing-id", parisRequest())
	assert.Nil(t, updated)

	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestRecordService_DeleteRecord(t *testing.T) {
	service, weather, _ := setupRecordService(t)
	expectParisChain(weather)

	created, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteRecord(created.ID))

	_, err = service.GetRecord(created.ID)
	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestRecordService_ClearAll(t *testing.T) {
	service, weather, _ := setupRecordService(t)
	expectParisChain(weather)

	for i := 0; i < 3; i++ {
		_, err := service.CreateRecord(parisRequest())
		require.NoError(t, err)
	}

	deleted, err := service.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	records, err := service.ListRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordService_Cleanup(t *testing.T) {
	service, weather, db := setupRecordService(t)
	expectParisChain(weather)

	fresh, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)
	stale, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)

	// Age one record past the cleanup cutoff
	old := time.Now().AddDate(0, 0, -45)
	require.NoError(t, db.Model(&models.WeatherRecord{}).
		Where("id = ?", stale.ID).
		Update("created_at", old).Error)

	deleted, err := service.Cleanup(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = service.GetRecord(fresh.ID)
	assert.NoError(t, err)
}

func TestRecordService_Cleanup_DefaultsToThirtyDays(t *testing.T) {
	service, weather, db := setupRecordService(t)
	expectParisChain(weather)

	stale, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.WeatherRecord{}).
		Where("id = ?", stale.ID).
		Update("created_at", time.Now().AddDate(0, 0, -31)).Error)

	deleted, err := service.Cleanup(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestRecordService_Stats(t *testing.T) {
	service, weather, db := setupRecordService(t)
	expectParisChain(weather)

	for i := 0; i < 2; i++ {
		_, err := service.CreateRecord(parisRequest())
		require.NoError(t, err)
	}
	old, err := service.CreateRecord(parisRequest())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.WeatherRecord{}).
		Where("id = ?", old.ID).
		Update("created_at", time.Now().AddDate(0, 0, -2)).Error)

	stats, err := service.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRecords)
	assert.Equal(t, int64(2), stats.Recent24h)
	require.Len(t, stats.TopLocations, 1)
	assert.Equal(t, "Paris", stats.TopLocations[0].Location)
	assert.Equal(t, int64(3), stats.TopLocations[0].Count)
}
