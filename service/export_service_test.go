package service

import (
	"encoding/json"
	"encoding/xml"
	goerrors "errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "weathertrack.app/errors"
	"weathertrack.app/models"
)

// stubRecordRepo serves a fixed record set; only FindAll is exercised by the
// export service.
type stubRecordRepo struct {
	records []models.WeatherRecord
	err     error
}

func (s *stubRecordRepo) FindByID(string) (*models.WeatherRecord, error) { return nil, nil }
func (s *stubRecordRepo) FindAll() ([]models.WeatherRecord, error)       { return s.records, s.err }
func (s *stubRecordRepo) Create(*models.WeatherRecord) error             { return nil }
func (s *stubRecordRepo) Update(*models.WeatherRecord) error             { return nil }
func (s *stubRecordRepo) Delete(*models.WeatherRecord) error             { return nil }
func (s *stubRecordRepo) DeleteAll() (int64, error)                      { return 0, nil }
func (s *stubRecordRepo) DeleteOlderThan(time.Time) (int64, error)       { return 0, nil }
func (s *stubRecordRepo) Count() (int64, error)                          { return 0, nil }
func (s *stubRecordRepo) CountCreatedSince(time.Time) (int64, error)     { return 0, nil }
func (s *stubRecordRepo) LocationCounts() ([]models.LocationCount, error) {
	return nil, nil
}

var _ RecordRepositoryInterface = (*stubRecordRepo)(nil)

func exportTestRecords() []models.WeatherRecord {
	created := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	return []models.WeatherRecord{
		{
			ID:        "rec-1",
			Location:  "Paris",
			Latitude:  48.8566,
			Longitude: 2.3522,
			StartDate: "2026-09-01",
			EndDate:   "2026-09-05",
			TemperatureData: models.TemperatureData{
				Current: &models.CurrentConditions{Temperature: 22.5, Humidity: 48},
				Forecast: []models.ForecastSlice{
					{Timestamp: "2026-09-01 00:00:00", Temperature: 20.1, Description: "clear sky"},
					{Timestamp: "2026-09-01 03:00:00", Temperature: 18.7, Description: "clear sky"},
				},
				MostCommonWeather: "Clear Sky",
				TotalPeriods:      2,
			},
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "rec-2",
			Location:  "Oslo",
			Latitude:  59.9139,
			Longitude: 10.7522,
			StartDate: "2026-09-02",
			EndDate:   "2026-09-03",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func newTestExportService(records []models.WeatherRecord) *ExportService {
	return NewExportService(&stubRecordRepo{records: records})
}

func TestExportService_JSON(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "weather_records_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".json"))

	// The payload is a plain array of records
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(result.Data)), "["))

	var records []models.WeatherRecord
	require.NoError(t, json.Unmarshal(result.Data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.Equal(t, "Paris", records[0].Location)
	assert.Equal(t, 22.5, records[0].TemperatureData.Current.Temperature)
	assert.Len(t, records[0].TemperatureData.Forecast, 2)
}

func TestExportService_CSV(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Location,Start Date,End Date,Latitude,Longitude,Created At,Updated At,Current Temp,Current Humidity,Forecast Count", lines[0])
	assert.Contains(t, lines[1], "rec-1")
	assert.Contains(t, lines[1], "22.5°C")
	assert.Contains(t, lines[1], "48%")

	// Record without weather data reports N/A across all weather columns
	assert.Contains(t, lines[2], "N/A,N/A,N/A")
}

func TestExportService_XML(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("xml")
	require.NoError(t, err)
	assert.Equal(t, "application/xml", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), xml.Header))

	var export xmlExport
	require.NoError(t, xml.Unmarshal(result.Data, &export))
	assert.Equal(t, 2, export.TotalRecords)
	assert.NotEmpty(t, export.ExportDate)
	require.Len(t, export.Records, 2)

	assert.NotNil(t, export.Records[0].Summary)
	assert.Equal(t, "22.5", export.Records[0].Summary.CurrentTemperature)
	assert.Equal(t, 2, export.Records[0].Summary.ForecastCount)
	assert.Nil(t, export.Records[1].Summary)
}

func TestExportService_Markdown(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("md")
	require.NoError(t, err)
	assert.Equal(t, "text/markdown", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".md"))

	body := string(result.Data)
	assert.True(t, strings.HasPrefix(body, "# Weather Records Export"))

	// Summary table mirrors the PDF columns, one row per record
	assert.Contains(t, body, "## Records Summary")
	assert.Contains(t, body, "| ID | Location | Date Range | Coordinates | Created |")
	assert.Contains(t, body, "| rec-1 | Paris | 2026-09-01 to 2026-09-05 | 48.8566, 2.3522 | 2026-08-20 |")
	assert.Contains(t, body, "| rec-2 | Oslo | 2026-09-02 to 2026-09-03 | 59.9139, 10.7522 | 2026-08-20 |")

	assert.Contains(t, body, "## Detailed Information")
	assert.Equal(t, 2, strings.Count(body, "### Record "))
	assert.Contains(t, body, "### Record 1: Paris")
	assert.Contains(t, body, "### Record 2: Oslo")
	assert.Contains(t, body, "**Most Common Weather:** Clear Sky")

	// Only the record with weather data gets the weather subsection
	assert.Equal(t, 1, strings.Count(body, "#### Weather Data"))

	// The separator sits between records, never after the last one
	assert.Equal(t, 1, strings.Count(body, "\n---\n"))
	assert.False(t, strings.HasSuffix(strings.TrimSpace(body), "---"))
}

func TestExportService_MarkdownAlias(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Filename, ".md"))
}

func TestExportService_PDF(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklm", 10))

	// Multi-byte location names must not be cut mid-rune
	got := truncate(strings.Repeat("União", 8), 12)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "UniãoUniã...", got)
}

func TestExportService_EmptyRecordSet(t *testing.T) {
	service := newTestExportService(nil)

	for _, format := range []string{"json", "csv", "xml", "md", "pdf"} {
		result, err := service.ExportRecords(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, result.Data, format)
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	service := newTestExportService(exportTestRecords())

	result, err := service.ExportRecords("yaml")
	assert.Nil(t, result)

	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
	assert.Contains(t, appErr.Message, "yaml")
}

func TestExportService_RepositoryError(t *testing.T) {
	service := NewExportService(&stubRecordRepo{err: apperrors.NewDatabaseError("query failed", nil)})

	result, err := service.ExportRecords("json")
	assert.Nil(t, result)

	var appErr *apperrors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, apperrors.DatabaseError, appErr.Type)
}
