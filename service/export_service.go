package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"weathertrack.app/errors"
	"weathertrack.app/metrics"
	"weathertrack.app/models"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportResult is a rendered export ready to be served as a download
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

type renderer struct {
	contentType string
	extension   string
	render      func(records []models.WeatherRecord, exportedAt time.Time) ([]byte, error)
}

// ExportService renders the stored record set into downloadable formats
type ExportService struct {
	repo      RecordRepositoryInterface
	renderers map[string]renderer
}

// NewExportService creates a new export service
func NewExportService(repo RecordRepositoryInterface) *ExportService {
	s := &ExportService{repo: repo}
	s.renderers = map[string]renderer{
		"json": {"application/json", "json", s.renderJSON},
		"csv":  {"text/csv", "csv", s.renderCSV},
		"xml":  {"application/xml", "xml", s.renderXML},
		"pdf":  {"application/pdf", "pdf", s.renderPDF},
		"md":   {"text/markdown", "md", s.renderMarkdown},
	}
	return s
}

// ExportRecords renders all stored records in the requested format
func (s *ExportService) ExportRecords(format string) (*ExportResult, error) {
	key := strings.ToLower(strings.TrimSpace(format))
	if key == "markdown" {
		key = "md"
	}

	r, ok := s.renderers[key]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported export format '%s'", format))
	}

	records, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	exportedAt := time.Now()
	data, err := r.render(records, exportedAt)
	if err != nil {
		return nil, errors.NewExportError(fmt.Sprintf("rendering %s export failed", key), err)
	}

	metrics.RecordExport(key)
	return &ExportResult{
		Data:        data,
		ContentType: r.contentType,
		Filename:    fmt.Sprintf("weather_records_%s.%s", exportedAt.Format("20060102_150405"), r.extension),
	}, nil
}

func (s *ExportService) renderJSON(records []models.WeatherRecord, _ time.Time) ([]byte, error) {
	if records == nil {
		records = []models.WeatherRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}

func (s *ExportService) renderCSV(records []models.WeatherRecord, _ time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"ID", "Location", "Start Date", "End Date", "Latitude", "Longitude",
		"Created At", "Updated At", "Current Temp", "Current Humidity", "Forecast Count",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, record := range records {
		temp := "N/A"
		humidity := "N/A"
		forecastCount := "N/A"
		if current := record.TemperatureData.Current; current != nil {
			temp = strconv.FormatFloat(current.Temperature, 'f', -1, 64) + "°C"
			humidity = strconv.FormatFloat(current.Humidity, 'f', -1, 64) + "%"
		}
		if !record.TemperatureData.IsEmpty() {
			forecastCount = strconv.Itoa(len(record.TemperatureData.Forecast))
		}

		row := []string{
			record.ID,
			record.Location,
			record.StartDate,
			record.EndDate,
			strconv.FormatFloat(record.Latitude, 'f', -1, 64),
			strconv.FormatFloat(record.Longitude, 'f', -1, 64),
			record.CreatedAt.Format(exportTimeLayout),
			record.UpdatedAt.Format(exportTimeLayout),
			temp,
			humidity,
			forecastCount,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type xmlWeatherSummary struct {
	CurrentTemperature string `xml:"current_temperature,omitempty"`
	CurrentHumidity    string `xml:"current_humidity,omitempty"`
	MostCommonWeather  string `xml:"most_common_weather,omitempty"`
	ForecastCount      int    `xml:"forecast_count"`
}

type xmlRecord struct {
	ID        string             `xml:"id"`
	Location  string             `xml:"location"`
	Latitude  float64            `xml:"latitude"`
	Longitude float64            `xml:"longitude"`
	StartDate string             `xml:"start_date"`
	EndDate   string             `xml:"end_date"`
	CreatedAt string             `xml:"created_at"`
	UpdatedAt string             `xml:"updated_at"`
	Summary   *xmlWeatherSummary `xml:"weather_summary,omitempty"`
}

type xmlExport struct {
	XMLName      xml.Name    `xml:"weather_records"`
	ExportDate   string      `xml:"export_date,attr"`
	TotalRecords int         `xml:"total_records,attr"`
	Records      []xmlRecord `xml:"record"`
}

func (s *ExportService) renderXML(records []models.WeatherRecord, exportedAt time.Time) ([]byte, error) {
	export := xmlExport{
		ExportDate:   exportedAt.Format(exportTimeLayout),
		TotalRecords: len(records),
		Records:      make([]xmlRecord, 0, len(records)),
	}

	for _, record := range records {
		item := xmlRecord{
			ID:        record.ID,
			Location:  record.Location,
			Latitude:  record.Latitude,
			Longitude: record.Longitude,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
			CreatedAt: record.CreatedAt.Format(exportTimeLayout),
			UpdatedAt: record.UpdatedAt.Format(exportTimeLayout),
		}
		if !record.TemperatureData.IsEmpty() {
			summary := &xmlWeatherSummary{
				MostCommonWeather: record.TemperatureData.MostCommonWeather,
				ForecastCount:     len(record.TemperatureData.Forecast),
			}
			if current := record.TemperatureData.Current; current != nil {
				summary.CurrentTemperature = strconv.FormatFloat(current.Temperature, 'f', -1, 64)
				summary.CurrentHumidity = strconv.FormatFloat(current.Humidity, 'f', -1, 64)
			}
			item.Summary = summary
		}
		export.Records = append(export.Records, item)
	}

	data, err := xml.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

func (s *ExportService) renderMarkdown(records []models.WeatherRecord, exportedAt time.Time) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Weather Records Export\n\n")
	fmt.Fprintf(&b, "**Export Date:** %s\n\n", exportedAt.Format(exportTimeLayout))
	fmt.Fprintf(&b, "**Total Records:** %d\n\n", len(records))

	b.WriteString("## Records Summary\n\n")
	b.WriteString("| ID | Location | Date Range | Coordinates | Created |\n")
	b.WriteString("|----|----------|------------|-------------|---------|\n")
	for _, record := range records {
		fmt.Fprintf(&b, "| %s | %s | %s to %s | %.4f, %.4f | %s |\n",
			record.ID, record.Location, record.StartDate, record.EndDate,
			record.Latitude, record.Longitude, record.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("\n## Detailed Information\n\n")

	for i, record := range records {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		fmt.Fprintf(&b, "### Record %d: %s\n\n", i+1, record.Location)
		fmt.Fprintf(&b, "- **ID:** %s\n", record.ID)
		fmt.Fprintf(&b, "- **Date Range:** %s to %s\n", record.StartDate, record.EndDate)
		fmt.Fprintf(&b, "- **Coordinates:** %.4f, %.4f\n", record.Latitude, record.Longitude)
		fmt.Fprintf(&b, "- **Created:** %s\n", record.CreatedAt.Format(exportTimeLayout))

		if !record.TemperatureData.IsEmpty() {
			b.WriteString("\n#### Weather Data\n\n")
			if current := record.TemperatureData.Current; current != nil {
				fmt.Fprintf(&b, "- **Current Temperature:** %.1f°C (feels like %.1f°C)\n", current.Temperature, current.FeelsLike)
				fmt.Fprintf(&b, "- **Current Humidity:** %.0f%%\n", current.Humidity)
				fmt.Fprintf(&b, "- **Conditions:** %s\n", current.Description)
			}
			if record.TemperatureData.MostCommonWeather != "" {
				fmt.Fprintf(&b, "- **Most Common Weather:** %s\n", record.TemperatureData.MostCommonWeather)
			}
			fmt.Fprintf(&b, "- **Forecast Periods:** %d\n", len(record.TemperatureData.Forecast))
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
