package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"weathertrack.app/models"
)

const pdfDetailSliceLimit = 5

// renderPDF builds a printable report: a summary table of all records
// followed by one detail block per record.
func (s *ExportService) renderPDF(records []models.WeatherRecord, exportedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weather Records Export", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Weather Records Export", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Export Date: %s", exportedAt.Format(exportTimeLayout)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Records: %d", len(records)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	s.pdfSummaryTable(pdf, records)

	for i, record := range records {
		if i > 0 {
			pdf.AddPage()
		}
		s.pdfRecordDetail(pdf, i+1, record)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) pdfSummaryTable(pdf *gofpdf.Fpdf, records []models.WeatherRecord) {
	headers := []string{"ID", "Location", "Date Range", "Coordinates", "Created"}
	widths := []float64{34, 48, 46, 36, 26}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, record := range records {
		cells := []string{
			truncate(record.ID, 18),
			truncate(record.Location, 28),
			fmt.Sprintf("%s to %s", record.StartDate, record.EndDate),
			fmt.Sprintf("%.4f, %.4f", record.Latitude, record.Longitude),
			record.CreatedAt.Format("2006-01-02"),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (s *ExportService) pdfRecordDetail(pdf *gofpdf.Fpdf, index int, record models.WeatherRecord) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Record %d: %s", index, record.Location), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("ID: %s", record.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date Range: %s to %s", record.StartDate, record.EndDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Coordinates: %.4f, %.4f", record.Latitude, record.Longitude), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Created: %s", record.CreatedAt.Format(exportTimeLayout)), "", 1, "L", false, 0, "")

	if current := record.TemperatureData.Current; current != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Current Conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Temperature: %.1f C (feels like %.1f C)", current.Temperature, current.FeelsLike), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Humidity: %.0f%%   Pressure: %.0f hPa   Wind: %.1f m/s", current.Humidity, current.Pressure, current.WindSpeed), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Conditions: %s", current.Description), "", 1, "L", false, 0, "")
	}

	if record.TemperatureData.MostCommonWeather != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Most Common Weather: %s", record.TemperatureData.MostCommonWeather), "", 1, "L", false, 0, "")
	}

	if len(record.TemperatureData.Forecast) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Forecast (first %d of %d periods)",
			min(pdfDetailSliceLimit, len(record.TemperatureData.Forecast)), len(record.TemperatureData.Forecast)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for i, slice := range record.TemperatureData.Forecast {
			if i == pdfDetailSliceLimit {
				break
			}
			pdf.CellFormat(0, 5, fmt.Sprintf("%s  %.1f C  %s", slice.Timestamp, slice.Temperature, slice.Description), "", 1, "L", false, 0, "")
		}
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
