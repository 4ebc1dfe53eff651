package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"weathertrack.app/errors"
	"weathertrack.app/models"
	"weathertrack.app/providers"
)

const (
	dateLayout      = "2006-01-02"
	maxRangeDays    = 7
	todaySliceLimit = 8
)

// WeatherService validates requests and normalizes weather data fetched from
// the upstream providers.
type WeatherService struct {
	geocoder providers.GeocoderProvider
	forecast providers.ForecastProvider
}

// NewWeatherService creates a new weather service
func NewWeatherService(geocoder providers.GeocoderProvider, forecast providers.ForecastProvider) *WeatherService {
	return &WeatherService{
		geocoder: geocoder,
		forecast: forecast,
	}
}

// ValidateLocation resolves a free-text location through the geocoder. An
// unresolvable location is a validation failure, not an upstream one.
func (s *WeatherService) ValidateLocation(location string) (*models.LocationInfo, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, errors.NewValidationError("location cannot be empty")
	}
	return s.geocoder.Resolve(trimmed)
}

// ValidateDateRange checks that both dates parse, the range starts today or
// later, ends on or after its start and spans at most a week
func (s *WeatherService) ValidateDateRange(startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("start_date must be in YYYY-MM-DD format, got '%s'", startDate))
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("end_date must be in YYYY-MM-DD format, got '%s'", endDate))
	}

	today, _ := time.Parse(dateLayout, time.Now().UTC().Format(dateLayout))
	if start.Before(today) {
		return errors.NewValidationError("start_date cannot be in the past")
	}
	if end.Before(start) {
		return errors.NewValidationError("end_date cannot be before start_date")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return errors.NewValidationError(fmt.Sprintf("date range cannot exceed %d days", maxRangeDays))
	}
	return nil
}

// FetchWeatherData fetches current conditions and the forecast for a
// coordinate and normalizes them into a TemperatureData. Both calls must
// succeed; a failure on either one fails the whole fetch and nothing is
// stored. The requested range is stored as metadata and never filters the
// slices.
func (s *WeatherService) FetchWeatherData(lat, lon float64, startDate, endDate string) (*models.TemperatureData, error) {
	current, err := s.forecast.GetCurrentConditions(lat, lon)
	if err != nil {
		return nil, err
	}

	slices, err := s.forecast.GetForecast(lat, lon)
	if err != nil {
		return nil, err
	}

	return &models.TemperatureData{
		Current:           current,
		Forecast:          slices,
		MostCommonWeather: mostCommonWeather(slices),
		TotalPeriods:      len(slices),
		RequestedStart:    startDate,
		RequestedEnd:      endDate,
	}, nil
}

// GetTodaysWeather builds the 3-hour granularity view of today's weather for
// an already-resolved coordinate
func (s *WeatherService) GetTodaysWeather(location string, lat, lon float64) (*models.TodayWeather, error) {
	current, err := s.forecast.GetCurrentConditions(lat, lon)
	if err != nil {
		return nil, err
	}

	result := &models.TodayWeather{
		Location:       location,
		Coordinates:    models.Coordinates{Lat: lat, Lon: lon},
		CurrentWeather: current,
	}

	slices, err := s.forecast.GetForecast(lat, lon)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format(dateLayout)
	hourly := make([]models.HourlySlice, 0, todaySliceLimit)
	for _, slice := range slices {
		date, _ := splitTimestamp(slice.Timestamp)
		if date == today {
			hourly = append(hourly, toHourlySlice(slice))
		}
		if len(hourly) == todaySliceLimit {
			break
		}
	}

	// Late in the day the upstream may have no slices left for today; show
	// the next ones instead of an empty view.
	if len(hourly) == 0 {
		for _, slice := range slices {
			hourly = append(hourly, toHourlySlice(slice))
			if len(hourly) == todaySliceLimit {
				break
			}
		}
	}

	result.HourlyForecast = hourly
	result.TotalPeriods = len(hourly)
	result.MostCommonWeather = mostCommonWeather(slices)
	return result, nil
}

func toHourlySlice(slice models.ForecastSlice) models.HourlySlice {
	date, clock := splitTimestamp(slice.Timestamp)
	return models.HourlySlice{
		Time:        clock,
		Date:        date,
		Temperature: int(math.Round(slice.Temperature)),
		FeelsLike:   int(math.Round(slice.FeelsLike)),
		Humidity:    int(math.Round(slice.Humidity)),
		Description: slice.Description,
		Icon:        slice.Icon,
	}
}

func splitTimestamp(timestamp string) (date, clock string) {
	parts := strings.SplitN(timestamp, " ", 2)
	if len(parts) != 2 {
		return timestamp, ""
	}
	if len(parts[1]) >= 5 {
		return parts[0], parts[1][:5]
	}
	return parts[0], parts[1]
}

// weatherLabels maps description substrings to display labels. Order matters:
// the first matching entry wins.
var weatherLabels = []struct {
	substring string
	label     string
}{
	{"clouds", "Partly Cloudy"},
	{"clear", "Clear Sky"},
	{"rain", "Light Rain"},
	{"snow", "Light Snow"},
	{"thunderstorm", "Thunderstorm"},
	{"drizzle", "Light Drizzle"},
	{"mist", "Misty"},
	{"fog", "Foggy"},
	{"haze", "Hazy"},
}

// mostCommonWeather picks the most frequent forecast description, breaking
// ties in favor of the description seen first, and maps it to a display
// label. No slices at all yields "Mixed Conditions".
func mostCommonWeather(slices []models.ForecastSlice) string {
	counts := make(map[string]int)
	firstSeen := make([]string, 0)
	for _, slice := range slices {
		desc := strings.ToLower(strings.TrimSpace(slice.Description))
		if desc == "" {
			continue
		}
		if _, seen := counts[desc]; !seen {
			firstSeen = append(firstSeen, desc)
		}
		counts[desc]++
	}

	if len(firstSeen) == 0 {
		return "Mixed Conditions"
	}

	winner := firstSeen[0]
	for _, desc := range firstSeen[1:] {
		if counts[desc] > counts[winner] {
			winner = desc
		}
	}

	for _, entry := range weatherLabels {
		if strings.Contains(winner, entry.substring) {
			return entry.label
		}
	}
	return titleCase(winner)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
