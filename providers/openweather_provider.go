package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weathertrack.app/config"
	"weathertrack.app/errors"
	"weathertrack.app/metrics"
	"weathertrack.app/models"
)

// OpenWeatherProvider implements ForecastProvider against OpenWeatherMap
type OpenWeatherProvider struct {
	apiKey            string
	baseURL           string
	forecastThreshold int
	httpClient        *http.Client
}

// NewOpenWeatherProvider creates a new OpenWeatherMap provider
func NewOpenWeatherProvider(config *config.WeatherConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:            config.APIKey,
		baseURL:           config.BaseURL,
		forecastThreshold: config.ForecastThreshold,
		httpClient:        &http.Client{Timeout: 10 * time.Second},
	}
}

type openWeatherCurrentResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
	Weather    []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type openWeatherForecastResponse struct {
	List []openWeatherForecastItem `json:"list"`
}

type openWeatherForecastItem struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Pop float64 `json:"pop"`
}

// GetCurrentConditions retrieves the current weather snapshot for a coordinate.
// A non-success upstream status is a hard failure.
func (p *OpenWeatherProvider) GetCurrentConditions(lat, lon float64) (*models.CurrentConditions, error) {
	start := time.Now()
	resp, err := p.httpClient.Get(p.buildURL("/weather", lat, lon, 0))
	metrics.ObserveUpstream("openweather_current", start, err)
	if err != nil {
		return nil, errors.NewExternalAPIError("current weather request failed", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("current weather request returned status %d", resp.StatusCode), nil)
	}

	var payload openWeatherCurrentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("decode current weather response", err)
	}

	current := &models.CurrentConditions{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
		WindDegree:  payload.Wind.Deg,
		Visibility:  payload.Visibility,
		ObservedAt:  payload.Dt,
	}
	if len(payload.Weather) > 0 {
		current.Description = payload.Weather[0].Description
		current.Icon = payload.Weather[0].Icon
	}

	return current, nil
}

// GetForecast retrieves the 3-hour forecast slices for a coordinate. The
// upstream covers a fixed 5-day window; when the first response returns fewer
// slices than the configured threshold, the request is retried exactly once
// with an explicit count parameter.
func (p *OpenWeatherProvider) GetForecast(lat, lon float64) ([]models.ForecastSlice, error) {
	payload, err := p.fetchForecast(lat, lon, 0)
	if err != nil {
		return nil, err
	}

	if len(payload.List) < p.forecastThreshold {
		slog.Debug("Forecast response below threshold, retrying with explicit count",
			"got", len(payload.List), "threshold", p.forecastThreshold)
		payload, err = p.fetchForecast(lat, lon, p.forecastThreshold)
		if err != nil {
			return nil, err
		}
	}

	slices := make([]models.ForecastSlice, 0, len(payload.List))
	for _, item := range payload.List {
		slices = append(slices, reshapeForecastItem(item))
	}

	return slices, nil
}

func (p *OpenWeatherProvider) fetchForecast(lat, lon float64, count int) (*openWeatherForecastResponse, error) {
	start := time.Now()
	resp, err := p.httpClient.Get(p.buildURL("/forecast", lat, lon, count))
	metrics.ObserveUpstream("openweather_forecast", start, err)
	if err != nil {
		return nil, errors.NewExternalAPIError("forecast request failed", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("forecast request returned status %d", resp.StatusCode), nil)
	}

	var payload openWeatherForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("decode forecast response", err)
	}

	return &payload, nil
}

func (p *OpenWeatherProvider) buildURL(path string, lat, lon float64, count int) string {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	if count > 0 {
		values.Set("cnt", fmt.Sprintf("%d", count))
	}
	return fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
}

func reshapeForecastItem(item openWeatherForecastItem) models.ForecastSlice {
	slice := models.ForecastSlice{
		Timestamp:   item.DtTxt,
		Temperature: item.Main.Temp,
		FeelsLike:   item.Main.FeelsLike,
		Humidity:    item.Main.Humidity,
		Pressure:    item.Main.Pressure,
		WindSpeed:   item.Wind.Speed,
		Pop:         item.Pop,
	}
	if slice.Timestamp == "" {
		slice.Timestamp = time.Unix(item.Dt, 0).UTC().Format("2006-01-02 15:04:05")
	}
	if len(item.Weather) > 0 {
		slice.Description = item.Weather[0].Description
		slice.Icon = item.Weather[0].Icon
	}
	return slice
}

func closeBody(resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		slog.Warn("close response body", "error", closeErr)
	}
}
