// Package models defines data structures used throughout the application
package models

import "time"

// WeatherRecord is the persisted composite of a location, a requested date
// range and the normalized weather data fetched for it.
type WeatherRecord struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	Location        string          `json:"location" gorm:"not null"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	StartDate       string          `json:"start_date" gorm:"not null"`
	EndDate         string          `json:"end_date" gorm:"not null"`
	TemperatureData TemperatureData `json:"temperature_data" gorm:"serializer:json"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName overrides the default table name
func (WeatherRecord) TableName() string {
	return "weather_records"
}

// TemperatureData merges current conditions and the forecast slices returned
// by the weather upstream. The requested date range is kept as metadata only;
// forecast slices are never filtered to it.
type TemperatureData struct {
	Current           *CurrentConditions `json:"current,omitempty"`
	Forecast          []ForecastSlice    `json:"forecast,omitempty"`
	MostCommonWeather string             `json:"most_common_weather,omitempty"`
	TotalPeriods      int                `json:"total_periods,omitempty"`
	RequestedStart    string             `json:"requested_start,omitempty"`
	RequestedEnd      string             `json:"requested_end,omitempty"`
}

// IsEmpty reports whether no weather data was captured at all
func (t TemperatureData) IsEmpty() bool {
	return t.Current == nil && len(t.Forecast) == 0
}

// CurrentConditions is a snapshot of the current weather at a coordinate
type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDegree  float64 `json:"wind_degree"`
	Visibility  int     `json:"visibility"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	ObservedAt  int64   `json:"observed_at"`
}

// ForecastSlice is one 3-hour forecast time-step
type ForecastSlice struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Pop         float64 `json:"pop"`
}

// LocationInfo is a geocoder-resolved location
type LocationInfo struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
}

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TodayWeather is the 3-hour granularity view of today's weather for a
// resolved location
type TodayWeather struct {
	Location          string             `json:"location"`
	Coordinates       Coordinates        `json:"coordinates"`
	CurrentWeather    *CurrentConditions `json:"current_weather"`
	HourlyForecast    []HourlySlice      `json:"hourly_forecast"`
	MostCommonWeather string             `json:"most_common_weather"`
	TotalPeriods      int                `json:"total_periods"`
}

// HourlySlice is one entry of the today view, with temperatures rounded to
// whole degrees for display
type HourlySlice struct {
	Time        string `json:"time"`
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feels_like"`
	Humidity    int    `json:"humidity"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Place is a single nearby-place search result
type Place struct {
	PlaceID          string      `json:"place_id"`
	Name             string      `json:"name"`
	FormattedAddress string      `json:"formatted_address"`
	Rating           float64     `json:"rating"`
	UserRatingsTotal int         `json:"user_ratings_total"`
	Types            []string    `json:"types"`
	Location         Coordinates `json:"location"`
	PhotoURL         string      `json:"photo_url,omitempty"`
	Website          string      `json:"website,omitempty"`
	PhoneNumber      string      `json:"phone_number,omitempty"`
	OpenNow          *bool       `json:"open_now,omitempty"`
}

// Video is a single video-search result
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	URL          string `json:"url"`
}

// GeocodeResult is a forward or reverse geocoding result
type GeocodeResult struct {
	FormattedAddress string      `json:"formatted_address"`
	Location         Coordinates `json:"location"`
	PlaceID          string      `json:"place_id"`
	Types            []string    `json:"types"`
}

// WeatherRecordRequest represents data required to create or update a record
type WeatherRecordRequest struct {
	Location  string `json:"location" form:"location" binding:"required"`
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
}

// DatabaseStats summarizes the stored record set
type DatabaseStats struct {
	TotalRecords int64           `json:"total_records"`
	Recent24h    int64           `json:"recent_records_24h"`
	TopLocations []LocationCount `json:"top_locations"`
}

// LocationCount is a per-location record count
type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
