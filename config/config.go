package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weathertrack.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Geocoder GeocoderConfig `split_words:"true"`
	Places   PlacesConfig   `split_words:"true"`
	Maps     MapsConfig     `split_words:"true"`
	YouTube  YouTubeConfig  `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weathertrack"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WeatherConfig contains settings for the OpenWeatherMap upstream
type WeatherConfig struct {
	APIKey            string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	BaseURL           string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	ForecastThreshold int    `envconfig:"FORECAST_SLICE_THRESHOLD" default:"40"`
}

// GeocoderConfig contains settings for the Nominatim geocoding upstream
type GeocoderConfig struct {
	BaseURL   string `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string `envconfig:"NOMINATIM_USER_AGENT" default:"weathertrack-app"`
}

// PlacesConfig contains settings for the Google Places upstream. MockMode
// switches the provider to a fixed demo dataset and makes the key optional.
type PlacesConfig struct {
	APIKey   string `envconfig:"GOOGLE_PLACES_API_KEY"`
	BaseURL  string `envconfig:"GOOGLE_PLACES_BASE_URL" default:"https://maps.googleapis.com/maps/api/place"`
	MockMode bool   `envconfig:"GOOGLE_PLACES_MOCK_MODE" default:"false"`
}

// MapsConfig contains settings for the Google Maps geocoding upstream
type MapsConfig struct {
	APIKey  string `envconfig:"GOOGLE_MAPS_API_KEY"`
	BaseURL string `envconfig:"GOOGLE_MAPS_BASE_URL" default:"https://maps.googleapis.com/maps/api"`
}

// YouTubeConfig contains settings for the YouTube search upstream. MockMode
// switches the provider to a fixed demo dataset and makes the key optional.
type YouTubeConfig struct {
	APIKey   string `envconfig:"YOUTUBE_API_KEY"`
	BaseURL  string `envconfig:"YOUTUBE_BASE_URL" default:"https://www.googleapis.com/youtube/v3"`
	MockMode bool   `envconfig:"YOUTUBE_MOCK_MODE" default:"false"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geocoder.Validate(); err != nil {
		return err
	}
	if err := c.Places.Validate(); err != nil {
		return err
	}
	if err := c.Maps.Validate(); err != nil {
		return err
	}
	if err := c.YouTube.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks weather upstream configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_KEY is required", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHER_BASE_URL must start with http:// or https://", nil)
	}
	if w.ForecastThreshold < 1 {
		return errors.NewConfigurationError("FORECAST_SLICE_THRESHOLD must be at least 1", nil)
	}
	return nil
}

// Validate checks geocoder configuration
func (g *GeocoderConfig) Validate() error {
	if !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return errors.NewConfigurationError("NOMINATIM_BASE_URL must start with http:// or https://", nil)
	}
	if g.UserAgent == "" {
		return errors.NewConfigurationError("NOMINATIM_USER_AGENT cannot be empty", nil)
	}
	return nil
}

// Validate checks places upstream configuration
func (p *PlacesConfig) Validate() error {
	if !p.MockMode && p.APIKey == "" {
		return errors.NewConfigurationError("GOOGLE_PLACES_API_KEY is required unless GOOGLE_PLACES_MOCK_MODE is enabled", nil)
	}
	if !strings.HasPrefix(p.BaseURL, "http://") && !strings.HasPrefix(p.BaseURL, "https://") {
		return errors.NewConfigurationError("GOOGLE_PLACES_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks maps upstream configuration. The API key is optional: the
// embed URL builder has a keyless fallback and geocoding reports a typed
// failure at call time.
func (m *MapsConfig) Validate() error {
	if !strings.HasPrefix(m.BaseURL, "http://") && !strings.HasPrefix(m.BaseURL, "https://") {
		return errors.NewConfigurationError("GOOGLE_MAPS_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks video search upstream configuration
func (y *YouTubeConfig) Validate() error {
	if !y.MockMode && y.APIKey == "" {
		return errors.NewConfigurationError("YOUTUBE_API_KEY is required unless YOUTUBE_MOCK_MODE is enabled", nil)
	}
	if !strings.HasPrefix(y.BaseURL, "http://") && !strings.HasPrefix(y.BaseURL, "https://") {
		return errors.NewConfigurationError("YOUTUBE_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}
