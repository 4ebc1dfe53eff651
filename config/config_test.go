package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-weather-key"))
	require.NoError(t, os.Setenv("GOOGLE_PLACES_MOCK_MODE", "true"))
	require.NoError(t, os.Setenv("YOUTUBE_MOCK_MODE", "true"))
}

func TestLoadConfig(t *testing.T) {
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
	})

	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		setRequiredEnv(t)

		config, err := LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "localhost", config.Database.Host)
		assert.Equal(t, 5432, config.Database.Port)
		assert.Equal(t, "postgres", config.Database.User)
		assert.Equal(t, "weathertrack", config.Database.Name)
		assert.Equal(t, "disable", config.Database.SSLMode)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, 40, config.Weather.ForecastThreshold)
		assert.Equal(t, "https://nominatim.openstreetmap.org", config.Geocoder.BaseURL)
		assert.Equal(t, "weathertrack-app", config.Geocoder.UserAgent)
		assert.True(t, config.Places.MockMode)
		assert.True(t, config.YouTube.MockMode)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		setRequiredEnv(t)
		require.NoError(t, os.Setenv("SERVER_PORT", "9000"))
		require.NoError(t, os.Setenv("DB_NAME", "weathertrack_test"))
		require.NoError(t, os.Setenv("FORECAST_SLICE_THRESHOLD", "24"))

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9000, config.Server.Port)
		assert.Equal(t, "weathertrack_test", config.Database.Name)
		assert.Equal(t, 24, config.Weather.ForecastThreshold)
	})

	t.Run("MockModeOffRequiresPlacesKey", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-weather-key"))
		require.NoError(t, os.Setenv("YOUTUBE_MOCK_MODE", "true"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "GOOGLE_PLACES_API_KEY")
	})

	t.Run("ExplicitKeysWithoutMockMode", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-weather-key"))
		require.NoError(t, os.Setenv("GOOGLE_PLACES_API_KEY", "places-key"))
		require.NoError(t, os.Setenv("YOUTUBE_API_KEY", "youtube-key"))

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.False(t, config.Places.MockMode)
		assert.Equal(t, "places-key", config.Places.APIKey)
	})
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"ValidPort", 8080, false},
		{"MinPort", 1, false},
		{"MaxPort", 65535, false},
		{"ZeroPort", 0, true},
		{"NegativePort", -1, true},
		{"TooLargePort", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ServerConfig{Port: tt.port}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfigValidate(t *testing.T) {
	valid := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres", Name: "weathertrack", SSLMode: "disable",
	}
	assert.NoError(t, valid.Validate())

	t.Run("InvalidSSLMode", func(t *testing.T) {
		cfg := valid
		cfg.SSLMode = "sometimes"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DB_SSL_MODE")
	})

	t.Run("EmptyHost", func(t *testing.T) {
		cfg := valid
		cfg.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("EmptyName", func(t *testing.T) {
		cfg := valid
		cfg.Name = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestWeatherConfigValidate(t *testing.T) {
	t.Run("InvalidBaseURL", func(t *testing.T) {
		cfg := WeatherConfig{APIKey: "key", BaseURL: "api.openweathermap.org", ForecastThreshold: 40}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OPENWEATHER_BASE_URL")
	})

	t.Run("ZeroThreshold", func(t *testing.T) {
		cfg := WeatherConfig{APIKey: "key", BaseURL: "https://api.openweathermap.org/data/2.5", ForecastThreshold: 0}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "FORECAST_SLICE_THRESHOLD")
	})
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Name:     "weathertrack",
		SSLMode:  "require",
	}

	dsn := cfg.GetDSN()
	assert.Equal(t, "host=db.example.com port=5433 user=app password=secret dbname=weathertrack sslmode=require", dsn)
}
