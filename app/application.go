// Package app wires configuration, database and services into a runnable
// application.
package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"weathertrack.app/api"
	"weathertrack.app/config"
	"weathertrack.app/database"
	"weathertrack.app/providers"
	"weathertrack.app/repository"
	"weathertrack.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config *config.Config
	db     *gorm.DB
	server *api.Server
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	geocoder := providers.NewNominatimGeocoder(&app.config.Geocoder)
	forecast := providers.NewOpenWeatherProvider(&app.config.Weather)
	places := providers.NewGooglePlacesProvider(&app.config.Places)
	maps := providers.NewGoogleMapsProvider(&app.config.Maps)
	videos := providers.NewYouTubeProvider(&app.config.YouTube)

	weatherService := service.NewWeatherService(geocoder, forecast)
	recordService := service.NewRecordService(app.db, weatherService)
	exportService := service.NewExportService(repository.NewWeatherRecordRepository(app.db))
	externalService := service.NewExternalService(places, maps, videos)

	server, err := api.NewServer(api.ServerOptions{
		DB:              app.db,
		Config:          app.config,
		WeatherService:  weatherService,
		RecordService:   recordService,
		ExportService:   exportService,
		ExternalService: externalService,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	app.server = server

	slog.Info("Services initialized successfully")
	return nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
