// Package api implements the HTTP server and request handlers
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"weathertrack.app/config"
	"weathertrack.app/errors"
	"weathertrack.app/service"
)

// ServerOptions holds the dependencies needed to construct a Server
type ServerOptions struct {
	DB              *gorm.DB
	Config          *config.Config
	WeatherService  service.WeatherServiceInterface
	RecordService   service.RecordServiceInterface
	ExportService   service.ExportServiceInterface
	ExternalService service.ExternalServiceInterface
}

// Validate checks that all required dependencies are present
func (o *ServerOptions) Validate() error {
	if o.Config == nil {
		return errors.NewConfigurationError("config is required", nil)
	}
	if o.WeatherService == nil {
		return errors.NewConfigurationError("weather service is required", nil)
	}
	if o.RecordService == nil {
		return errors.NewConfigurationError("record service is required", nil)
	}
	if o.ExportService == nil {
		return errors.NewConfigurationError("export service is required", nil)
	}
	if o.ExternalService == nil {
		return errors.NewConfigurationError("external service is required", nil)
	}
	return nil
}

// Server represents the HTTP server and API handler
type Server struct {
	router          *gin.Engine
	db              *gorm.DB
	config          *config.Config
	weatherService  service.WeatherServiceInterface
	recordService   service.RecordServiceInterface
	exportService   service.ExportServiceInterface
	externalService service.ExternalServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	server := &Server{
		router:          gin.Default(),
		db:              opts.DB,
		config:          opts.Config,
		weatherService:  opts.WeatherService,
		recordService:   opts.RecordService,
		exportService:   opts.ExportService,
		externalService: opts.ExternalService,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/weather", s.createRecord)
		api.GET("/weather", s.listRecords)
		api.GET("/weather/:id", s.getRecord)
		api.PUT("/weather/:id", s.updateRecord)
		api.DELETE("/weather/:id", s.deleteRecord)
		api.DELETE("/weather/clear-all", s.clearAllRecords)

		api.GET("/export/:format", s.exportRecords)

		api.GET("/today/:location", s.todayWeather)
		api.GET("/today/coordinates", s.todayWeatherByCoordinates)

		api.GET("/youtube/:location", s.locationVideos)

		api.GET("/places/nearby", s.nearbyPlaces)
		api.GET("/places/multiple", s.multiplePlaceTypes)
		api.GET("/places/details", s.placeDetails)
		api.GET("/places/photo", s.placePhoto)

		api.GET("/maps/embed", s.mapEmbed)
		api.GET("/maps/geocode", s.geocode)
		api.GET("/maps/reverse", s.reverseGeocode)

		api.GET("/health", s.healthCheck)
		api.GET("/database/stats", s.databaseStats)
		api.POST("/database/cleanup", s.databaseCleanup)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
