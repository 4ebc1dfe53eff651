package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperr "weathertrack.app/errors"
)

const (
	defaultPlacesRadius = 3000
	defaultPhotoWidth   = 400
	defaultMapZoom      = 12
	defaultVideoResults = 5
)

func (s *Server) todayWeather(c *gin.Context) {
	location := c.Param("location")

	resolved, err := s.weatherService.ValidateLocation(location)
	if err != nil {
		s.handleError(c, err)
		return
	}

	today, err := s.weatherService.GetTodaysWeather(resolved.DisplayName, resolved.Latitude, resolved.Longitude)
	if err != nil {
		slog.Error("Today weather error", "error", err, "location", location)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, today)
}

func (s *Server) todayWeatherByCoordinates(c *gin.Context) {
	lat, lon, err := parseCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	// Coordinate-based lookups have no user-provided name; a reverse
	// geocoding failure just falls back to the raw coordinates.
	location := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if result, err := s.externalService.ReverseGeocode(lat, lon); err == nil {
		location = result.FormattedAddress
	}

	today, err := s.weatherService.GetTodaysWeather(location, lat, lon)
	if err != nil {
		slog.Error("Today weather error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, today)
}

func (s *Server) locationVideos(c *gin.Context) {
	location := c.Param("location")

	maxResults := defaultVideoResults
	if raw := c.Query("max_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(c, apperr.NewValidationError("max_results must be a positive integer"))
			return
		}
		maxResults = parsed
	}

	videos, err := s.externalService.SearchVideos(location, maxResults)
	if err != nil {
		slog.Error("Video search error", "error", err, "location", location)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"videos":   videos,
		"total":    len(videos),
	})
}

func (s *Server) nearbyPlaces(c *gin.Context) {
	lat, lon, err := parseCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	placeType := c.DefaultQuery("type", "restaurant")
	radius, err := parseRadius(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	places, err := s.externalService.GetNearbyPlaces(lat, lon, radius, placeType)
	if err != nil {
		slog.Error("Nearby places error", "error", err, "type", placeType)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":   placeType,
		"places": places,
		"total":  len(places),
	})
}

func (s *Server) multiplePlaceTypes(c *gin.Context) {
	lat, lon, err := parseCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	radius, err := parseRadius(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	types := strings.Split(c.DefaultQuery("types", "restaurant,hospital,lodging"), ",")
	for i := range types {
		types[i] = strings.TrimSpace(types[i])
	}

	results, err := s.externalService.GetMultiplePlaceTypes(lat, lon, radius, types)
	if err != nil {
		slog.Error("Multiple place types error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) placeDetails(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		s.handleError(c, apperr.NewValidationError("place_id parameter is required"))
		return
	}

	place, err := s.externalService.GetPlaceDetails(placeID)
	if err != nil {
		slog.Error("Place details error", "error", err, "place_id", placeID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, place)
}

func (s *Server) placePhoto(c *gin.Context) {
	photoReference := c.Query("photo_reference")
	if photoReference == "" {
		s.handleError(c, apperr.NewValidationError("photo_reference parameter is required"))
		return
	}

	maxWidth := defaultPhotoWidth
	if raw := c.Query("max_width"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(c, apperr.NewValidationError("max_width must be a positive integer"))
			return
		}
		maxWidth = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"photo_url": s.externalService.GetPlacePhotoURL(photoReference, maxWidth),
	})
}

func (s *Server) mapEmbed(c *gin.Context) {
	lat, lon, err := parseCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	zoom := defaultMapZoom
	if raw := c.Query("zoom"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 21 {
			s.handleError(c, apperr.NewValidationError("zoom must be between 1 and 21"))
			return
		}
		zoom = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"embed_url": s.externalService.GetMapEmbedURL(lat, lon, zoom),
	})
}

func (s *Server) geocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		s.handleError(c, apperr.NewValidationError("address parameter is required"))
		return
	}

	result, err := s.externalService.Geocode(address)
	if err != nil {
		slog.Error("Geocode error", "error", err, "address", address)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) reverseGeocode(c *gin.Context) {
	lat, lon, err := parseCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	result, err := s.externalService.ReverseGeocode(lat, lon)
	if err != nil {
		slog.Error("Reverse geocode error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) healthCheck(c *gin.Context) {
	dbConnected := false
	if s.db != nil {
		sqlDB, err := s.db.DB()
		dbConnected = err == nil && sqlDB.Ping() == nil
	}

	status := "healthy"
	code := http.StatusOK
	if !dbConnected {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbConnected,
	})
}

func parseCoordinates(c *gin.Context) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, apperr.NewValidationError("lat must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, apperr.NewValidationError("lon must be a number between -180 and 180")
	}
	return lat, lon, nil
}

func parseRadius(c *gin.Context) (int, error) {
	radius := defaultPlacesRadius
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50000 {
			return 0, apperr.NewValidationError("radius must be between 1 and 50000 meters")
		}
		radius = parsed
	}
	return radius, nil
}
