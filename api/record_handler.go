package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperr "weathertrack.app/errors"
	"weathertrack.app/models"
)

func (s *Server) createRecord(c *gin.Context) {
	var req models.WeatherRecordRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("location, start_date and end_date are required"))
		return
	}

	slog.Debug("Creating weather record", "location", req.Location, "start", req.StartDate, "end", req.EndDate)

	record, err := s.recordService.CreateRecord(&req)
	if err != nil {
		slog.Error("Create record error", "error", err, "location", req.Location)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) listRecords(c *gin.Context) {
	records, err := s.recordService.ListRecords()
	if err != nil {
		slog.Error("List records error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

func (s *Server) getRecord(c *gin.Context) {
	id := c.Param("id")

	record, err := s.recordService.GetRecord(id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) updateRecord(c *gin.Context) {
	id := c.Param("id")

	var req models.WeatherRecordRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("location, start_date and end_date are required"))
		return
	}

	slog.Debug("Updating weather record", "id", id, "location", req.Location)

	record, err := s.recordService.UpdateRecord(id, &req)
	if err != nil {
		slog.Error("Update record error", "error", err, "id", id)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) deleteRecord(c *gin.Context) {
	id := c.Param("id")

	if err := s.recordService.DeleteRecord(id); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weather record deleted"})
}

func (s *Server) clearAllRecords(c *gin.Context) {
	deleted, err := s.recordService.ClearAll()
	if err != nil {
		slog.Error("Clear all error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All weather records cleared",
		"deleted": deleted,
	})
}

func (s *Server) databaseStats(c *gin.Context) {
	stats, err := s.recordService.Stats()
	if err != nil {
		slog.Error("Database stats error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) databaseCleanup(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(c, apperr.NewValidationError("days must be a positive integer"))
			return
		}
		days = parsed
	}

	deleted, err := s.recordService.Cleanup(days)
	if err != nil {
		slog.Error("Database cleanup error", "error", err, "days", days)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cleanup completed",
		"deleted": deleted,
	})
}
