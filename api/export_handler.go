package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) exportRecords(c *gin.Context) {
	format := c.Param("format")
	slog.Debug("Exporting weather records", "format", format)

	result, err := s.exportService.ExportRecords(format)
	if err != nil {
		slog.Error("Export error", "error", err, "format", format)
		s.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
