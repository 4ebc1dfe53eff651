package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "weathertrack.app/errors"
	"weathertrack.app/models"
)

// handleError maps application errors to HTTP responses
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case apperr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case apperr.ExportError:
			statusCode = http.StatusInternalServerError
			message = appErr.Message
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
