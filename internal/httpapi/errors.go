package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/service"
)

// respondError maps service and repository errors onto the API's error
// taxonomy. Internal errors are logged with detail but returned generically.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"details": verr.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		message := "Not found"
		var nf *repository.NotFoundError
		if errors.As(err, &nf) {
			message = nf.Error()
		}
		c.JSON(http.StatusNotFound, gin.H{"error": message})
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON decodes the request body and reports malformed payloads as 400s.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
