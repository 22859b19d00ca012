package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miv-platform/miv/internal/service"
)

func GetAnalytics(analytics service.AnalyticsService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := 0
		if v := c.Query("period"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "period must be a positive number of days"})
				return
			}
			period = n
		}
		snap, err := analytics.Snapshot(c.Request.Context(), period)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
