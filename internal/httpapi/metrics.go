package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/service"
)

func CreateMetric(metrics service.MetricService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateMetricInput
		if !bindJSON(c, &in) {
			return
		}
		metric, err := metrics.Create(c.Request.Context(), ActorID(c), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, metric)
	}
}

func ListMetrics(metrics service.MetricService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.MetricFilter{
			VentureID: c.Query("ventureId"),
			Category:  domain.MetricCategory(c.Query("category")),
			Status:    domain.MetricStatus(c.Query("status")),
		}
		listed, err := metrics.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"metrics": listed, "count": len(listed)})
	}
}

func UpdateMetric(metrics service.MetricService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.UpdateMetricInput
		if !bindJSON(c, &in) {
			return
		}
		metric, err := metrics.Update(c.Request.Context(), ActorID(c), c.Param("id"), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, metric)
	}
}
