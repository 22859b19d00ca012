package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miv-platform/miv/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services groups the use-case layer the API exposes.
type Services struct {
	Ventures  service.VentureService
	Metrics   service.MetricService
	Analytics service.AnalyticsService
}

// NewRouter assembles the gin engine: health and metrics endpoints stay
// open, everything under /api goes through the auth provider.
func NewRouter(svc Services, auth AuthProvider, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), RequestMetrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(AuthMiddleware(auth))
	{
		api.GET("/ventures", ListVentures(svc.Ventures, logger))
		api.POST("/ventures", CreateVenture(svc.Ventures, logger))
		api.GET("/ventures/:id", GetVenture(svc.Ventures, logger))
		api.PUT("/ventures/:id", UpdateVenture(svc.Ventures, logger))
		api.DELETE("/ventures/:id", DeleteVenture(svc.Ventures, logger))
		api.GET("/ventures/:id/documents", ListDocuments(svc.Ventures, logger))
		api.POST("/ventures/:id/documents", AddDocument(svc.Ventures, logger))
		api.GET("/ventures/:id/capital-activities", ListCapitalActivities(svc.Ventures, logger))
		api.POST("/ventures/:id/capital-activities", AddCapitalActivity(svc.Ventures, logger))

		api.GET("/gedsi-metrics", ListMetrics(svc.Metrics, logger))
		api.POST("/gedsi-metrics", CreateMetric(svc.Metrics, logger))
		api.PUT("/gedsi-metrics/:id", UpdateMetric(svc.Metrics, logger))

		api.GET("/analytics", GetAnalytics(svc.Analytics, logger))
		api.GET("/activities", ListActivities(svc.Ventures, logger))
	}
	return router
}
