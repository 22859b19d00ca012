package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/service"
)

func CreateVenture(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateVentureInput
		if !bindJSON(c, &in) {
			return
		}
		venture, err := ventures.Create(c.Request.Context(), ActorID(c), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, venture)
	}
}

func GetVenture(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := ventures.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func ListVentures(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.VentureFilter{
			Status: domain.VentureStatus(c.Query("status")),
			Stage:  domain.VentureStage(c.Query("stage")),
			Sector: c.Query("sector"),
		}
		listed, err := ventures.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ventures": listed, "count": len(listed)})
	}
}

func UpdateVenture(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.UpdateVentureInput
		if !bindJSON(c, &in) {
			return
		}
		detail, err := ventures.Update(c.Request.Context(), ActorID(c), c.Param("id"), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func DeleteVenture(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ventures.Delete(c.Request.Context(), ActorID(c), c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Venture deleted successfully"})
	}
}

func AddDocument(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateDocumentInput
		if !bindJSON(c, &in) {
			return
		}
		doc, err := ventures.AddDocument(c.Request.Context(), ActorID(c), c.Param("id"), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, doc)
	}
}

func ListDocuments(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := ventures.ListDocuments(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
	}
}

func AddCapitalActivity(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateCapitalActivityInput
		if !bindJSON(c, &in) {
			return
		}
		ca, err := ventures.AddCapitalActivity(c.Request.Context(), ActorID(c), c.Param("id"), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, ca)
	}
}

func ListCapitalActivities(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		listed, err := ventures.ListCapitalActivities(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"capitalActivities": listed, "count": len(listed)})
	}
}

func ListActivities(ventures service.VentureService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}
		feed, err := ventures.RecentActivities(c.Request.Context(), limit)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"activities": feed, "count": len(feed)})
	}
}
