package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/pkg/response"
)

// MonasteryHandler handles HTTP requests for the monastery catalog.
type MonasteryHandler struct {
	service *application.MonasteryService
}

// NewMonasteryHandler creates a new MonasteryHandler.
func NewMonasteryHandler(service *application.MonasteryService) *MonasteryHandler {
	return &MonasteryHandler{service: service}
}

// RegisterRoutes registers all monastery routes on the given router group.
func (h *MonasteryHandler) RegisterRoutes(r *gin.RouterGroup) {
	monasteries := r.Group("/api/v1/monasteries")
	{
		monasteries.GET("", h.List)
		monasteries.GET("/export.gpx", h.ExportGPX)
		monasteries.GET("/:id", h.Get)
	}
}

// List handles GET /api/v1/monasteries.
func (h *MonasteryHandler) List(c *gin.Context) {
	response.Success(c, h.service.List())
}

// Get handles GET /api/v1/monasteries/:id.
func (h *MonasteryHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid monastery ID")
		return
	}

	result, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ExportGPX handles GET /api/v1/monasteries/export.gpx.
func (h *MonasteryHandler) ExportGPX(c *gin.Context) {
	doc, err := h.service.ExportGPX()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sikkim-monasteries.gpx"`)
	c.Data(http.StatusOK, "application/gpx+xml", doc)
}
