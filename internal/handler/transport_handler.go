package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/pkg/response"
)

// TransportHandler handles HTTP requests for the transport catalog.
type TransportHandler struct {
	service *application.TravelService
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(service *application.TravelService) *TransportHandler {
	return &TransportHandler{service: service}
}

// RegisterRoutes registers all transport routes on the given router group.
func (h *TransportHandler) RegisterRoutes(r *gin.RouterGroup) {
	transports := r.Group("/api/v1/transports")
	{
		transports.GET("", h.List)
		transports.GET("/quote", h.Quote)
	}
}

// List handles GET /api/v1/transports.
func (h *TransportHandler) List(c *gin.Context) {
	response.Success(c, h.service.Transports())
}

// Quote handles GET /api/v1/transports/quote?distanceKm=.
func (h *TransportHandler) Quote(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Query("distanceKm"), 64)
	if err != nil {
		response.BadRequest(c, "distanceKm must be a number")
		return
	}

	quotes, err := h.service.Quote(distance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, quotes)
}
