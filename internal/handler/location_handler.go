package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/pkg/response"
)

// LocationHandler handles HTTP requests for location lookup.
type LocationHandler struct {
	service *application.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(service *application.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// RegisterRoutes registers all location routes on the given router group.
func (h *LocationHandler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/api/v1/locations")
	{
		locations.GET("", h.Search)
		locations.POST("/current", h.Current)
	}
}

// Search handles GET /api/v1/locations?q=.
func (h *LocationHandler) Search(c *gin.Context) {
	response.Success(c, h.service.Resolve(c.Request.Context(), c.Query("q")))
}

type currentPositionRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Denied bool     `json:"denied"`
}

// Current handles POST /api/v1/locations/current. An empty body, a denied
// flag, or missing coordinates resolve to the default location.
func (h *LocationHandler) Current(c *gin.Context) {
	var req currentPositionRequest
	if err := decodeOptionalJSON(c, &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var at *location.Coordinates
	if !req.Denied && req.Lat != nil && req.Lng != nil {
		coords := location.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
		if err := coords.Validate(); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		at = &coords
	}

	response.Success(c, h.service.CurrentPosition(c.Request.Context(), at))
}
