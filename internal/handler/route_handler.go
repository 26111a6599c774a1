package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/pkg/response"
)

// RouteHandler handles HTTP requests for ad-hoc route lookups.
type RouteHandler struct {
	service *application.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all route lookup routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/routes", h.GetRoute)
}

// GetRoute handles GET /api/v1/routes?from=lat,lng&to=lat,lng.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	from, err := parseLatLng(c.Query("from"))
	if err != nil {
		response.BadRequest(c, "from: "+err.Error())
		return
	}
	to, err := parseLatLng(c.Query("to"))
	if err != nil {
		response.BadRequest(c, "to: "+err.Error())
		return
	}

	src := location.Location{Name: c.DefaultQuery("fromName", "Source"), Lat: from.Lat, Lng: from.Lng}
	dst := location.Location{Name: c.DefaultQuery("toName", "Destination"), Lat: to.Lat, Lng: to.Lng}
	response.Success(c, h.service.Plan(c.Request.Context(), src, dst))
}
