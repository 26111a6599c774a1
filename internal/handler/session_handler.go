package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/pkg/response"
)

// SessionHandler handles HTTP requests for booking wizard sessions.
type SessionHandler struct {
	service *application.TravelService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *application.TravelService) *SessionHandler {
	return &SessionHandler{service: service}
}

// RegisterRoutes registers all session routes on the given router group.
func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/api/v1/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.PUT("/:id/source", h.SetSource)
		sessions.PUT("/:id/destination", h.SetDestination)
		sessions.POST("/:id/map/open", h.OpenMap)
		sessions.POST("/:id/map/close", h.CloseMap)
		sessions.POST("/:id/map/toggle", h.ToggleMapSize)
		sessions.POST("/:id/map/route-drawn", h.RouteDrawn)
		sessions.PUT("/:id/transport", h.SelectTransport)
		sessions.POST("/:id/bookings", h.AddBooking)
		sessions.GET("/:id/bookings", h.ListBookings)
		sessions.GET("/:id/bookings/:bookingId/receipt", h.Receipt)
	}
}

// CreateSession handles POST /api/v1/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	result, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetSession handles GET /api/v1/sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SetSource handles PUT /api/v1/sessions/:id/source. A null body clears it.
func (h *SessionHandler) SetSource(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	loc, ok := bindLocation(c)
	if !ok {
		return
	}

	result, err := h.service.SetSource(c.Request.Context(), id, loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetDestination handles PUT /api/v1/sessions/:id/destination. A null body clears it.
func (h *SessionHandler) SetDestination(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	loc, ok := bindLocation(c)
	if !ok {
		return
	}

	result, err := h.service.SetDestination(c.Request.Context(), id, loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// OpenMap handles POST /api/v1/sessions/:id/map/open.
func (h *SessionHandler) OpenMap(c *gin.Context) {
	h.transition(c, h.service.OpenMap)
}

// CloseMap handles POST /api/v1/sessions/:id/map/close.
func (h *SessionHandler) CloseMap(c *gin.Context) {
	h.transition(c, h.service.CloseMap)
}

// ToggleMapSize handles POST /api/v1/sessions/:id/map/toggle.
func (h *SessionHandler) ToggleMapSize(c *gin.Context) {
	h.transition(c, h.service.ToggleMapSize)
}

// RouteDrawn handles POST /api/v1/sessions/:id/map/route-drawn.
func (h *SessionHandler) RouteDrawn(c *gin.Context) {
	h.transition(c, h.service.OnRouteDrawn)
}

type selectTransportRequest struct {
	TransportType string `json:"transportType" binding:"required"`
}

// SelectTransport handles PUT /api/v1/sessions/:id/transport.
func (h *SessionHandler) SelectTransport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req selectTransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SelectTransport(c.Request.Context(), id, req.TransportType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddBooking handles POST /api/v1/sessions/:id/bookings.
func (h *SessionHandler) AddBooking(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req application.AddBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddBookingRecord(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/sessions/:id/bookings.
func (h *SessionHandler) ListBookings(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := h.service.ListBookings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Receipt handles GET /api/v1/sessions/:id/bookings/:bookingId/receipt.
func (h *SessionHandler) Receipt(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingId")

	pdf, err := h.service.BookingReceipt(c.Request.Context(), id, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, bookingID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *SessionHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*application.SessionDTO, error)) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// bindLocation reads an optional Location body, writing a 400 on malformed input.
func bindLocation(c *gin.Context) (*location.Location, bool) {
	var loc location.Location
	present, err := decodeNullableJSON(c, &loc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	if !present {
		return nil, true
	}
	return &loc, true
}
