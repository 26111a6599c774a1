package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/internal/domain/festival"
	"github.com/monastery360/service-travel/pkg/domain"
	"github.com/monastery360/service-travel/pkg/response"
)

// FestivalHandler handles HTTP requests for the festival catalog.
type FestivalHandler struct {
	service *application.FestivalService
}

// NewFestivalHandler creates a new FestivalHandler.
func NewFestivalHandler(service *application.FestivalService) *FestivalHandler {
	return &FestivalHandler{service: service}
}

// RegisterRoutes registers all festival routes on the given router group.
func (h *FestivalHandler) RegisterRoutes(r *gin.RouterGroup) {
	festivals := r.Group("/api/v1/festivals")
	{
		festivals.GET("", h.List)
		festivals.GET("/calendar", h.Calendar)
		festivals.GET("/export.ics", h.ExportICS)
	}
}

// List handles GET /api/v1/festivals. The body is the bare array of rows.
func (h *FestivalHandler) List(c *gin.Context) {
	festivals, err := h.service.List(c.Request.Context())
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			c.JSON(response.StatusFor(appErr.Code), gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": application.MsgSheetReadFailed})
		return
	}

	c.JSON(http.StatusOK, festivals)
}

// Calendar handles GET /api/v1/festivals/calendar?q=&type=&date=.
func (h *FestivalHandler) Calendar(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	response.Success(c, h.service.Calendar(c.Request.Context(), filter))
}

// ExportICS handles GET /api/v1/festivals/export.ics.
func (h *FestivalHandler) ExportICS(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	body, err := h.service.ExportICS(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sikkim-festivals.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func bindFilter(c *gin.Context) (festival.Filter, bool) {
	filter, err := festival.ParseFilter(c.Query("q"), c.Query("type"), c.Query("date"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return festival.Filter{}, false
	}
	return filter, true
}
