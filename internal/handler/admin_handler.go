package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/pkg/middleware"
	"github.com/monastery360/service-travel/pkg/response"
)

// AdminHandler handles operator requests for session and festival maintenance.
type AdminHandler struct {
	travel    *application.TravelService
	festivals *application.FestivalService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(travel *application.TravelService, festivals *application.FestivalService) *AdminHandler {
	return &AdminHandler{travel: travel, festivals: festivals}
}

// RegisterRoutes registers admin routes guarded by token.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, token string) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminTokenMiddleware(token))
	{
		admin.GET("/stats/sessions", h.SessionStats)
		admin.POST("/festivals/sync", h.SyncFestivals)
	}
}

// SessionStats handles GET /api/v1/admin/stats/sessions.
func (h *AdminHandler) SessionStats(c *gin.Context) {
	stats, err := h.travel.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// SyncFestivals handles POST /api/v1/admin/festivals/sync.
func (h *AdminHandler) SyncFestivals(c *gin.Context) {
	n, err := h.festivals.Sync(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"synced": n})
}
