// Package health exposes liveness and readiness endpoints.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves /health and /health/ready.
type Handler struct {
	db      *gorm.DB
	service string
}

// NewHandler creates a Handler. db may be nil when the service runs without Postgres.
func NewHandler(db *gorm.DB, service string) *Handler {
	return &Handler{db: db, service: service}
}

// RegisterRoutes mounts the health endpoints.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Live)
	r.GET("/health/ready", h.Ready)
}

// Live always answers ok while the process runs.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.service})
}

// Ready pings the database when one is configured.
func (h *Handler) Ready(c *gin.Context) {
	checks := gin.H{}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		checks["database"] = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	c.JSON(status, gin.H{"status": state, "service": h.service, "checks": checks})
}
