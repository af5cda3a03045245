package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Show handles GET /healthz.
func (h *HealthController) Show(c *ctx.Context) {
	if err := database.Ping(c.Context(), h.db); err != nil {
		logger.WithCtx(c.Context()).Warn("health check failed", "error", err)
		c.Error(http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.Success(map[string]string{"status": "ok"})
}
