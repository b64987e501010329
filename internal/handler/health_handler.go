package handler

import (
	"finlearn/internal/domain"
	"finlearn/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// HealthHandler reports liveness of the service and its collaborators.
type HealthHandler struct {
	db    *sqlx.DB
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db *sqlx.DB, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health checks the database and cache connections.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok", "db": "ok", "cache": "ok"}
	healthy := true

	if err := h.db.PingContext(c.Context()); err != nil {
		logger.Get().Error("Health check: database ping failed", zap.Error(err))
		status["db"] = "unavailable"
		healthy = false
	}
	if err := h.cache.Ping(c.Context()); err != nil {
		logger.Get().Error("Health check: cache ping failed", zap.Error(err))
		status["cache"] = "unavailable"
		healthy = false
	}

	if !healthy {
		status["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.Status(fiber.StatusOK).JSON(status)
}
