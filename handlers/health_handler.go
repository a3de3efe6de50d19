package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"devclub.community/configs"
)

// HealthHandler serves the welcome and health endpoints.
type HealthHandler struct {
	cfg       *configs.AppConfig
	startedAt time.Time
}

// NewHealthHandler wires the handler.
func NewHealthHandler(cfg *configs.AppConfig) *HealthHandler {
	return &HealthHandler{cfg: cfg, startedAt: time.Now().UTC()}
}

// Welcome serves GET / with the endpoint map.
func (h *HealthHandler) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Dev Club backend is live",
		"version":     "1.0.0",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Env,
		"endpoints": fiber.Map{
			"health":    "/api/health",
			"auth":      "/api/auth",
			"events":    "/api/event",
			"rsvp":      "/api/rsvp",
			"community": "/api/community",
			"email":     "/api/email",
		},
	})
}

// Health serves GET /api/health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "API is running",
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Env,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"version":     "1.0.0",
	})
}
