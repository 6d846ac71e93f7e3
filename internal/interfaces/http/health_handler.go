package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responde el estado del servicio.
type HealthHandler struct {
	service string
	check   func(ctx context.Context) error
}

// NewHealthHandler construye el handler; check puede ser nil.
func NewHealthHandler(service string, check func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{service: service, check: check}
}

// Check godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if h.check != nil {
		if err := h.check(c.UserContext()); err != nil {
			c.Locals(localError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": h.service})
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}
