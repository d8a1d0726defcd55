package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

const pingTimeout = 2 * time.Second

// Pinger checks that the location database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler serves the liveness and readiness endpoints.
type ProbeHandler struct {
	store    Pinger
	maxWords int
}

func NewProbeHandler(store Pinger, maxWords int) *ProbeHandler {
	return &ProbeHandler{store: store, maxWords: maxWords}
}

// Liveness always answers 200 while the process runs.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Readiness answers 503 until the location database responds to a ping.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unavailable",
			"database": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":    "ok",
		"database":  "ok",
		"max_words": h.maxWords,
	})
}
