package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return jsonStatus(c, fiber.StatusOK, data)
}

// jsonStatus returns data in the standard envelope with the given status code.
func jsonStatus(c fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// JSONError is exported for the server error handler so API routes keep the
// envelope format for errors raised by middleware.
func JSONError(c fiber.Ctx, status int, message string) error {
	return jsonError(c, status, message)
}
