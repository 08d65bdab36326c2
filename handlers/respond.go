// handlers/respond.go - Shared response helpers
package handlers

import (
	"errors"

	"predictplay/services"

	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps a service error onto its HTTP status: ownership
// rejections are 403, missing rows 404, everything else a 400 validation
// failure. The error message is surfaced verbatim.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}
