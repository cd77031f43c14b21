// Package applications implements the REST API handlers for portfolio queries
// and health score recomputation.
package applications

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/portview/portview-backend/internal/services"
)

// ListApplications returns the whole portfolio.
func ListApplications(svc *services.HealthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apps, err := svc.ListApplications(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list applications: " + err.Error(),
			})
		}
		return c.JSON(ListResponse{Count: len(apps), Applications: apps})
	}
}

// GetApplication returns one application by key.
func GetApplication(svc *services.HealthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.GetApplication(c.Context(), c.Params("key"))
		if err != nil {
			if errors.Is(err, services.ErrApplicationNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(app)
	}
}

// GetHealth recomputes and returns the application's score breakdown. The
// fresh score and category are persisted as a side effect.
func GetHealth(svc *services.HealthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		breakdown, err := svc.RecomputeApplication(c.Context(), key)
		if err != nil {
			if errors.Is(err, services.ErrApplicationNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to compute health score: " + err.Error(),
			})
		}
		return c.JSON(HealthResponse{Application: key, Breakdown: breakdown})
	}
}

// RecomputeAll rescores every application in the portfolio.
func RecomputeAll(svc *services.HealthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scored, failed := svc.RecomputeAll(c.Context())
		return c.JSON(RecomputeAllResponse{Scored: scored, Failed: failed})
	}
}
