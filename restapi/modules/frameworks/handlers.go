// Package frameworks implements the REST API handlers for framework
// lifecycle records and the external EOL feed refresh.
package frameworks

import (
	"github.com/gofiber/fiber/v2"

	"github.com/portview/portview-backend/internal/services"
)

// ListVersions returns stored framework versions, optionally filtered by the
// family query parameter.
func ListVersions(svc *services.EolService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		versions, err := svc.ListFrameworkVersions(c.Context(), c.Query("family"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list framework versions: " + err.Error(),
			})
		}
		return c.JSON(fiber.Map{"count": len(versions), "versions": versions})
	}
}

// RefreshAll reconciles every configured framework family against the feed.
// Partial failures are reported in the body, not as an error status.
func RefreshAll(svc *services.EolService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.RefreshAll(c.Context()))
	}
}

// RefreshFamily reconciles a single framework family.
func RefreshFamily(svc *services.EolService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		refresh, err := svc.RefreshFamily(c.Context(), c.Params("family"))
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Feed refresh failed: " + err.Error(),
			})
		}
		return c.JSON(refresh)
	}
}
