// Package taskgen implements the REST API handlers for triggering rule
// evaluation runs and managing the evaluator configuration.
package taskgen

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/portview/portview-backend/internal/services"
	"github.com/portview/portview-backend/model"
)

// RunNow triggers a portfolio-wide evaluation run and returns its outcome.
func RunNow(svc *services.TaskGenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := svc.RunAll(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":  "Task generation run failed: " + err.Error(),
				"result": result,
			})
		}
		return c.JSON(result)
	}
}

// RunForApplication re-evaluates one application and refreshes its score.
func RunForApplication(svc *services.TaskGenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if err := svc.ReevaluateApplication(c.Context(), key); err != nil {
			if errors.Is(err, services.ErrApplicationNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Re-evaluation failed: " + err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true, "application": key})
	}
}

// GetConfig returns the active evaluator configuration.
func GetConfig(svc *services.TaskGenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := svc.LoadConfig(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load config: " + err.Error(),
			})
		}
		return c.JSON(cfg)
	}
}

// PutConfig replaces the evaluator configuration.
func PutConfig(svc *services.TaskGenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cfg model.TaskGenerationConfig
		if err := c.BodyParser(&cfg); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if msg := validateConfig(cfg); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}
		if err := svc.SaveConfig(c.Context(), cfg); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save config: " + err.Error(),
			})
		}
		return c.JSON(cfg)
	}
}

func validateConfig(cfg model.TaskGenerationConfig) string {
	thresholds := map[string]int{
		"role_revalidation_days":          cfg.RoleRevalidationDays,
		"documentation_review_days":       cfg.DocumentationReviewDays,
		"application_info_review_days":    cfg.ApplicationInfoReviewDays,
		"critical_vulnerability_due_days": cfg.CriticalVulnerabilityDueDays,
		"high_vulnerability_due_days":     cfg.HighVulnerabilityDueDays,
		"medium_vulnerability_due_days":   cfg.MediumVulnerabilityDueDays,
	}
	for name, v := range thresholds {
		if v <= 0 {
			return name + " must be positive"
		}
	}
	return ""
}
