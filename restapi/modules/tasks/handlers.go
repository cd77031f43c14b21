// Package tasks implements the REST API handlers for lifecycle task
// operations. Status transitions are the only mutation exposed; task
// creation happens exclusively through the rule evaluator.
package tasks

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/portview/portview-backend/internal/services"
	"github.com/portview/portview-backend/model"
)

// ListTasks returns tasks across the portfolio, optionally filtered by the
// status and type query parameters.
func ListTasks(svc *services.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListTasks(c.Context(), c.Query("status"), c.Query("type"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list tasks: " + err.Error(),
			})
		}
		return c.JSON(ListResponse{Count: len(list), Tasks: list})
	}
}

// ListForApplication returns every task attached to one application.
func ListForApplication(svc *services.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListTasksForApplication(c.Context(), c.Params("key"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list tasks: " + err.Error(),
			})
		}
		return c.JSON(ListResponse{Count: len(list), Tasks: list})
	}
}

// GetTask returns one task by key, history included.
func GetTask(svc *services.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := svc.GetTask(c.Context(), c.Params("key"))
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(t)
	}
}

// UpdateStatus transitions a task through its workflow.
func UpdateStatus(svc *services.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req StatusUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if !validStatus(req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown status: " + string(req.Status),
			})
		}
		if req.Actor == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "actor is required"})
		}

		updated, err := svc.UpdateTaskStatus(c.Context(), c.Params("key"), req.Status, req.Actor, req.Note)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrTaskTerminal):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
		}
		return c.JSON(updated)
	}
}

func validStatus(s model.TaskStatus) bool {
	switch s {
	case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted, model.TaskStatusCancelled:
		return true
	}
	return false
}
