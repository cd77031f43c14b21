// Package taskgen - role revalidation rule.
package taskgen

import (
	"fmt"
	"time"

	"github.com/portview/portview-backend/model"
)

const roleValidationDueDays = 30

// evaluateRoleRevalidation proposes one RoleValidation task per role
// assignment whose validation has gone stale or that is explicitly flagged
// for revalidation. The task is assigned to the role holder.
func (e *Evaluator) evaluateRoleRevalidation(app *model.Application, existing []model.LifecycleTask, now time.Time) ruleResult {
	var result ruleResult

	cutoff := now.AddDate(0, 0, -e.cfg.RoleRevalidationDays)

	for _, assignment := range app.RoleAssignments {
		if assignment.LastValidated().After(cutoff) && !assignment.NeedsRevalidation {
			result.skipped++
			continue
		}

		if hasOpenTaskForAssignee(existing, model.TaskTypeRoleValidation, assignment.UserID) {
			result.skipped++
			continue
		}

		task := model.NewLifecycleTask(
			model.TaskTypeRoleValidation,
			app.Key,
			fmt.Sprintf("Revalidate %s assignment on %s", assignment.Role, app.Name),
		)
		task.Description = fmt.Sprintf("The %s role held by %s was last validated on %s and requires revalidation.",
			assignment.Role, displayName(assignment), assignment.LastValidated().Format("2006-01-02"))
		task.Priority = model.TaskPriorityMedium
		task.AssigneeUserID = assignment.UserID
		task.AssigneeName = assignment.UserName
		task.DueDate = now.AddDate(0, 0, roleValidationDueDays)

		result.created = append(result.created, *task)
	}

	return result
}

func displayName(assignment model.RoleAssignment) string {
	if assignment.UserName != "" {
		return assignment.UserName
	}
	return assignment.UserID
}
