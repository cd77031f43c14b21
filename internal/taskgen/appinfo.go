// Package taskgen - application information review rule.
package taskgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/portview/portview-backend/model"
)

const applicationInfoDueDays = 60

// evaluateApplicationInfoReview proposes an ApplicationInfoReview task when
// the recorded application facts have not been audited within the threshold.
// A recent sync from the source systems counts as freshness even without an
// explicit audit date.
func (e *Evaluator) evaluateApplicationInfoReview(app *model.Application, existing []model.LifecycleTask, now time.Time) ruleResult {
	var result ruleResult

	cutoff := now.AddDate(0, 0, -e.cfg.ApplicationInfoReviewDays)

	if app.LastSyncedAt != nil && app.LastSyncedAt.After(cutoff) {
		result.skipped++
		return result
	}

	lastAudit, audited := lastInfoAudit(app)
	if audited && lastAudit.After(cutoff) {
		result.skipped++
		return result
	}

	if hasOpenTask(existing, model.TaskTypeApplicationInfo) {
		result.skipped++
		return result
	}

	assignee, found := firstAssignee(app, applicationInfoChain, true)
	if !found {
		result.errors = append(result.errors,
			fmt.Sprintf("application info review for %s: no role assignment available to assign the task", app.Name))
		result.skipped++
		return result
	}

	task := model.NewLifecycleTask(
		model.TaskTypeApplicationInfo,
		app.Key,
		fmt.Sprintf("Review application information for %s", app.Name),
	)
	task.Description = "Verify ownership, usage classification, key dates, and documentation links against the source systems."
	task.Priority = model.TaskPriorityLow
	task.AssigneeUserID = assignee.UserID
	task.AssigneeName = assignee.UserName
	task.DueDate = now.AddDate(0, 0, applicationInfoDueDays)

	result.created = append(result.created, *task)
	return result
}

// lastInfoAudit returns the most recent audit-typed key date, accepting
// free-text key dates that mention an audit or info review.
func lastInfoAudit(app *model.Application) (time.Time, bool) {
	var last time.Time
	found := false

	for _, kd := range app.KeyDates {
		if !isInfoAuditDate(kd) {
			continue
		}
		if kd.Date.After(last) {
			last = kd.Date
			found = true
		}
	}

	return last, found
}

func isInfoAuditDate(kd model.KeyDate) bool {
	if strings.EqualFold(kd.Type, "audit") {
		return true
	}
	desc := strings.ToLower(kd.Description)
	return strings.Contains(desc, "audit") || strings.Contains(desc, "info review")
}
