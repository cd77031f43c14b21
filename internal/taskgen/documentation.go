// Package taskgen - documentation review rule.
package taskgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/portview/portview-backend/model"
)

const (
	documentationReviewDueDays  = 30
	lowCompletenessHighPriority = 50
)

// evaluateDocumentationReview proposes a DocumentationReview task when the
// last completed review is older than the configured threshold. Applications
// with nobody to assign record an error; an unassigned task is never created.
func (e *Evaluator) evaluateDocumentationReview(app *model.Application, existing []model.LifecycleTask, now time.Time) ruleResult {
	var result ruleResult

	cutoff := now.AddDate(0, 0, -e.cfg.DocumentationReviewDays)

	lastReview, reviewed := lastDocumentationReview(app, existing)
	if !reviewed {
		// Never reviewed: force stale so the rule fires.
		lastReview = cutoff.AddDate(0, 0, -1)
	}

	if lastReview.After(cutoff) {
		result.skipped++
		return result
	}

	if hasOpenTask(existing, model.TaskTypeDocumentationReview) {
		result.skipped++
		return result
	}

	assignee, found := firstAssignee(app, documentationReviewChain, true)
	if !found {
		result.errors = append(result.errors,
			fmt.Sprintf("documentation review for %s: no role assignment available to assign the task", app.Name))
		result.skipped++
		return result
	}

	task := model.NewLifecycleTask(
		model.TaskTypeDocumentationReview,
		app.Key,
		fmt.Sprintf("Review documentation for %s", app.Name),
	)
	task.Description = fmt.Sprintf("Documentation completeness is %d%%. Review and update the application documentation set.",
		app.Documentation.CompletenessScore())
	task.Priority = model.TaskPriorityMedium
	if app.Documentation.CompletenessScore() < lowCompletenessHighPriority {
		task.Priority = model.TaskPriorityHigh
	}
	task.AssigneeUserID = assignee.UserID
	task.AssigneeName = assignee.UserName
	task.DueDate = now.AddDate(0, 0, documentationReviewDueDays)

	result.created = append(result.created, *task)
	return result
}

// lastDocumentationReview returns the most recent completed documentation
// review, looking at completed review tasks and review-typed key dates.
func lastDocumentationReview(app *model.Application, existing []model.LifecycleTask) (time.Time, bool) {
	var last time.Time
	found := false

	for i := range existing {
		t := &existing[i]
		if t.Type != model.TaskTypeDocumentationReview || t.Status != model.TaskStatusCompleted || t.CompletedAt == nil {
			continue
		}
		if t.CompletedAt.After(last) {
			last = *t.CompletedAt
			found = true
		}
	}

	for _, kd := range app.KeyDates {
		if !isDocumentationReviewDate(kd) {
			continue
		}
		if kd.Date.After(last) {
			last = kd.Date
			found = true
		}
	}

	return last, found
}

func isDocumentationReviewDate(kd model.KeyDate) bool {
	kind := strings.ToLower(kd.Type)
	if kind != "review" && kind != "audit" {
		return false
	}
	return strings.Contains(strings.ToLower(kd.Description), "doc")
}
