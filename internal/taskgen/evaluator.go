// Package taskgen implements the lifecycle task generation rules: role
// revalidation, documentation review, application-info review, and security
// remediation. Rules are pure and idempotent; they consult the existing task
// snapshot so re-running against unchanged facts proposes nothing new. The
// caller persists proposed tasks at the store boundary.
package taskgen

import (
	"time"

	"github.com/portview/portview-backend/model"
)

// RunResult aggregates the outcome of one evaluator run.
type RunResult struct {
	ApplicationsProcessed int                    `json:"applications_processed"`
	Created               int                    `json:"created"`
	Skipped               int                    `json:"skipped"`
	Errors                []string               `json:"errors,omitempty"`
	CreatedByType         map[model.TaskType]int `json:"created_by_type"`
	Note                  string                 `json:"note,omitempty"`

	// Tasks holds the proposed tasks for the caller to persist.
	Tasks []model.LifecycleTask `json:"-"`
}

// ruleResult is the outcome of a single rule module for one application.
type ruleResult struct {
	created []model.LifecycleTask
	skipped int
	errors  []string
}

// Evaluator runs the four rule modules against a portfolio snapshot with an
// immutable configuration. Build a fresh Evaluator per run; a concurrent
// config change never affects a run in flight.
type Evaluator struct {
	cfg model.TaskGenerationConfig
}

// NewEvaluator returns an Evaluator bound to the given configuration snapshot.
func NewEvaluator(cfg model.TaskGenerationConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Run evaluates every rule module across the full application set.
// A disabled configuration short-circuits with an explanatory note rather
// than an error.
func (e *Evaluator) Run(apps []model.Application, tasksByApp map[string][]model.LifecycleTask, now time.Time) RunResult {
	result := RunResult{CreatedByType: make(map[model.TaskType]int)}

	if !e.cfg.Enabled {
		result.Note = "task generation is disabled by configuration"
		return result
	}

	for i := range apps {
		appResult := e.evaluateApplication(&apps[i], tasksByApp[apps[i].Key], now)
		mergeResult(&result, appResult)
		result.ApplicationsProcessed++
	}

	return result
}

// RunForApplication evaluates all four rule modules scoped to one
// application. Used for on-demand recomputation after a sync event.
func (e *Evaluator) RunForApplication(app *model.Application, existing []model.LifecycleTask, now time.Time) RunResult {
	result := RunResult{CreatedByType: make(map[model.TaskType]int)}

	if !e.cfg.Enabled {
		result.Note = "task generation is disabled by configuration"
		return result
	}

	mergeResult(&result, e.evaluateApplication(app, existing, now))
	result.ApplicationsProcessed = 1
	return result
}

func (e *Evaluator) evaluateApplication(app *model.Application, existing []model.LifecycleTask, now time.Time) []ruleResult {
	return []ruleResult{
		e.evaluateRoleRevalidation(app, existing, now),
		e.evaluateDocumentationReview(app, existing, now),
		e.evaluateApplicationInfoReview(app, existing, now),
		e.evaluateSecurityRemediation(app, existing, now),
	}
}

func mergeResult(run *RunResult, rules []ruleResult) {
	for _, rule := range rules {
		for _, task := range rule.created {
			run.Tasks = append(run.Tasks, task)
			run.Created++
			run.CreatedByType[task.Type]++
		}
		run.Skipped += rule.skipped
		run.Errors = append(run.Errors, rule.errors...)
	}
}

// hasOpenTask reports whether a non-terminal task of the given type exists.
func hasOpenTask(existing []model.LifecycleTask, taskType model.TaskType) bool {
	for i := range existing {
		if existing[i].Type == taskType && !existing[i].Status.IsTerminal() {
			return true
		}
	}
	return false
}

// hasOpenTaskForAssignee reports whether a non-terminal task of the given
// type already targets the given assignee.
func hasOpenTaskForAssignee(existing []model.LifecycleTask, taskType model.TaskType, userID string) bool {
	for i := range existing {
		if existing[i].Type == taskType && existing[i].AssigneeUserID == userID && !existing[i].Status.IsTerminal() {
			return true
		}
	}
	return false
}

// hasOpenTaskWithPriority reports whether a non-terminal task of the given
// (type, priority) pair exists. Security remediation dedupes per severity.
func hasOpenTaskWithPriority(existing []model.LifecycleTask, taskType model.TaskType, priority model.TaskPriority) bool {
	for i := range existing {
		if existing[i].Type == taskType && existing[i].Priority == priority && !existing[i].Status.IsTerminal() {
			return true
		}
	}
	return false
}
