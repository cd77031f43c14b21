// Package taskgen - security remediation rule.
package taskgen

import (
	"fmt"
	"time"

	"github.com/portview/portview-backend/model"
)

// severityBucket pairs a remediation bucket with its task priority.
type severityBucket struct {
	severity model.Severity
	priority model.TaskPriority
}

var remediationBuckets = []severityBucket{
	{model.SeverityCritical, model.TaskPriorityCritical},
	{model.SeverityHigh, model.TaskPriorityHigh},
	{model.SeverityMedium, model.TaskPriorityMedium},
}

// evaluateSecurityRemediation proposes one SecurityRemediation task per
// severity bucket holding unresolved findings. Exposed repository secrets
// count toward the Critical bucket when configured. Without a technical
// assignee the whole application is skipped with an error; a remediation
// task is never created unassigned.
func (e *Evaluator) evaluateSecurityRemediation(app *model.Application, existing []model.LifecycleTask, now time.Time) ruleResult {
	var result ruleResult

	counts := map[model.Severity]int{}
	for _, f := range app.UnresolvedFindings() {
		counts[f.Severity]++
	}

	secretsAsCritical := e.cfg.TreatExposedSecretsAsCritical &&
		app.Repository != nil && app.Repository.HasExposedSecrets
	if secretsAsCritical {
		counts[model.SeverityCritical]++
	}

	anyWork := false
	for _, bucket := range remediationBuckets {
		if counts[bucket.severity] > 0 {
			anyWork = true
		}
	}
	if !anyWork {
		return result
	}

	assignee, found := firstAssignee(app, securityRemediationChain, false)
	if !found {
		result.errors = append(result.errors,
			fmt.Sprintf("security remediation for %s: unresolved findings exist but no technical role is assigned", app.Name))
		result.skipped += len(remediationBuckets)
		return result
	}

	for _, bucket := range remediationBuckets {
		count := counts[bucket.severity]
		if count == 0 {
			continue
		}

		if hasOpenTaskWithPriority(existing, model.TaskTypeSecurityRemediation, bucket.priority) {
			result.skipped++
			continue
		}

		task := model.NewLifecycleTask(
			model.TaskTypeSecurityRemediation,
			app.Key,
			fmt.Sprintf("Remediate %s security findings on %s", bucket.severity, app.Name),
		)
		task.Description = fmt.Sprintf("%d unresolved %s finding(s) require remediation.", count, bucket.severity)
		if bucket.severity == model.SeverityCritical && secretsAsCritical {
			task.Description += " Includes exposed secrets detected in the linked repository."
		}
		task.Priority = bucket.priority
		task.AssigneeUserID = assignee.UserID
		task.AssigneeName = assignee.UserName
		task.DueDate = now.AddDate(0, 0, e.dueDaysFor(bucket.severity))

		result.created = append(result.created, *task)
	}

	return result
}

func (e *Evaluator) dueDaysFor(severity model.Severity) int {
	switch severity {
	case model.SeverityCritical:
		return e.cfg.CriticalVulnerabilityDueDays
	case model.SeverityHigh:
		return e.cfg.HighVulnerabilityDueDays
	case model.SeverityMedium:
		return e.cfg.MediumVulnerabilityDueDays
	default:
		return e.cfg.MediumVulnerabilityDueDays
	}
}
