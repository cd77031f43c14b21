package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"critical", SeverityCritical},
		{" CRITICAL ", SeverityCritical},
		{"High", SeverityHigh},
		{"moderate", SeverityMedium},
		{"medium", SeverityMedium},
		{"low", SeverityLow},
		{"banana", SeverityLow},
		{"", SeverityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSeverity(tt.in), "input %q", tt.in)
	}
}

func TestDocumentationCompletenessScore(t *testing.T) {
	assert.Equal(t, 0, Documentation{}.CompletenessScore())
	assert.Equal(t, 50, Documentation{HasArchitectureDiagram: true, HasUserDocumentation: true}.CompletenessScore())
	assert.Equal(t, 100, Documentation{
		HasArchitectureDiagram:  true,
		HasSystemDocumentation:  true,
		HasUserDocumentation:    true,
		HasSupportDocumentation: true,
	}.CompletenessScore())
}

func TestRoleAssignmentLastValidated(t *testing.T) {
	assigned := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	validated := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	ra := RoleAssignment{AssignedDate: assigned}
	assert.Equal(t, assigned, ra.LastValidated())

	ra.LastValidatedDate = &validated
	assert.Equal(t, validated, ra.LastValidated())
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	task := NewLifecycleTask(TaskTypeDocumentationReview, "app1", "Review docs")
	task.DueDate = now.AddDate(0, 0, -40)

	assert.True(t, task.IsOverdue(now))
	assert.Equal(t, 40, task.DaysOverdue(now))

	task.Status = TaskStatusCompleted
	assert.False(t, task.IsOverdue(now), "terminal tasks are never overdue")
	assert.Equal(t, 0, task.DaysOverdue(now))

	fresh := NewLifecycleTask(TaskTypeRoleValidation, "app1", "Validate role")
	fresh.DueDate = now.AddDate(0, 0, 5)
	assert.False(t, fresh.IsOverdue(now))
}

func TestTaskWithStatusAppendsHistory(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	original := NewLifecycleTask(TaskTypeSecurityRemediation, "app1", "Fix findings")
	require.Len(t, original.History, 1)
	assert.Equal(t, "created", original.History[0].Action)

	inProgress := original.WithStatus(TaskStatusInProgress, "alice", "picked up", now)
	assert.Equal(t, TaskStatusInProgress, inProgress.Status)
	require.Len(t, inProgress.History, 2)
	assert.Equal(t, "status:InProgress", inProgress.History[1].Action)
	assert.Nil(t, inProgress.CompletedAt)

	// Receiver untouched
	assert.Equal(t, TaskStatusPending, original.Status)
	assert.Len(t, original.History, 1)

	done := inProgress.WithStatus(TaskStatusCompleted, "alice", "remediated", now.Add(time.Hour))
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now.Add(time.Hour), *done.CompletedAt)
	assert.Len(t, done.History, 3)
}

func TestUnresolvedFindings(t *testing.T) {
	app := NewApplication("billing")
	app.SecurityFindings = []SecurityFinding{
		{Severity: SeverityCritical, Resolved: false},
		{Severity: SeverityHigh, Resolved: true},
		{Severity: SeverityLow, Resolved: false},
	}
	open := app.UnresolvedFindings()
	require.Len(t, open, 2)
	assert.Equal(t, SeverityCritical, open[0].Severity)
	assert.Equal(t, SeverityLow, open[1].Severity)
}
