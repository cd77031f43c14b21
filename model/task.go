// Package model - lifecycle task records and their append-only history.
package model

import "time"

// TaskType identifies the kind of work a lifecycle task represents.
type TaskType string

const (
	TaskTypeRoleValidation      TaskType = "RoleValidation"
	TaskTypeDocumentationReview TaskType = "DocumentationReview"
	TaskTypeArchitectureReview  TaskType = "ArchitectureReview"
	TaskTypeApplicationInfo     TaskType = "ApplicationInfoReview"
	TaskTypeSecurityRemediation TaskType = "SecurityRemediation"
)

// TaskPriority orders lifecycle tasks for triage.
type TaskPriority string

const (
	TaskPriorityCritical TaskPriority = "Critical"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityLow      TaskPriority = "Low"
)

// TaskStatus tracks where a task sits in its workflow.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

// IsTerminal reports whether the status ends the task's workflow.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// TaskHistoryEntry is an immutable record of a single task event.
type TaskHistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Note      string    `json:"note,omitempty"`
}

// LifecycleTask is an actionable work item against an application, created
// either by the rule evaluator or by a human. History entries are append-only;
// status transitions are the only mutation path.
type LifecycleTask struct {
	Key            string             `json:"_key,omitempty"`
	Type           TaskType           `json:"type"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Priority       TaskPriority       `json:"priority"`
	Status         TaskStatus         `json:"status"`
	ApplicationKey string             `json:"application_key"`
	AssigneeUserID string             `json:"assignee_user_id"`
	AssigneeName   string             `json:"assignee_name,omitempty"`
	DueDate        time.Time          `json:"due_date"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	History        []TaskHistoryEntry `json:"history,omitempty"`
	ObjType        string             `json:"objtype,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewLifecycleTask creates a pending task with an opening history entry.
func NewLifecycleTask(taskType TaskType, applicationKey, title string) *LifecycleTask {
	now := time.Now().UTC()
	return &LifecycleTask{
		Type:           taskType,
		Title:          title,
		Status:         TaskStatusPending,
		ApplicationKey: applicationKey,
		ObjType:        "LifecycleTask",
		History: []TaskHistoryEntry{
			{Timestamp: now, Actor: "system", Action: "created"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOverdue reports whether a non-terminal task has passed its due date.
func (t *LifecycleTask) IsOverdue(now time.Time) bool {
	if t.Status.IsTerminal() || t.DueDate.IsZero() {
		return false
	}
	return now.After(t.DueDate)
}

// DaysOverdue returns whole days past the due date, or 0 when not overdue.
func (t *LifecycleTask) DaysOverdue(now time.Time) int {
	if !t.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(t.DueDate).Hours() / 24)
}

// WithStatus returns a copy of the task with the status changed and a history
// entry appended. The receiver is never mutated.
func (t LifecycleTask) WithStatus(status TaskStatus, actor, note string, now time.Time) LifecycleTask {
	updated := t
	updated.Status = status
	updated.UpdatedAt = now
	if status == TaskStatusCompleted {
		completed := now
		updated.CompletedAt = &completed
	}
	updated.History = append(append([]TaskHistoryEntry{}, t.History...), TaskHistoryEntry{
		Timestamp: now,
		Actor:     actor,
		Action:    "status:" + string(status),
		Note:      note,
	})
	return updated
}
