// Package task defines types for Kafka event processing of lifecycle events.
package task

import (
	"time"

	"github.com/portview/portview-backend/model"
)

// TaskCreatedEvent is published whenever the rule evaluator persists a new
// lifecycle task.
type TaskCreatedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Task model.LifecycleTask `json:"task"`
}

// HealthScoredEvent is published after a health score recomputation so
// downstream dashboards can react without polling.
type HealthScoredEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Breakdown model.HealthScoreBreakdown `json:"breakdown"`
}

// ApplicationSyncedEvent arrives from the portfolio sync pipeline when an
// application's inventory record has been refreshed. It triggers a targeted
// re-evaluation instead of waiting for the scheduled full run.
type ApplicationSyncedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	ApplicationKey  string    `json:"application_key"`
	ApplicationName string    `json:"application_name,omitempty"`
	SyncedAt        time.Time `json:"synced_at"`
}
