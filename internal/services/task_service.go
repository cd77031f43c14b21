// Package services provides internal service implementations for the
// portview backend. Services own the store boundary: handlers and event
// consumers call into them instead of issuing queries themselves.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/portview/portview-backend/database"
	"github.com/portview/portview-backend/internal/taskgen"
	"github.com/portview/portview-backend/model"
)

var logger = database.InitLogger().Sugar()

// Sentinel errors for store lookups. Callers translate these to transport
// status codes; everything else is an internal failure.
var (
	ErrTaskNotFound        = errors.New("lifecycle task not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrTaskTerminal        = errors.New("task is already in a terminal status")
)

// EventPublisher decouples services from the Kafka producer so they stay
// testable without a broker. A nil publisher disables event emission.
type EventPublisher interface {
	PublishTaskCreated(ctx context.Context, created model.LifecycleTask) error
	PublishHealthScored(ctx context.Context, breakdown model.HealthScoreBreakdown) error
}

// TaskService owns lifecycle task persistence. Task creation flows through
// ApplyRunResult so the duplicate check always runs against current store
// state; UpdateTaskStatus is the only mutation path for existing tasks.
type TaskService struct {
	DB     database.DBConnection
	Events EventPublisher
}

// ListTasksForApplication returns every task for one application, newest first.
func (s *TaskService) ListTasksForApplication(ctx context.Context, appKey string) ([]model.LifecycleTask, error) {
	query := `
		FOR t IN lifecycle_task
			FILTER t.application_key == @app
			SORT t.created_at DESC
			RETURN t
	`
	return s.queryTasks(ctx, query, map[string]interface{}{"app": appKey})
}

// ListOpenTasksForApplication returns the non-terminal tasks for one
// application, the snapshot the rule evaluator deduplicates against.
func (s *TaskService) ListOpenTasksForApplication(ctx context.Context, appKey string) ([]model.LifecycleTask, error) {
	query := `
		FOR t IN lifecycle_task
			FILTER t.application_key == @app
			   AND t.status NOT IN ["Completed", "Cancelled"]
			RETURN t
	`
	return s.queryTasks(ctx, query, map[string]interface{}{"app": appKey})
}

// ListTasks returns tasks across the portfolio with optional status and type
// filters; pass "" to skip a filter.
func (s *TaskService) ListTasks(ctx context.Context, status, taskType string) ([]model.LifecycleTask, error) {
	query := `
		FOR t IN lifecycle_task
			FILTER (@status == "" OR t.status == @status)
			   AND (@type == "" OR t.type == @type)
			SORT t.due_date ASC
			RETURN t
	`
	return s.queryTasks(ctx, query, map[string]interface{}{"status": status, "type": taskType})
}

// GetTask fetches one task by key, returning ErrTaskNotFound when absent.
func (s *TaskService) GetTask(ctx context.Context, key string) (model.LifecycleTask, error) {
	query := `
		FOR t IN lifecycle_task
			FILTER t._key == @key
			LIMIT 1
			RETURN t
	`
	tasks, err := s.queryTasks(ctx, query, map[string]interface{}{"key": key})
	if err != nil {
		return model.LifecycleTask{}, err
	}
	if len(tasks) == 0 {
		return model.LifecycleTask{}, fmt.Errorf("task %s: %w", key, ErrTaskNotFound)
	}
	return tasks[0], nil
}

// ApplyRunResult persists the tasks an evaluator run produced. Each task is
// re-checked against the store immediately before insert so a run working
// from a stale snapshot never creates a duplicate. Returns the tasks that
// were actually inserted.
func (s *TaskService) ApplyRunResult(ctx context.Context, result taskgen.RunResult) ([]model.LifecycleTask, error) {
	var inserted []model.LifecycleTask

	for _, t := range result.Tasks {
		assignee, priority := duplicateIdentity(t)

		existingKey, err := database.FindOpenTaskKey(ctx, s.DB.Database, t.ApplicationKey, t.Type, assignee, priority)
		if err != nil {
			return inserted, fmt.Errorf("duplicate check for %s/%s: %w", t.ApplicationKey, t.Type, err)
		}
		if existingKey != "" {
			logger.Infof("Skipping duplicate %s task for application %s (open task %s)", t.Type, t.ApplicationKey, existingKey)
			continue
		}

		meta, err := s.DB.Collections[database.CollectionLifecycleTask].CreateDocument(ctx, t)
		if err != nil {
			return inserted, fmt.Errorf("create task for %s/%s: %w", t.ApplicationKey, t.Type, err)
		}
		t.Key = meta.Key
		inserted = append(inserted, t)

		if s.Events != nil {
			if err := s.Events.PublishTaskCreated(ctx, t); err != nil {
				// Event delivery is best-effort; the task is already stored.
				logger.Warnf("Failed to publish task.created for %s: %v", t.Key, err)
			}
		}
	}

	return inserted, nil
}

// duplicateIdentity returns the store-level duplicate filters for a task
// type. Role validation dedupes per assignee and security remediation per
// priority bucket; everything else dedupes on (application, type) alone.
func duplicateIdentity(t model.LifecycleTask) (assignee, priority string) {
	switch t.Type {
	case model.TaskTypeRoleValidation:
		return t.AssigneeUserID, ""
	case model.TaskTypeSecurityRemediation:
		return "", string(t.Priority)
	default:
		return "", ""
	}
}

// UpdateTaskStatus transitions a task and appends a history entry. Terminal
// tasks are immutable.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, key string, status model.TaskStatus, actor, note string) (model.LifecycleTask, error) {
	current, err := s.GetTask(ctx, key)
	if err != nil {
		return model.LifecycleTask{}, err
	}
	if current.Status.IsTerminal() {
		return model.LifecycleTask{}, fmt.Errorf("task %s: %w", key, ErrTaskTerminal)
	}

	updated := current.WithStatus(status, actor, note, time.Now().UTC())
	if _, err := s.DB.Collections[database.CollectionLifecycleTask].ReplaceDocument(ctx, key, updated); err != nil {
		return model.LifecycleTask{}, fmt.Errorf("update task %s: %w", key, err)
	}

	logger.Infof("Task %s transitioned %s -> %s by %s", key, current.Status, status, actor)
	return updated, nil
}

func (s *TaskService) queryTasks(ctx context.Context, query string, bindVars map[string]interface{}) ([]model.LifecycleTask, error) {
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var tasks []model.LifecycleTask
	for cursor.HasMore() {
		var t model.LifecycleTask
		if _, err := cursor.ReadDocument(ctx, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
