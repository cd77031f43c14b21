package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"gopkg.in/yaml.v2"

	"github.com/portview/portview-backend/database"
	"github.com/portview/portview-backend/internal/taskgen"
	"github.com/portview/portview-backend/model"
)

const taskConfigKey = "current"

// TaskGenService runs the rule evaluator against store state. It implements
// the Reevaluator contract used by the Kafka event processor.
type TaskGenService struct {
	DB     database.DBConnection
	Tasks  *TaskService
	Health *HealthService
}

// LoadConfig returns the stored evaluator configuration, falling back to an
// optional YAML bootstrap file (TASKGEN_CONFIG_FILE) and then to defaults.
// The first successful fallback is persisted so later edits go through the
// stored document.
func (s *TaskGenService) LoadConfig(ctx context.Context) (model.TaskGenerationConfig, error) {
	query := `
		FOR c IN task_config
			FILTER c._key == @key
			LIMIT 1
			RETURN c
	`
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": taskConfigKey},
	})
	if err != nil {
		return model.TaskGenerationConfig{}, err
	}
	defer cursor.Close()

	if cursor.HasMore() {
		var cfg model.TaskGenerationConfig
		if _, err := cursor.ReadDocument(ctx, &cfg); err != nil {
			return model.TaskGenerationConfig{}, err
		}
		return cfg, nil
	}

	cfg := model.DefaultTaskGenerationConfig()
	if path := os.Getenv("TASKGEN_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return model.TaskGenerationConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return model.TaskGenerationConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := s.SaveConfig(ctx, cfg); err != nil {
		return model.TaskGenerationConfig{}, err
	}
	return cfg, nil
}

// SaveConfig upserts the evaluator configuration document.
func (s *TaskGenService) SaveConfig(ctx context.Context, cfg model.TaskGenerationConfig) error {
	query := `
		UPSERT { _key: @key }
			INSERT MERGE({ _key: @key }, @cfg)
			UPDATE @cfg
		IN task_config
	`
	_, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"key": taskConfigKey,
			"cfg": cfg,
		},
	})
	if err != nil {
		return fmt.Errorf("save task config: %w", err)
	}
	return nil
}

// RunAll evaluates the rules across the whole portfolio and persists the
// resulting tasks. The returned result reflects what was actually stored.
func (s *TaskGenService) RunAll(ctx context.Context) (taskgen.RunResult, error) {
	cfg, err := s.LoadConfig(ctx)
	if err != nil {
		return taskgen.RunResult{}, fmt.Errorf("load config: %w", err)
	}

	apps, err := s.Health.ListApplications(ctx)
	if err != nil {
		return taskgen.RunResult{}, fmt.Errorf("list applications: %w", err)
	}

	tasksByApp := make(map[string][]model.LifecycleTask, len(apps))
	for _, app := range apps {
		open, err := s.Tasks.ListOpenTasksForApplication(ctx, app.Key)
		if err != nil {
			return taskgen.RunResult{}, fmt.Errorf("load open tasks for %s: %w", app.Key, err)
		}
		tasksByApp[app.Key] = open
	}

	result := taskgen.NewEvaluator(cfg).Run(apps, tasksByApp, time.Now().UTC())

	inserted, err := s.Tasks.ApplyRunResult(ctx, result)
	if err != nil {
		return result, err
	}
	reconcile(&result, inserted)

	logger.Infof("Task generation run: %d applications, %d created, %d skipped, %d errors",
		result.ApplicationsProcessed, result.Created, result.Skipped, len(result.Errors))
	return result, nil
}

// ReevaluateApplication runs the rules for one application, typically in
// response to an application.synced event, then refreshes its health score.
func (s *TaskGenService) ReevaluateApplication(ctx context.Context, applicationKey string) error {
	cfg, err := s.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := s.Health.GetApplication(ctx, applicationKey)
	if err != nil {
		return err
	}

	open, err := s.Tasks.ListOpenTasksForApplication(ctx, applicationKey)
	if err != nil {
		return fmt.Errorf("load open tasks for %s: %w", applicationKey, err)
	}

	result := taskgen.NewEvaluator(cfg).RunForApplication(&app, open, time.Now().UTC())
	if _, err := s.Tasks.ApplyRunResult(ctx, result); err != nil {
		return err
	}

	if _, err := s.Health.RecomputeApplication(ctx, applicationKey); err != nil {
		return fmt.Errorf("rescore %s: %w", applicationKey, err)
	}
	return nil
}

// reconcile folds store-boundary duplicate skips back into the run counters
// so the reported numbers match what the store accepted.
func reconcile(result *taskgen.RunResult, inserted []model.LifecycleTask) {
	dropped := result.Created - len(inserted)
	if dropped <= 0 {
		return
	}
	result.Created = len(inserted)
	result.Skipped += dropped

	counts := make(map[model.TaskType]int, len(inserted))
	for _, t := range inserted {
		counts[t.Type]++
	}
	result.CreatedByType = counts
	result.Tasks = inserted
}
