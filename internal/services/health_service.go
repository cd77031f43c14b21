package services

import (
	"context"
	"fmt"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/portview/portview-backend/database"
	"github.com/portview/portview-backend/internal/scoring"
	"github.com/portview/portview-backend/model"
)

// HealthService recomputes and persists application health scores. The
// calculator itself is pure; this service feeds it store state and writes
// the resulting score and category back onto the application record.
type HealthService struct {
	DB         database.DBConnection
	Calculator *scoring.Calculator
	Tasks      *TaskService
	Events     EventPublisher
}

// GetApplication fetches one application by key, returning
// ErrApplicationNotFound when absent.
func (s *HealthService) GetApplication(ctx context.Context, key string) (model.Application, error) {
	query := `
		FOR a IN application
			FILTER a._key == @key
			LIMIT 1
			RETURN a
	`
	apps, err := s.queryApplications(ctx, query, map[string]interface{}{"key": key})
	if err != nil {
		return model.Application{}, err
	}
	if len(apps) == 0 {
		return model.Application{}, fmt.Errorf("application %s: %w", key, ErrApplicationNotFound)
	}
	return apps[0], nil
}

// ListApplications returns the whole portfolio sorted by name.
func (s *HealthService) ListApplications(ctx context.Context) ([]model.Application, error) {
	query := `
		FOR a IN application
			SORT a.name ASC
			RETURN a
	`
	return s.queryApplications(ctx, query, nil)
}

// ListIncidentsForApplication returns the incident history the score
// calculator consumes.
func (s *HealthService) ListIncidentsForApplication(ctx context.Context, appKey string) ([]model.Incident, error) {
	query := `
		FOR i IN incident
			FILTER i.application_key == @app
			SORT i.opened_at DESC
			RETURN i
	`
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"app": appKey},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var incidents []model.Incident
	for cursor.HasMore() {
		var i model.Incident
		if _, err := cursor.ReadDocument(ctx, &i); err != nil {
			return nil, err
		}
		incidents = append(incidents, i)
	}
	return incidents, nil
}

// RecomputeApplication recalculates one application's health score and
// persists the score and category onto its record.
func (s *HealthService) RecomputeApplication(ctx context.Context, appKey string) (model.HealthScoreBreakdown, error) {
	app, err := s.GetApplication(ctx, appKey)
	if err != nil {
		return model.HealthScoreBreakdown{}, err
	}

	tasks, err := s.Tasks.ListTasksForApplication(ctx, appKey)
	if err != nil {
		return model.HealthScoreBreakdown{}, fmt.Errorf("load tasks for %s: %w", appKey, err)
	}

	incidents, err := s.ListIncidentsForApplication(ctx, appKey)
	if err != nil {
		return model.HealthScoreBreakdown{}, fmt.Errorf("load incidents for %s: %w", appKey, err)
	}

	breakdown := s.Calculator.Calculate(&app, tasks, incidents, time.Now().UTC())

	query := `
		UPDATE @key WITH {
			health_score: @score,
			health_category: @category,
			updated_at: DATE_ISO8601(DATE_NOW())
		} IN application
	`
	_, err = s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"key":      appKey,
			"score":    breakdown.FinalScore,
			"category": string(breakdown.Category),
		},
	})
	if err != nil {
		return model.HealthScoreBreakdown{}, fmt.Errorf("persist score for %s: %w", appKey, err)
	}

	if s.Events != nil {
		if err := s.Events.PublishHealthScored(ctx, breakdown); err != nil {
			logger.Warnf("Failed to publish health.scored for %s: %v", appKey, err)
		}
	}

	return breakdown, nil
}

// RecomputeAll rescores the whole portfolio. A failure on one application is
// logged and counted; the rest still get fresh scores.
func (s *HealthService) RecomputeAll(ctx context.Context) (scored, failed int) {
	apps, err := s.ListApplications(ctx)
	if err != nil {
		logger.Errorf("Health recompute: failed to list applications: %v", err)
		return 0, 0
	}

	for _, app := range apps {
		if _, err := s.RecomputeApplication(ctx, app.Key); err != nil {
			logger.Errorf("Health recompute failed for %s: %v", app.Key, err)
			failed++
			continue
		}
		scored++
	}

	logger.Infof("Health recompute complete: %d scored, %d failed", scored, failed)
	return scored, failed
}

func (s *HealthService) queryApplications(ctx context.Context, query string, bindVars map[string]interface{}) ([]model.Application, error) {
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var apps []model.Application
	for cursor.HasMore() {
		var a model.Application
		if _, err := cursor.ReadDocument(ctx, &a); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}
