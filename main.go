// package main provides the entry point for the portview-backend microservice:
// portfolio health scoring, lifecycle task generation, and framework
// end-of-life tracking behind a REST and GraphQL API.
package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/portview/portview-backend/database"
	task "github.com/portview/portview-backend/events/modules/tasks"
	"github.com/portview/portview-backend/internal/api"
	"github.com/portview/portview-backend/internal/eol"
	pkafka "github.com/portview/portview-backend/internal/kafka"
	"github.com/portview/portview-backend/internal/scoring"
	"github.com/portview/portview-backend/internal/services"
	"github.com/portview/portview-backend/util"
)

func main() {
	// Initialize database connection
	db := database.InitializeDatabase()

	// Kafka producer is optional; without brokers the engine runs standalone
	var events services.EventPublisher
	if brokersEnv := util.GetEnvDefault("KAFKA_BROKERS", ""); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")
		topic := util.GetEnvDefault("KAFKA_EVENTS_TOPIC", "lifecycle-events")
		producer := task.NewLifecycleProducer(brokers, topic)
		events = producer
		defer producer.Close()
	}

	feed := eol.NewClient(util.GetEnvDefault("EOL_FEED_URL", ""))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Consume application.synced events for targeted re-evaluation
	if events != nil {
		if err := pkafka.RunEventProcessor(ctx, db, events); err != nil {
			log.Printf("WARNING: Kafka event processor not started: %v", err)
		}
	}

	// Background schedulers
	taskService := &services.TaskService{DB: db, Events: events}
	healthService := &services.HealthService{
		DB:         db,
		Calculator: scoring.NewCalculator(),
		Tasks:      taskService,
		Events:     events,
	}
	taskGenService := &services.TaskGenService{DB: db, Tasks: taskService, Health: healthService}
	eolService := services.NewEolService(db, feed, nil)

	go startTaskGeneration(ctx, taskGenService)
	go startEolRefresh(ctx, eolService)
	go startHealthRecompute(ctx, healthService)

	app := api.NewFiberApp(db, events, feed)

	port := util.GetEnvDefault("MS_PORT", "3000")
	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func startTaskGeneration(ctx context.Context, svc *services.TaskGenService) {
	runTaskGeneration(ctx, svc)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runTaskGeneration(ctx, svc)
		}
	}
}

func runTaskGeneration(ctx context.Context, svc *services.TaskGenService) {
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	result, err := svc.RunAll(runCtx)
	if err != nil {
		log.Printf("Background Task: task generation run failed: %v", err)
		return
	}
	log.Printf("Background Task: task generation created %d tasks across %d applications",
		result.Created, result.ApplicationsProcessed)
}

func startEolRefresh(ctx context.Context, svc *services.EolService) {
	runEolRefresh(ctx, svc)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runEolRefresh(ctx, svc)
		}
	}
}

func runEolRefresh(ctx context.Context, svc *services.EolService) {
	if len(svc.Families) == 0 {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	result := svc.RefreshAll(runCtx)
	if result.Failed > 0 {
		log.Printf("Background Task: EOL refresh finished with %d failed families", result.Failed)
	}
}

func startHealthRecompute(ctx context.Context, svc *services.HealthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			svc.RecomputeAll(runCtx)
			cancel()
		}
	}
}
