package kafka

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/portview/portview-backend/database"
	task "github.com/portview/portview-backend/events/modules/tasks"
	"github.com/portview/portview-backend/internal/scoring"
	"github.com/portview/portview-backend/internal/services"
)

// RunEventProcessor consumes application.synced events and re-evaluates the
// affected application. Other event types on the topic are skipped.
func RunEventProcessor(ctx context.Context, db database.DBConnection, events services.EventPublisher) error {
	brokersEnv := os.Getenv("KAFKA_BROKERS")
	var brokers []string
	if brokersEnv != "" {
		brokers = strings.Split(brokersEnv, ",")
	} else {
		brokers = []string{"localhost:9092"}
	}

	// 1. Configure SASL/PLAIN using Environment Variables
	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	var dialer *kafka.Dialer

	// Only configure SASL/TLS if credentials are provided
	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}

		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{}, // Confluent Cloud requires TLS
		}
	} else {
		// Default dialer for local development (no SASL/TLS)
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	topic := database.GetEnvDefault("KAFKA_SYNC_TOPIC", "portfolio-sync-events")
	var conn *kafka.Conn
	var err error

	// Retry logic: 3 tries
	for i := 1; i <= 3; i++ {
		log.Printf("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		return err
	}

	// 2. Configure the Reader to use the Dialer
	readerConfig := kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "portview-backend-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	}

	reader := kafka.NewReader(readerConfig)

	go func() {
		defer reader.Close()

		taskService := &services.TaskService{DB: db, Events: events}
		healthService := &services.HealthService{
			DB:         db,
			Calculator: scoring.NewCalculator(),
			Tasks:      taskService,
			Events:     events,
		}
		service := &services.TaskGenService{DB: db, Tasks: taskService, Health: healthService}

		log.Println("Kafka Event Processor started. Listening for portfolio sync events...")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				_ = task.HandleApplicationSyncedWithService(ctx, msg.Value, service)
			}
		}
	}()

	return nil
}
