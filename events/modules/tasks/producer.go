// Package task handles Kafka event production for lifecycle events.
package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/portview/portview-backend/model"
	"github.com/segmentio/kafka-go"
)

// LifecycleProducer publishes lifecycle events to Kafka. Event types share
// one topic; consumers dispatch on the event_type field.
type LifecycleProducer struct {
	Writer *kafka.Writer
}

// NewLifecycleProducer initializes a new Kafka writer for lifecycle events
func NewLifecycleProducer(brokers []string, topic string) *LifecycleProducer {
	return &LifecycleProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishTaskCreated sends a task.created event to the Kafka topic
func (p *LifecycleProducer) PublishTaskCreated(ctx context.Context, created model.LifecycleTask) error {
	event := TaskCreatedEvent{
		EventType:     "task.created",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Task:          created,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Key by application so per-app ordering holds across partitions
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(created.ApplicationKey),
		Value: payload,
	})
}

// PublishHealthScored sends a health.scored event to the Kafka topic
func (p *LifecycleProducer) PublishHealthScored(ctx context.Context, breakdown model.HealthScoreBreakdown) error {
	event := HealthScoredEvent{
		EventType:     "health.scored",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Breakdown:     breakdown,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(breakdown.ApplicationKey),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *LifecycleProducer) Close() error {
	return p.Writer.Close()
}
