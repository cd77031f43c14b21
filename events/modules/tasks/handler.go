// Package task handles Kafka event processing for portfolio sync events.
package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Reevaluator defines the interface for per-application rule re-evaluation.
type Reevaluator interface {
	ReevaluateApplication(ctx context.Context, applicationKey string) error
}

// HandleApplicationSyncedWithService processes application.synced events from Kafka.
func HandleApplicationSyncedWithService(ctx context.Context, msg []byte, service Reevaluator) error {
	var event ApplicationSyncedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal ApplicationSyncedEvent: %w", err)
	}

	if event.ApplicationKey == "" {
		return fmt.Errorf("invalid event: missing application_key")
	}

	log.Printf("Processing sync for application %s (event=%s)", event.ApplicationKey, event.EventID)

	if err := service.ReevaluateApplication(ctx, event.ApplicationKey); err != nil {
		return fmt.Errorf("internal service error: %w", err)
	}

	log.Printf("Successfully re-evaluated application %s", event.ApplicationKey)
	return nil
}
