// Package events provides helper functions for recording deskkit audit events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opencode-ai/deskkit/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogCollectionChanged records a reset or raw edit of a stored collection.
func LogCollectionChanged(ctx context.Context, repo Repository, eventType models.EventType, entity models.EntityType, key string, count int) error {
	return create(ctx, repo, eventType, entity, key, models.CollectionChangedPayload{Count: count})
}

// LogSummaryGenerated records a generate action and the size of its output.
func LogSummaryGenerated(ctx context.Context, repo Repository, entity models.EntityType, key, templateID, text string) error {
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	return create(ctx, repo, models.EventTypeSummaryGenerated, entity, key, models.SummaryGeneratedPayload{
		TemplateID: templateID,
		Lines:      lines,
		Chars:      len([]rune(text)),
	})
}

// LogSummaryCopied records a successful copy of generated text.
func LogSummaryCopied(ctx context.Context, repo Repository, entity models.EntityType, key string) error {
	return create(ctx, repo, models.EventTypeSummaryCopied, entity, key, nil)
}

// LogStoreRecovered records a fallback to built-in defaults after bad persisted data.
func LogStoreRecovered(ctx context.Context, repo Repository, entity models.EntityType, key, reason string) error {
	return create(ctx, repo, models.EventTypeStoreRecovered, entity, key, models.StoreRecoveredPayload{Reason: reason})
}

// LogSessionCleared records a clear-form action.
func LogSessionCleared(ctx context.Context, repo Repository, entity models.EntityType, key string) error {
	return create(ctx, repo, models.EventTypeSessionCleared, entity, key, nil)
}

func create(ctx context.Context, repo Repository, eventType models.EventType, entity models.EntityType, key string, payload any) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if key == "" {
		return fmt.Errorf("entity id is required")
	}

	event := &models.Event{
		Type:       eventType,
		EntityType: entity,
		EntityID:   key,
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		event.Payload = data
	}

	return repo.Create(ctx, event)
}
