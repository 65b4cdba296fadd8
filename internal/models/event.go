// Package models holds the records deskkit persists outside of tool state.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the audit log.
type EventType string

const (
	// Template events
	EventTypeTemplatesReset  EventType = "templates.reset"
	EventTypeTemplatesEdited EventType = "templates.edited"

	// Subscription list events
	EventTypeSubscriptionsReset  EventType = "subscriptions.reset"
	EventTypeSubscriptionsEdited EventType = "subscriptions.edited"

	// Tool session events
	EventTypeSummaryGenerated EventType = "summary.generated"
	EventTypeSummaryCopied    EventType = "summary.copied"
	EventTypeSessionCleared   EventType = "session.cleared"

	// Recovery events
	EventTypeStoreRecovered EventType = "store.recovered"
)

// EntityType identifies the tool an event relates to.
type EntityType string

const (
	EntityTypeEmail        EntityType = "email"
	EntityTypeCall         EntityType = "call"
	EntityTypeSubscription EntityType = "subscription"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies which tool the event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID names the affected collection or session, usually its storage key.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// CollectionChangedPayload is the payload for *.reset and *.edited events.
type CollectionChangedPayload struct {
	Count int `json:"count"`
}

// SummaryGeneratedPayload is the payload for summary.generated events.
type SummaryGeneratedPayload struct {
	TemplateID string `json:"template_id,omitempty"`
	Lines      int    `json:"lines"`
	Chars      int    `json:"chars"`
}

// StoreRecoveredPayload is the payload for store.recovered events.
type StoreRecoveredPayload struct {
	Reason string `json:"reason"`
}
