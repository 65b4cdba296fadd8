package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/models"
)

// Recorder writes audit events without letting failures reach the caller.
// A Recorder with no repository records nothing.
type Recorder struct {
	repo   Repository
	logger zerolog.Logger
}

// NewRecorder creates a Recorder. repo may be nil.
func NewRecorder(repo Repository, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// CollectionChanged records a reset or raw edit.
func (r *Recorder) CollectionChanged(ctx context.Context, eventType models.EventType, entity models.EntityType, key string, count int) {
	if r == nil || r.repo == nil {
		return
	}
	r.check(eventType, LogCollectionChanged(ctx, r.repo, eventType, entity, key, count))
}

// SummaryGenerated records a generate action.
func (r *Recorder) SummaryGenerated(ctx context.Context, entity models.EntityType, key, templateID, text string) {
	if r == nil || r.repo == nil {
		return
	}
	r.check(models.EventTypeSummaryGenerated, LogSummaryGenerated(ctx, r.repo, entity, key, templateID, text))
}

// SummaryCopied records a copy to the clipboard.
func (r *Recorder) SummaryCopied(ctx context.Context, entity models.EntityType, key string) {
	if r == nil || r.repo == nil {
		return
	}
	r.check(models.EventTypeSummaryCopied, LogSummaryCopied(ctx, r.repo, entity, key))
}

// StoreRecovered records a fallback to defaults.
func (r *Recorder) StoreRecovered(ctx context.Context, entity models.EntityType, key, reason string) {
	if r == nil || r.repo == nil {
		return
	}
	r.check(models.EventTypeStoreRecovered, LogStoreRecovered(ctx, r.repo, entity, key, reason))
}

// SessionCleared records a clear-form action.
func (r *Recorder) SessionCleared(ctx context.Context, entity models.EntityType, key string) {
	if r == nil || r.repo == nil {
		return
	}
	r.check(models.EventTypeSessionCleared, LogSessionCleared(ctx, r.repo, entity, key))
}

func (r *Recorder) check(eventType models.EventType, err error) {
	if err != nil {
		r.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to record event")
	}
}
