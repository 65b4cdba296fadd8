package callnotes

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/session"
)

// Tool owns the call form and its last generated summary. The form is saved
// under kv.KeyCallSession after every change; the summary is not saved.
type Tool struct {
	form     Form
	summary  string
	snapshot *session.Snapshot[Form]
	recorder *events.Recorder
}

// NewTool creates a Tool with an empty form.
func NewTool(store kv.Store, recorder *events.Recorder, logger zerolog.Logger) *Tool {
	return &Tool{
		snapshot: session.New[Form](store, kv.KeyCallSession, logger),
		recorder: recorder,
	}
}

// Load restores the saved form. A corrupt snapshot leaves the form empty.
func (t *Tool) Load(ctx context.Context) {
	if form, ok := t.snapshot.Load(ctx); ok {
		t.form = form
	}
}

// Form returns the current form.
func (t *Tool) Form() Form {
	return t.form
}

// Summary returns the last generated summary.
func (t *Tool) Summary() string {
	return t.summary
}

// Set assigns one field and saves the form.
func (t *Tool) Set(ctx context.Context, field Field, value string) error {
	if err := t.form.Set(field, value); err != nil {
		return err
	}
	return t.snapshot.Save(ctx, t.form)
}

// Update replaces the whole form and saves it.
func (t *Tool) Update(ctx context.Context, form Form) error {
	t.form = form
	return t.snapshot.Save(ctx, t.form)
}

// Generate builds the summary from the current form.
func (t *Tool) Generate(ctx context.Context) string {
	t.summary = Summary(t.form)
	t.recorder.SummaryGenerated(ctx, models.EntityTypeCall, kv.KeyCallSession, "", t.summary)
	return t.summary
}

// Clear empties the form and summary and removes the saved form.
func (t *Tool) Clear(ctx context.Context) error {
	t.form = Form{}
	t.summary = ""
	err := t.snapshot.Clear(ctx)
	t.recorder.SessionCleared(ctx, models.EntityTypeCall, kv.KeyCallSession)
	return err
}
