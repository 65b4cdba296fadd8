package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
)

// Tool ties the subscription list to the working session.
type Tool struct {
	List     *ListStore
	Session  *Session
	recorder *events.Recorder
}

// NewTool creates a Tool.
func NewTool(list *ListStore, sess *Session, recorder *events.Recorder) *Tool {
	return &Tool{List: list, Session: sess, recorder: recorder}
}

// Load restores the list and the saved session.
func (t *Tool) Load(ctx context.Context) error {
	if _, err := t.List.Load(ctx); err != nil {
		return err
	}
	t.Session.Load(ctx)
	return nil
}

// Toggle selects or deselects a subscription from the list. Names already
// selected can always be deselected, even after the list changed.
func (t *Tool) Toggle(ctx context.Context, name string) (bool, error) {
	if !t.Session.IsSelected(name) {
		if _, err := t.List.Find(name); err != nil {
			return false, fmt.Errorf("%w: %s", err, name)
		}
	}
	return t.Session.Toggle(ctx, name)
}

// SetEntry updates one field of a selected subscription's entry.
func (t *Tool) SetEntry(ctx context.Context, name, field, value string) error {
	return t.Session.SetEntry(ctx, name, field, value)
}

// Generate builds and records the change summary.
func (t *Tool) Generate(ctx context.Context) (string, error) {
	output, err := t.Session.Generate(ctx)
	t.recorder.SummaryGenerated(ctx, models.EntityTypeSubscription, kv.KeySubscriptionSession, "", output)
	return output, err
}

// Clear resets the session.
func (t *Tool) Clear(ctx context.Context) error {
	err := t.Session.Clear(ctx)
	t.recorder.SessionCleared(ctx, models.EntityTypeSubscription, kv.KeySubscriptionSession)
	return err
}

// Reset restores the default list and clears the session.
func (t *Tool) Reset(ctx context.Context) error {
	_, listErr := t.List.ResetToDefault(ctx)
	return errors.Join(listErr, t.Session.Clear(ctx))
}
