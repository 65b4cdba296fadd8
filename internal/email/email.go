// Package email drives the email template tool: choosing a template, filling
// its fields and rendering the final text.
package email

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/session"
	"github.com/opencode-ai/deskkit/internal/templates"
)

var (
	// ErrNoTemplateSelected is returned by operations that need a selection.
	ErrNoTemplateSelected = errors.New("no template selected")
	// ErrUnknownField is returned by SetValue for names that are not fields
	// of the selected template.
	ErrUnknownField = errors.New("unknown template field")
)

// State is the saved working state of the tool.
type State struct {
	TemplateID string            `json:"templateId"`
	Values     map[string]string `json:"values"`
	Output     string            `json:"output"`
}

// Tool owns the email tool state. Every change is saved under
// kv.KeyEmailSession.
type Tool struct {
	templates *templates.Store
	state     State
	snapshot  *session.Snapshot[State]
	recorder  *events.Recorder
	logger    zerolog.Logger
}

// NewTool creates a Tool over an already constructed template store.
func NewTool(tmpls *templates.Store, store kv.Store, recorder *events.Recorder, logger zerolog.Logger) *Tool {
	return &Tool{
		templates: tmpls,
		state:     State{Values: map[string]string{}},
		snapshot:  session.New[State](store, kv.KeyEmailSession, logger),
		recorder:  recorder,
		logger:    logger,
	}
}

// Templates returns the template store.
func (t *Tool) Templates() *templates.Store {
	return t.templates
}

// Load restores the templates and the saved session. A saved selection that
// no longer exists is dropped.
func (t *Tool) Load(ctx context.Context) error {
	if _, err := t.templates.Load(ctx); err != nil {
		return err
	}

	saved, ok := t.snapshot.Load(ctx)
	if !ok {
		return nil
	}
	if saved.Values == nil {
		saved.Values = map[string]string{}
	}
	t.state = saved
	if t.state.TemplateID != "" {
		if _, err := t.templates.Get(t.state.TemplateID); err != nil {
			t.logger.Debug().Str("template", t.state.TemplateID).Msg("saved template no longer exists")
			t.state = State{Values: map[string]string{}}
		}
	}
	return nil
}

// State returns a copy of the current state.
func (t *Tool) State() State {
	return State{
		TemplateID: t.state.TemplateID,
		Values:     maps.Clone(t.state.Values),
		Output:     t.state.Output,
	}
}

// Selected returns the selected template.
func (t *Tool) Selected() (templates.Template, error) {
	if t.state.TemplateID == "" {
		return templates.Template{}, ErrNoTemplateSelected
	}
	return t.templates.Get(t.state.TemplateID)
}

// Select chooses a template and clears field values and output.
func (t *Tool) Select(ctx context.Context, id string) (templates.Template, error) {
	tmpl, err := t.templates.Get(id)
	if err != nil {
		return templates.Template{}, fmt.Errorf("%w: %s", err, id)
	}
	t.state = State{TemplateID: tmpl.ID, Values: map[string]string{}}
	return tmpl, t.save(ctx)
}

// Fields returns the placeholder names of the selected template.
func (t *Tool) Fields() ([]string, error) {
	tmpl, err := t.Selected()
	if err != nil {
		return nil, err
	}
	return tmpl.Fields(), nil
}

// Value returns the value entered for field.
func (t *Tool) Value(field string) string {
	return t.state.Values[field]
}

// SetValue sets the value of one field of the selected template.
func (t *Tool) SetValue(ctx context.Context, field, value string) error {
	fields, err := t.Fields()
	if err != nil {
		return err
	}
	if !slices.Contains(fields, field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	t.state.Values[field] = value
	return t.save(ctx)
}

// Preview renders the selected template with the current values without
// storing the result.
func (t *Tool) Preview() (string, error) {
	tmpl, err := t.Selected()
	if err != nil {
		return "", err
	}
	return templates.RenderTemplate(&tmpl, t.state.Values)
}

// Generate renders the selected template and stores it as the output.
func (t *Tool) Generate(ctx context.Context) (string, error) {
	text, err := t.Preview()
	if err != nil {
		return "", err
	}
	t.state.Output = text
	t.recorder.SummaryGenerated(ctx, models.EntityTypeEmail, kv.KeyEmailSession, t.state.TemplateID, text)
	return text, t.save(ctx)
}

// Output returns the last generated text.
func (t *Tool) Output() string {
	return t.state.Output
}

// Clear drops the selection, values and output, and removes the saved state.
func (t *Tool) Clear(ctx context.Context) error {
	t.state = State{Values: map[string]string{}}
	err := t.snapshot.Clear(ctx)
	t.recorder.SessionCleared(ctx, models.EntityTypeEmail, kv.KeyEmailSession)
	return err
}

// CommitRawEdit replaces the template collection. The selection is dropped
// if its template no longer exists.
func (t *Tool) CommitRawEdit(ctx context.Context, source string) ([]templates.Template, error) {
	items, err := t.templates.CommitRawEdit(ctx, source)
	if err != nil {
		return nil, err
	}
	if t.state.TemplateID != "" {
		if _, err := t.templates.Get(t.state.TemplateID); err != nil {
			return items, t.Clear(ctx)
		}
	}
	return items, nil
}

// Reset restores the default templates and clears the selection.
func (t *Tool) Reset(ctx context.Context) error {
	_, resetErr := t.templates.ResetToDefault(ctx)
	t.state = State{Values: map[string]string{}}
	return errors.Join(resetErr, t.snapshot.Clear(ctx))
}

func (t *Tool) save(ctx context.Context) error {
	return t.snapshot.Save(ctx, t.state)
}
