package templates

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/catalog"
	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
)

// ErrTemplateNotFound is returned when no template has the requested id.
var ErrTemplateNotFound = errors.New("template not found")

// ErrInvalidFormat is matched by errors from rejected raw edits.
var ErrInvalidFormat = catalog.ErrInvalidFormat

// Store holds the editable template collection.
type Store struct {
	list     *catalog.Store[Template]
	recorder *events.Recorder
}

// NewStore creates a Store persisting under kv.KeyEmailTemplates. defaults is
// the set restored on first run, on bad data, and on reset.
func NewStore(store kv.Store, defaults []Template, recorder *events.Recorder, logger zerolog.Logger) *Store {
	s := &Store{recorder: recorder}
	s.list = catalog.New(store, catalog.Config[Template]{
		Key:      kv.KeyEmailTemplates,
		Defaults: defaults,
		Validate: Validate,
		Logger:   logger,
		OnRecover: func(ctx context.Context, reason catalog.RecoveryReason, _ int) {
			recorder.StoreRecovered(ctx, models.EntityTypeEmail, kv.KeyEmailTemplates, string(reason))
		},
	})
	return s
}

// Load restores the collection from storage, repairing it if needed.
func (s *Store) Load(ctx context.Context) ([]Template, error) {
	return s.list.Load(ctx)
}

// Templates returns a copy of the current collection.
func (s *Store) Templates() []Template {
	return s.list.Items()
}

// Get returns the template with the given id.
func (s *Store) Get(id string) (Template, error) {
	for _, tmpl := range s.list.Items() {
		if tmpl.ID == id {
			return tmpl, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// Raw returns the collection as the indented JSON users edit.
func (s *Store) Raw() (string, error) {
	return s.list.Raw()
}

// ValidateRaw reports whether source would be accepted by CommitRawEdit.
func (s *Store) ValidateRaw(source string) error {
	return s.list.ValidateRaw(source)
}

// CommitRawEdit replaces the whole collection with the JSON array in source.
// Nothing changes if any template is malformed.
func (s *Store) CommitRawEdit(ctx context.Context, source string) ([]Template, error) {
	items, err := s.list.CommitRawEdit(ctx, source)
	if err != nil {
		return nil, err
	}
	s.recorder.CollectionChanged(ctx, models.EventTypeTemplatesEdited, models.EntityTypeEmail, kv.KeyEmailTemplates, len(items))
	return items, nil
}

// ResetToDefault restores the default collection.
func (s *Store) ResetToDefault(ctx context.Context) ([]Template, error) {
	items, err := s.list.ResetToDefault(ctx)
	s.recorder.CollectionChanged(ctx, models.EventTypeTemplatesReset, models.EntityTypeEmail, kv.KeyEmailTemplates, len(items))
	return items, err
}
