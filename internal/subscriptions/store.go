package subscriptions

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/catalog"
	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
)

// ListStore holds the editable subscription list.
type ListStore struct {
	list     *catalog.Store[Item]
	recorder *events.Recorder
}

// NewListStore creates a ListStore persisting under kv.KeySubscriptionList.
func NewListStore(store kv.Store, defaults []Item, recorder *events.Recorder, logger zerolog.Logger) *ListStore {
	return &ListStore{
		recorder: recorder,
		list: catalog.New(store, catalog.Config[Item]{
			Key:      kv.KeySubscriptionList,
			Defaults: defaults,
			Validate: Validate,
			Logger:   logger,
			OnRecover: func(ctx context.Context, reason catalog.RecoveryReason, _ int) {
				recorder.StoreRecovered(ctx, models.EntityTypeSubscription, kv.KeySubscriptionList, string(reason))
			},
		}),
	}
}

// Load restores the list from storage, repairing it if needed.
func (s *ListStore) Load(ctx context.Context) ([]Item, error) {
	return s.list.Load(ctx)
}

// Items returns a copy of the current list.
func (s *ListStore) Items() []Item {
	return s.list.Items()
}

// Find returns the first item named name.
func (s *ListStore) Find(name string) (Item, error) {
	for _, item := range s.list.Items() {
		if item.Name == name {
			return item, nil
		}
	}
	return Item{}, ErrUnknownSubscription
}

// Raw returns the list as indented JSON.
func (s *ListStore) Raw() (string, error) {
	return s.list.Raw()
}

// ValidateRaw reports whether source would be accepted by CommitRawEdit.
func (s *ListStore) ValidateRaw(source string) error {
	return s.list.ValidateRaw(source)
}

// CommitRawEdit replaces the list with the JSON array in source. Nothing
// changes if any item is malformed.
func (s *ListStore) CommitRawEdit(ctx context.Context, source string) ([]Item, error) {
	items, err := s.list.CommitRawEdit(ctx, source)
	if err != nil {
		return nil, err
	}
	s.recorder.CollectionChanged(ctx, models.EventTypeSubscriptionsEdited, models.EntityTypeSubscription, kv.KeySubscriptionList, len(items))
	return items, nil
}

// ResetToDefault restores the default list.
func (s *ListStore) ResetToDefault(ctx context.Context) ([]Item, error) {
	items, err := s.list.ResetToDefault(ctx)
	s.recorder.CollectionChanged(ctx, models.EventTypeSubscriptionsReset, models.EntityTypeSubscription, kv.KeySubscriptionList, len(items))
	return items, err
}
