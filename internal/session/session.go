// Package session persists per-tool working state as JSON snapshots.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/kv"
)

// Snapshot stores one value of type T under a single key.
type Snapshot[T any] struct {
	store  kv.Store
	key    string
	logger zerolog.Logger
}

// New creates a Snapshot for key.
func New[T any](store kv.Store, key string, logger zerolog.Logger) *Snapshot[T] {
	return &Snapshot[T]{store: store, key: key, logger: logger}
}

// Key returns the storage key.
func (s *Snapshot[T]) Key() string {
	return s.key
}

// Load returns the saved value. A missing key, unreadable storage or a
// corrupt snapshot all yield the zero value and false; the latter two are
// logged.
func (s *Snapshot[T]) Load(ctx context.Context) (T, bool) {
	var value T

	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to read saved session")
		return value, false
	}
	if !ok {
		return value, false
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to parse saved session")
		var zero T
		return zero, false
	}
	return value, true
}

// Save writes value. Failures are logged and returned.
func (s *Snapshot[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.key, err)
	}
	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to save session")
		return fmt.Errorf("failed to save session %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the saved value.
func (s *Snapshot[T]) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.key); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to clear session")
		return fmt.Errorf("failed to clear session %s: %w", s.key, err)
	}
	return nil
}
