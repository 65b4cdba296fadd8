// Package catalog keeps a validated, user-editable list of records in a kv.Store,
// falling back to built-in defaults whenever the stored copy is missing or bad.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/kv"
)

// ErrInvalidFormat is matched by every error returned for rejected raw edits.
var ErrInvalidFormat = errors.New("invalid format")

// InvalidFormatError wraps the parse or shape problem that rejected a raw edit.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidFormat, e.Err)
}

func (e *InvalidFormatError) Unwrap() []error {
	return []error{ErrInvalidFormat, e.Err}
}

// ItemError describes a shape problem with one element of a list.
type ItemError struct {
	Index   int
	Field   string
	Message string
}

func (e *ItemError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("item[%d]: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("item[%d].%s: %s", e.Index, e.Field, e.Message)
}

// RecoveryReason says why Load fell back to defaults.
type RecoveryReason string

const (
	RecoveryMissing RecoveryReason = "missing"
	RecoveryParse   RecoveryReason = "parse"
	RecoveryInvalid RecoveryReason = "invalid"
)

// Config configures a Store.
type Config[T any] struct {
	// Key is the storage key holding the serialized list.
	Key string
	// Defaults is the built-in list restored on reset or bad data.
	Defaults []T
	// Validate checks a whole list; it must reject any bad element.
	Validate func(items []T) error
	Logger   zerolog.Logger
	// OnRecover is called after Load replaced unusable stored data.
	OnRecover func(ctx context.Context, reason RecoveryReason, count int)
}

// Store holds one list. All methods are safe for concurrent use.
type Store[T any] struct {
	kv        kv.Store
	key       string
	defaults  []T
	validate  func(items []T) error
	logger    zerolog.Logger
	onRecover func(ctx context.Context, reason RecoveryReason, count int)
	// fields are the exact JSON keys of T; nil when T is not a struct.
	fields []string

	mu    sync.RWMutex
	items []T
}

// New creates a Store over store. The in-memory list starts as the defaults
// until Load is called.
func New[T any](store kv.Store, cfg Config[T]) *Store[T] {
	validate := cfg.Validate
	if validate == nil {
		validate = func([]T) error { return nil }
	}
	return &Store[T]{
		kv:        store,
		key:       cfg.Key,
		defaults:  clone(cfg.Defaults),
		validate:  validate,
		logger:    cfg.Logger,
		onRecover: cfg.OnRecover,
		fields:    jsonFields(reflect.TypeOf((*T)(nil)).Elem()),
		items:     clone(cfg.Defaults),
	}
}

// Key returns the storage key.
func (s *Store[T]) Key() string {
	return s.key
}

// Load reads the stored list. A missing, unparsable or invalid list is
// replaced by the defaults, which are written back immediately. Storage read
// failures are logged and the defaults are used without overwriting storage.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to read stored list, using defaults")
		s.replace(s.defaults)
		return s.Items(), nil
	}

	if ok {
		items, err := s.Parse(raw)
		if err == nil {
			s.replace(items)
			return s.Items(), nil
		}
		reason := RecoveryInvalid
		var itemErr *ItemError
		if !errors.As(err, &itemErr) {
			reason = RecoveryParse
		}
		s.logger.Warn().Err(err).Str("key", s.key).Str("reason", string(reason)).Msg("stored list is unusable, restoring defaults")
		s.recover(ctx, reason)
		return s.Items(), nil
	}

	s.recover(ctx, RecoveryMissing)
	return s.Items(), nil
}

func (s *Store[T]) recover(ctx context.Context, reason RecoveryReason) {
	s.replace(s.defaults)
	if err := s.persist(ctx, s.defaults); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to persist defaults")
	}
	if reason != RecoveryMissing && s.onRecover != nil {
		s.onRecover(ctx, reason, len(s.defaults))
	}
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// Defaults returns a copy of the built-in list.
func (s *Store[T]) Defaults() []T {
	return clone(s.defaults)
}

// Parse decodes source as a JSON array and validates every element.
func (s *Store[T]) Parse(source string) ([]T, error) {
	trimmed := strings.TrimSpace(source)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("expected a JSON array")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elements); err != nil {
		return nil, fmt.Errorf("parse list: %w", err)
	}

	items := make([]T, len(elements))
	for i, element := range elements {
		if err := s.checkKeys(i, element); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(element, &items[i]); err != nil {
			return nil, &ItemError{Index: i, Message: err.Error()}
		}
	}

	if err := s.validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// checkKeys rejects object keys that only match a field of T when case is
// ignored. encoding/json would accept them silently.
func (s *Store[T]) checkKeys(index int, element json.RawMessage) error {
	if s.fields == nil {
		return nil
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(element, &object); err != nil {
		return &ItemError{Index: index, Message: "must be an object"}
	}
	for key := range object {
		if slices.Contains(s.fields, key) {
			continue
		}
		for _, field := range s.fields {
			if strings.EqualFold(key, field) {
				return &ItemError{Index: index, Field: key, Message: fmt.Sprintf("unknown field, did you mean %q", field)}
			}
		}
	}
	return nil
}

func jsonFields(t reflect.Type) []string {
	if t.Kind() != reflect.Struct {
		return nil
	}
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = field.Name
		}
		fields = append(fields, name)
	}
	return fields
}

// ValidateRaw reports whether source would be accepted by CommitRawEdit.
func (s *Store[T]) ValidateRaw(source string) error {
	if _, err := s.Parse(source); err != nil {
		return &InvalidFormatError{Err: err}
	}
	return nil
}

// CommitRawEdit replaces the whole list with the one encoded in source. On
// any parse, shape or storage error nothing changes.
func (s *Store[T]) CommitRawEdit(ctx context.Context, source string) ([]T, error) {
	items, err := s.Parse(source)
	if err != nil {
		return nil, &InvalidFormatError{Err: err}
	}
	if err := s.persist(ctx, items); err != nil {
		return nil, err
	}
	s.replace(items)
	return s.Items(), nil
}

// ResetToDefault replaces the list with the defaults. The in-memory list is
// always reset; a storage error is returned for the caller to report.
func (s *Store[T]) ResetToDefault(ctx context.Context) ([]T, error) {
	s.replace(s.defaults)
	if err := s.persist(ctx, s.defaults); err != nil {
		return s.Items(), err
	}
	return s.Items(), nil
}

// Raw returns the current list as indented JSON, the form edited by users.
func (s *Store[T]) Raw() (string, error) {
	data, err := encode(s.Items())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store[T]) replace(items []T) {
	s.mu.Lock()
	s.items = clone(items)
	s.mu.Unlock()
}

func (s *Store[T]) persist(ctx context.Context, items []T) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", s.key, err)
	}
	return nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	return data, nil
}

func clone[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
