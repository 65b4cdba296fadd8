package subscriptions

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/session"
)

// Entry holds the counts recorded for one selected subscription.
type Entry struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Note   string `json:"note"`
}

// State is the saved working state of the tool.
type State struct {
	Selected []string         `json:"selected"`
	Entries  map[string]Entry `json:"entries"`
	Output   string           `json:"output"`
}

func (s State) clone() State {
	out := State{
		Selected: slices.Clone(s.Selected),
		Entries:  make(map[string]Entry, len(s.Entries)),
		Output:   s.Output,
	}
	for name, entry := range s.Entries {
		out.Entries[name] = entry
	}
	if out.Selected == nil {
		out.Selected = []string{}
	}
	return out
}

// Session tracks the selected subscriptions and their entries. Every change is
// saved under kv.KeySubscriptionSession; in-memory state is kept when saving
// fails.
type Session struct {
	state    State
	snapshot *session.Snapshot[State]
}

// NewSession creates an empty Session.
func NewSession(store kv.Store, logger zerolog.Logger) *Session {
	return &Session{
		state:    State{}.clone(),
		snapshot: session.New[State](store, kv.KeySubscriptionSession, logger),
	}
}

// Load restores the saved state, if any.
func (s *Session) Load(ctx context.Context) {
	saved, ok := s.snapshot.Load(ctx)
	if !ok {
		return
	}
	s.state = saved.clone()
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state.clone()
}

// Selected returns the selected names in selection order.
func (s *Session) Selected() []string {
	return slices.Clone(s.state.Selected)
}

// IsSelected reports whether name is selected.
func (s *Session) IsSelected(name string) bool {
	return slices.Contains(s.state.Selected, name)
}

// Entry returns the entry for name.
func (s *Session) Entry(name string) Entry {
	return s.state.Entries[name]
}

// Output returns the last generated summary.
func (s *Session) Output() string {
	return s.state.Output
}

// Toggle selects name, or deselects it and drops its entry. It reports
// whether name is selected afterwards.
func (s *Session) Toggle(ctx context.Context, name string) (bool, error) {
	if i := slices.Index(s.state.Selected, name); i >= 0 {
		s.state.Selected = slices.Delete(s.state.Selected, i, i+1)
		delete(s.state.Entries, name)
		return false, s.save(ctx)
	}
	s.state.Selected = append(s.state.Selected, name)
	s.state.Entries[name] = Entry{}
	return true, s.save(ctx)
}

// SetEntry sets one field ("before", "after" or "note") of a selected entry.
func (s *Session) SetEntry(ctx context.Context, name, field, value string) error {
	if !s.IsSelected(name) {
		return fmt.Errorf("%w: %s", ErrNotSelected, name)
	}
	entry := s.state.Entries[name]
	switch strings.ToLower(field) {
	case "before":
		entry.Before = value
	case "after":
		entry.After = value
	case "note":
		entry.Note = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	s.state.Entries[name] = entry
	return s.save(ctx)
}

// Generate builds the change summary, one row per selection in order, and
// stores it as the session output.
func (s *Session) Generate(ctx context.Context) (string, error) {
	rows := make([]string, 0, len(s.state.Selected))
	for _, name := range s.state.Selected {
		entry := s.state.Entries[name]
		rows = append(rows, FormatRow(name, entry.Before, entry.After, entry.Note))
	}
	s.state.Output = strings.Join(rows, "\n")
	return s.state.Output, s.save(ctx)
}

// Clear drops every selection, entry and the output, and removes the saved
// state.
func (s *Session) Clear(ctx context.Context) error {
	s.state = State{}.clone()
	return s.snapshot.Clear(ctx)
}

func (s *Session) save(ctx context.Context) error {
	return s.snapshot.Save(ctx, s.state)
}
