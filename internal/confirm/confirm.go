// Package confirm implements the two-step confirmation used before destructive
// actions: a first trigger arms the action, a second one within the timeout
// runs it, and the button shows a short "done" state afterwards.
package confirm

import (
	"context"
	"time"
)

// State is the confirmation state.
type State int

const (
	Idle State = iota
	Confirming
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirming:
		return "confirming"
	case Done:
		return "done"
	}
	return "unknown"
}

// Config holds the machine timings.
type Config struct {
	// ConfirmTimeout is how long the machine waits for the second trigger.
	ConfirmTimeout time.Duration
	// DoneDelay is how long the done state is shown.
	DoneDelay time.Duration
}

// DefaultConfig returns the default timings.
func DefaultConfig() Config {
	return Config{
		ConfirmTimeout: 2500 * time.Millisecond,
		DoneDelay:      1500 * time.Millisecond,
	}
}

// Action is the destructive operation being confirmed.
type Action func(ctx context.Context) error

// Step is a transition the caller must deliver back through Expire after
// After has elapsed. The zero Step schedules nothing.
type Step struct {
	Token uint64
	After time.Duration
}

// Scheduled reports whether the step needs delivering.
func (s Step) Scheduled() bool {
	return s.Token != 0
}

// Machine is the confirmation state machine. It does no timing itself: every
// transition into Confirming or Done returns a Step, and only the most recent
// Step's token is honored by Expire. Machine is not safe for concurrent use;
// drive it from a single event loop.
type Machine struct {
	config  Config
	action  Action
	state   State
	pending uint64
	next    uint64
}

// New creates a Machine in the Idle state.
func New(config Config, action Action) *Machine {
	if config.ConfirmTimeout <= 0 {
		config.ConfirmTimeout = DefaultConfig().ConfirmTimeout
	}
	if config.DoneDelay <= 0 {
		config.DoneDelay = DefaultConfig().DoneDelay
	}
	return &Machine{config: config, action: action}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Trigger advances the machine. From Idle it arms the action; from
// Confirming it runs the action and moves to Done even when the action
// fails, returning the action's error; in Done it does nothing.
func (m *Machine) Trigger(ctx context.Context) (Step, error) {
	switch m.state {
	case Idle:
		m.state = Confirming
		return m.schedule(m.config.ConfirmTimeout), nil
	case Confirming:
		var err error
		if m.action != nil {
			err = m.action(ctx)
		}
		m.state = Done
		return m.schedule(m.config.DoneDelay), err
	}
	return Step{}, nil
}

// Expire delivers a scheduled step. It returns false for stale tokens, which
// leave the state untouched. A Confirming expiry returns to Idle without
// running the action.
func (m *Machine) Expire(token uint64) bool {
	if token == 0 || token != m.pending {
		return false
	}
	m.pending = 0
	m.state = Idle
	return true
}

func (m *Machine) schedule(after time.Duration) Step {
	m.next++
	m.pending = m.next
	return Step{Token: m.pending, After: after}
}
