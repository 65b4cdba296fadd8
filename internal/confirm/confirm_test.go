package confirm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMachineConfirmRunsAction(t *testing.T) {
	ctx := context.Background()
	runs := 0
	m := New(DefaultConfig(), func(context.Context) error {
		runs++
		return nil
	})

	step, err := m.Trigger(ctx)
	if err != nil {
		t.Fatalf("first trigger: %v", err)
	}
	if m.State() != Confirming || step.After != 2500*time.Millisecond {
		t.Fatalf("expected confirming for 2.5s, got %s after %v", m.State(), step.After)
	}

	done, err := m.Trigger(ctx)
	if err != nil {
		t.Fatalf("second trigger: %v", err)
	}
	if m.State() != Done || done.After != 1500*time.Millisecond || runs != 1 {
		t.Fatalf("expected done for 1.5s with one run, got %s after %v runs=%d", m.State(), done.After, runs)
	}

	ignored, err := m.Trigger(ctx)
	if err != nil {
		t.Fatalf("third trigger: %v", err)
	}
	if ignored.Scheduled() || m.State() != Done || runs != 1 {
		t.Fatalf("trigger while done must be ignored, got %+v %s runs=%d", ignored, m.State(), runs)
	}

	if m.Expire(step.Token) {
		t.Fatal("confirm timer is stale once done")
	}
	if m.State() != Done {
		t.Fatalf("stale expiry changed state to %s", m.State())
	}

	if !m.Expire(done.Token) || m.State() != Idle {
		t.Fatalf("expected done timer to return to idle, got %s", m.State())
	}
}

func TestMachineTimeoutSkipsAction(t *testing.T) {
	ran := false
	m := New(DefaultConfig(), func(context.Context) error {
		ran = true
		return nil
	})

	step, err := m.Trigger(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !m.Expire(step.Token) || m.State() != Idle {
		t.Fatalf("expected timeout back to idle, got %s", m.State())
	}
	if ran {
		t.Fatal("action must not run on timeout")
	}
	if m.Expire(step.Token) {
		t.Fatal("a token fires at most once")
	}
}

func TestMachineStaleTokenAfterRearm(t *testing.T) {
	ctx := context.Background()
	m := New(DefaultConfig(), nil)

	first, _ := m.Trigger(ctx)
	if !m.Expire(first.Token) {
		t.Fatal("expected first token to fire")
	}

	second, _ := m.Trigger(ctx)
	if second.Token == first.Token {
		t.Fatal("rearming must issue a new token")
	}
	if m.Expire(first.Token) || m.State() != Confirming {
		t.Fatalf("old token must not cancel the new confirmation, state %s", m.State())
	}
	if m.Expire(0) {
		t.Fatal("zero token must never fire")
	}
}

func TestMachineActionErrorStillDone(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	m := New(Config{ConfirmTimeout: time.Second, DoneDelay: time.Second}, func(context.Context) error {
		return boom
	})

	_, _ = m.Trigger(ctx)
	step, err := m.Trigger(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("expected action error, got %v", err)
	}
	if m.State() != Done || !step.Scheduled() {
		t.Fatalf("expected scheduled done step, got %s %+v", m.State(), step)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Idle:       "idle",
		Confirming: "confirming",
		Done:       "done",
		State(9):   "unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
