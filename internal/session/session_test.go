package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/kv"
)

type form struct {
	Caller string   `json:"caller"`
	Lines  []string `json:"lines"`
}

type brokenStore struct{}

var errBroken = errors.New("disk full")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(context.Context, string, string) error         { return errBroken }
func (brokenStore) Remove(context.Context, string) error              { return errBroken }

func TestSnapshotSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	snap := New[form](mem, "callTemplateForm", zerolog.Nop())

	if _, ok := snap.Load(ctx); ok {
		t.Fatal("expected nothing saved yet")
	}

	want := form{Caller: "Ada", Lines: []string{"rebooted"}}
	if err := snap.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok := snap.Load(ctx)
	if !ok {
		t.Fatal("expected saved snapshot")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if err := snap.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, err := mem.Get(ctx, "callTemplateForm"); err != nil || ok {
		t.Fatalf("expected key removed, got ok=%v err=%v", ok, err)
	}
}

func TestSnapshotCorruptIsIgnored(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Set(ctx, "k", "{not json"); err != nil {
		t.Fatal(err)
	}

	got, ok := New[form](mem, "k", zerolog.Nop()).Load(ctx)
	if ok {
		t.Fatal("expected corrupt snapshot to be ignored")
	}
	if !reflect.DeepEqual(got, form{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestSnapshotStorageFailures(t *testing.T) {
	ctx := context.Background()
	snap := New[form](brokenStore{}, "k", zerolog.Nop())

	if _, ok := snap.Load(ctx); ok {
		t.Fatal("expected Load to fail over to nothing")
	}
	if err := snap.Save(ctx, form{}); !errors.Is(err, errBroken) {
		t.Fatalf("Save error = %v, want %v", err, errBroken)
	}
	if err := snap.Clear(ctx); !errors.Is(err, errBroken) {
		t.Fatalf("Clear error = %v, want %v", err, errBroken)
	}
}
