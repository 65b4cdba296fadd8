package kv

import (
	"context"
	"testing"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := store.Get(ctx, "a")
	if err != nil || !ok || value != "1" {
		t.Fatalf("Get a = %q ok=%v err=%v", value, ok, err)
	}

	if err := store.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "a"); ok {
		t.Fatal("expected key to be removed")
	}
}
