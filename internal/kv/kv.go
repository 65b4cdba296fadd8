// Package kv defines the keyed string storage that tools persist their state to.
package kv

import (
	"context"
	"sync"
)

// Store is a flat key-value store with string values. A missing key is
// reported with ok=false and is never an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Well-known storage keys.
const (
	KeyEmailTemplates      = "emailTemplates"
	KeyEmailSession        = "emailTemplateSession"
	KeyCallSession         = "callTemplateForm"
	KeySubscriptionList    = "subscriptionList"
	KeySubscriptionSession = "subscriptionChangeTool"
)

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes key. Removing a missing key is a no-op.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
