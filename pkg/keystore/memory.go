package keystore

import (
	"context"
	"sync"
)

// Memory is a map-backed store for tests and ephemeral sessions.
// Values are copied on the way in and out, so callers cannot mutate
// stored records through shared slices.
type Memory struct {
	mu     sync.Mutex
	items  map[string][]byte
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Get retrieves a record by key.
// Returns ErrNotFound if the record does not exist.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	value, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a record, replacing any previous value.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.items[key] = stored
	return nil
}

// Delete removes a record. Deleting a missing record is a no-op.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	delete(m.items, key)
	return nil
}

// Close marks the store as closed. Subsequent operations return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
