// internal/store/memory.go
//
// Key-value persistence for the quiz high score.
//
// Implementations:
//   - memory (this file): map guarded by an RWMutex; state is lost on restart.
//     Used in development/testing, or when durability is not required.
//   - SQLite (sqlite.go): durable, survives restarts.
//
// Writes are synchronous and last-writer-wins.

package store

import (
	"context"
	"sync"
)

// Store defines the persistence interface for named string slots.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu sync.RWMutex      // guards kv
	kv map[string]string // keyed by slot name
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{kv: make(map[string]string)}
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}
