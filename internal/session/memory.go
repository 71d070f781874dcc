// File path: internal/session/memory.go
package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. Used by tests and by
// deployments without a Redis backend; state is lost on restart, which the
// traversal tolerates.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[id]
	return state, ok, nil
}

func (m *MemoryStore) Put(ctx context.Context, id string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = state
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}
