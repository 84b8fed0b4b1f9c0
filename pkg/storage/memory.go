package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. Used for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, visitorID, key string) ([]byte, error) {
	if err := validateScope(visitorID, key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[visitorID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryStore) Set(_ context.Context, visitorID, key string, value []byte) error {
	if err := validateScope(visitorID, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	scope, ok := m.entries[visitorID]
	if !ok {
		scope = make(map[string][]byte)
		m.entries[visitorID] = scope
	}
	scope[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, visitorID, key string) error {
	if err := validateScope(visitorID, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries[visitorID], key)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
