package status

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Markers do not survive restarts;
// suitable for single-instance deployments and tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Status
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Status)}
}

// Get returns the user's marker, or the idle marker when none is recorded.
func (s *MemoryStore) Get(_ context.Context, userID string) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.m[userID]; ok {
		return st, nil
	}
	return Idle(), nil
}

// Set overwrites the user's marker.
func (s *MemoryStore) Set(_ context.Context, userID string, st Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = st
	return nil
}
