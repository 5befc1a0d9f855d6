// Package memory implements vm.StoreCapability in-process, for tests, the
// signature-test runner, and the VM's own default-store fallback when no
// store capability is configured (spec §4.5: "if capabilities.store is
// absent, the VM installs an in-memory map-backed {get, set} for the
// duration of the run").
package memory

import (
	"context"
	"sync"
)

// Store is an in-memory, mutex-guarded vm.StoreCapability implementation.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]any
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]any)}
}

// Get implements vm.StoreCapability.
func (s *Store) Get(ctx context.Context, key string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set implements vm.StoreCapability.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete implements vm.StoreCapability.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
