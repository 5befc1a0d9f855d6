// Package inmem provides a process-local vm.ProcedureStore implementation
// suitable for local development, tests, and single-process deployments.
// It is not durable across process restarts; package engine/temporal
// provides that.
package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tjs-lang/tjs/vm"
)

const defaultTTL = 5 * time.Minute

// Store is a mutex-guarded, map-backed vm.ProcedureStore.
type Store struct {
	mu     sync.Mutex
	states map[string]*vm.ProcedureState
}

// New returns an empty Store.
func New() *Store {
	return &Store{states: make(map[string]*vm.ProcedureState)}
}

// New mints a fresh ProcedureState for function with the given initial
// scope, expiring after defaultTTL unless extended by a later Save.
func (s *Store) New(ctx context.Context, function string, initial map[string]any) (*vm.ProcedureState, error) {
	state := &vm.ProcedureState{
		Token:     vm.NewProcedureToken(),
		Function:  function,
		Scope:     initial,
		ExpiresAt: time.Now().Add(defaultTTL),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.Token] = state
	return state, nil
}

// Save overwrites the stored state for state.Token.
func (s *Store) Save(ctx context.Context, state *vm.ProcedureState) error {
	if state == nil || state.Token == "" {
		return fmt.Errorf("engine/inmem: state with a token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.Token] = state
	return nil
}

// Load returns the state for token, or an error if the token is unknown or
// expired.
func (s *Store) Load(ctx context.Context, token string) (*vm.ProcedureState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[token]
	if !ok {
		return nil, fmt.Errorf("engine/inmem: unknown procedure token %q: %w", token, vm.ErrProcedureNotFound)
	}
	if !state.ExpiresAt.IsZero() && time.Now().After(state.ExpiresAt) {
		delete(s.states, token)
		return nil, fmt.Errorf("engine/inmem: procedure token %q expired: %w", token, vm.ErrProcedureNotFound)
	}
	return state, nil
}

// Delete removes token, if present.
func (s *Store) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, token)
	return nil
}

// ClearExpired evicts every expired token and reports how many were
// removed, backing the `clearExpiredProcedures` atom.
func (s *Store) ClearExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	cleared := 0
	for token, state := range s.states {
		if !state.ExpiresAt.IsZero() && now.After(state.ExpiresAt) {
			delete(s.states, token)
			cleared++
		}
	}
	return cleared, nil
}
