// Package memory provides an in-process StateStore, used by tests and
// single-process deployments where sessions need not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/parley/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use; states are deep-copied on the way in and out so
// callers cannot alias the stored session.
type Store struct {
	mu     sync.RWMutex
	states map[string]*domain.State
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		states: make(map[string]*domain.State),
	}
}

// Save persists a copy of the state.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state.Clone()
	return nil
}

// Load retrieves a copy of the state.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

// List returns all session IDs, sorted for deterministic output.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
