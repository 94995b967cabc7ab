// Package memory holds the session library. State lives for the lifetime of
// the process; restarting the service starts an empty library.
package memory

import (
	"context"
	"sync"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
)

// Store is an insertion-ordered, append-only collection of library entries.
// There is no uniqueness constraint: the same document added twice appears
// twice.
type Store struct {
	mu      sync.RWMutex
	entries []domain.LibraryEntry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, entry domain.LibraryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// All returns a snapshot in insertion order; mutating it does not affect the
// store.
func (s *Store) All(_ context.Context) ([]domain.LibraryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.LibraryEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
