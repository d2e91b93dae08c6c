// Package memory is an in-memory Store used by tests and throwaway runs.
// Contents vanish with the process.
package memory

import (
	"context"
	"sync"

	"expenselog/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New() *Store {
	return &Store{}
}

// Seed creates a store whose next Load returns the given expenses.
func Seed(expenses []core.Expense) *Store {
	s := New()
	s.items = append(s.items, expenses...)
	return s
}

// Load returns a copy of the last saved sequence.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Save replaces the held sequence wholesale, mirroring the file stores.
func (s *Store) Save(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]core.Expense, len(expenses))
	copy(s.items, expenses)
	return nil
}
