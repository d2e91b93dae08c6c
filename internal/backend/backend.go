// Package backend selects and constructs the ledger's persistence backend
// from configuration.
package backend

import (
	"fmt"

	"expenselog/internal/config"
	"expenselog/internal/store"
	"expenselog/internal/store/flatfile"
	"expenselog/internal/store/memory"
	"expenselog/internal/store/sqlite"
)

// Type represents the kind of backing store.
type Type string

const (
	Flatfile Type = "flatfile"
	SQLite   Type = "sqlite"
	Memory   Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case Flatfile, SQLite, Memory:
		return true
	default:
		return false
	}
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// FromConfig creates the store named by the application config.
func FromConfig(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case Flatfile:
		return &Result{Store: flatfile.New(cfg.ExpenseFile)}, nil
	case SQLite:
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		return &Result{Store: s, Cleanup: s.Close}, nil
	case Memory:
		return &Result{Store: memory.New()}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
