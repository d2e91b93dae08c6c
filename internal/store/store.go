// Package store defines the persistence port for the expense ledger.
package store

import (
	"context"

	"expenselog/internal/core"
)

// Store maps the full in-memory record set to and from a backing resource.
// Save is a full replace of the resource, never an append; Load returns the
// records in the order Save wrote them.
type Store interface {
	// Load reads every persisted expense. A backing resource that does not
	// exist yet is empty history, not an error.
	Load(ctx context.Context) ([]core.Expense, error)

	// Save overwrites the backing resource with the given sequence, in order.
	Save(ctx context.Context, expenses []core.Expense) error
}
