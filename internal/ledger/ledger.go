// Package ledger owns the authoritative in-memory expense set and the id
// assignment policy, and answers range-bounded summary queries.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
	"expenselog/internal/store"
)

// EventPublisher announces newly recorded expenses to interested consumers.
// Publishing is best-effort: the ledger never fails an add because of it.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, e core.Expense) error
}

// Ledger holds the full record set in memory. Every add persists the whole
// set through the store; queries never touch storage.
type Ledger struct {
	mu       sync.Mutex
	store    store.Store
	events   EventPublisher
	expenses []core.Expense
	nextID   int64
}

// Option configures a Ledger at open time.
type Option func(*Ledger)

// WithEventPublisher makes the ledger announce each recorded expense.
func WithEventPublisher(p EventPublisher) Option {
	return func(l *Ledger) {
		l.events = p
	}
}

// Open loads all persisted expenses and positions the id counter one past
// the highest id ever seen, so purged history never reuses a live id.
func Open(ctx context.Context, s store.Store, opts ...Option) (*Ledger, error) {
	expenses, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	var maxID int64
	for _, e := range expenses {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	l := &Ledger{
		store:    s,
		expenses: expenses,
		nextID:   maxID + 1,
	}
	for _, opt := range opts {
		opt(l)
	}

	slog.InfoContext(ctx, "Ledger opened", "count", len(expenses), "next_id", l.nextID)
	return l, nil
}

// Add records a new expense and persists the full updated sequence. The
// arguments are trusted verbatim; validation belongs to the caller.
//
// On a save failure the in-memory append is NOT rolled back: the returned
// expense stays in the ledger and storage lags memory until the next
// successful save. The error tells the caller persistence is inconsistent.
func (l *Ledger) Add(ctx context.Context, date core.Date, amount decimal.Decimal, category, description string) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := core.Expense{
		ID:          l.nextID,
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
	l.nextID++
	l.expenses = append(l.expenses, e)

	if err := l.store.Save(ctx, l.expenses); err != nil {
		return e, fmt.Errorf("persist expenses: %w", err)
	}

	if l.events != nil {
		if err := l.events.PublishExpenseRecorded(ctx, e); err != nil {
			slog.WarnContext(ctx, "Failed to publish expense-recorded event",
				"id", e.ID, "error", err)
		}
	}

	return e, nil
}

// Summarize filters the record set to expenses dated within [start, end],
// inclusive on both bounds, preserving insertion order, and totals their
// amounts. An inverted range yields an empty summary, not an error.
func (l *Ledger) Summarize(start, end core.Date) core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := core.Summary{Start: start, End: end, Total: decimal.Zero}
	for _, e := range l.expenses {
		if e.Date.InRange(start, end) {
			summary.Expenses = append(summary.Expenses, e)
			summary.Total = summary.Total.Add(e.Amount)
		}
	}
	return summary
}

// MonthlySummary summarizes a whole calendar month, leap years included.
func (l *Ledger) MonthlySummary(year, month int) core.Summary {
	first, last := core.MonthRange(year, month)
	return l.Summarize(first, last)
}

// Expenses returns a copy of the record set in insertion order.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Len returns the number of records held.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.expenses)
}
