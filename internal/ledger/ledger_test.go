package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
	"expenselog/internal/store"
	"expenselog/internal/store/flatfile"
	"expenselog/internal/store/memory"
)

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func mustAdd(t *testing.T, l *Ledger, date core.Date, amt, category, description string) core.Expense {
	t.Helper()
	e, err := l.Add(context.Background(), date, amount(t, amt), category, description)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return e
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	l, err := Open(context.Background(), memory.New())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for i := 1; i <= 5; i++ {
		e := mustAdd(t, l, core.NewDate(2024, 3, i), "1", "misc", "x")
		if e.ID != int64(i) {
			t.Fatalf("expense %d got id %d", i, e.ID)
		}
	}
}

func TestOpenResumesIDCounterPastMax(t *testing.T) {
	seeded := memory.Seed([]core.Expense{
		{ID: 3, Date: core.NewDate(2024, 1, 1), Amount: decimal.NewFromInt(1), Category: "a", Description: ""},
		{ID: 7, Date: core.NewDate(2024, 1, 2), Amount: decimal.NewFromInt(1), Category: "b", Description: ""},
		{ID: 5, Date: core.NewDate(2024, 1, 3), Amount: decimal.NewFromInt(1), Category: "c", Description: ""},
	})
	l, err := Open(context.Background(), seeded)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	e := mustAdd(t, l, core.NewDate(2024, 1, 4), "1", "d", "")
	if e.ID != 8 {
		t.Fatalf("expected id 8 after max id 7, got %d", e.ID)
	}
}

func TestReloadMatchesMemory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.txt")

	l, err := Open(ctx, flatfile.New(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	mustAdd(t, l, core.NewDate(2024, 3, 1), "12.5", "food", "lunch")
	mustAdd(t, l, core.NewDate(2024, 3, 2), "7", "transport", "bus")
	inMemory := l.Expenses()

	reloaded, err := Open(ctx, flatfile.New(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	fromDisk := reloaded.Expenses()

	if len(fromDisk) != len(inMemory) {
		t.Fatalf("got %d records after reload, want %d", len(fromDisk), len(inMemory))
	}
	for i := range inMemory {
		if fromDisk[i].ID != inMemory[i].ID ||
			!fromDisk[i].Date.Equal(inMemory[i].Date.Time) ||
			!fromDisk[i].Amount.Equal(inMemory[i].Amount) ||
			fromDisk[i].Category != inMemory[i].Category ||
			fromDisk[i].Description != inMemory[i].Description {
			t.Fatalf("record %d: reloaded %+v, in-memory %+v", i, fromDisk[i], inMemory[i])
		}
	}

	// The counter continues where the previous lifetime stopped.
	e := mustAdd(t, reloaded, core.NewDate(2024, 3, 3), "2", "misc", "")
	if e.ID != 3 {
		t.Fatalf("expected id 3 after reload, got %d", e.ID)
	}
}

func TestSummarizeSingleDay(t *testing.T) {
	l, _ := Open(context.Background(), memory.New())
	mustAdd(t, l, core.NewDate(2024, 3, 1), "12.50", "food", "lunch")
	mustAdd(t, l, core.NewDate(2024, 3, 2), "7.00", "transport", "bus")
	mustAdd(t, l, core.NewDate(2024, 3, 1), "2.50", "food", "coffee")

	s := l.Summarize(core.NewDate(2024, 3, 1), core.NewDate(2024, 3, 1))
	if len(s.Expenses) != 2 {
		t.Fatalf("got %d matches, want 2", len(s.Expenses))
	}
	if s.Expenses[0].ID != 1 || s.Expenses[1].ID != 3 {
		t.Fatalf("insertion order not preserved: %+v", s.Expenses)
	}
	if !s.Total.Equal(amount(t, "15.00")) {
		t.Fatalf("total = %s, want 15.00", s.Total)
	}
}

func TestSummarizeRange(t *testing.T) {
	l, _ := Open(context.Background(), memory.New())
	mustAdd(t, l, core.NewDate(2024, 3, 1), "12.50", "food", "lunch")
	mustAdd(t, l, core.NewDate(2024, 3, 2), "7.00", "transport", "bus")
	mustAdd(t, l, core.NewDate(2024, 3, 9), "5.00", "food", "snack")

	s := l.Summarize(core.NewDate(2024, 3, 1), core.NewDate(2024, 3, 2))
	if len(s.Expenses) != 2 || !s.Total.Equal(amount(t, "19.50")) {
		t.Fatalf("got %d matches, total %s; want 2 matches, total 19.50", len(s.Expenses), s.Total)
	}
}

func TestSummarizeInvertedRangeIsEmpty(t *testing.T) {
	l, _ := Open(context.Background(), memory.New())
	mustAdd(t, l, core.NewDate(2024, 3, 1), "12.50", "food", "lunch")

	s := l.Summarize(core.NewDate(2024, 3, 31), core.NewDate(2024, 3, 1))
	if !s.Empty() {
		t.Fatalf("inverted range must match nothing, got %+v", s.Expenses)
	}
	if !s.Total.IsZero() {
		t.Fatalf("total = %s, want 0", s.Total)
	}
}

func TestMonthlySummaryLeapYear(t *testing.T) {
	l, _ := Open(context.Background(), memory.New())
	mustAdd(t, l, core.NewDate(2024, 2, 29), "10", "food", "leap day")
	mustAdd(t, l, core.NewDate(2023, 2, 28), "5", "food", "")
	mustAdd(t, l, core.NewDate(2024, 3, 1), "99", "food", "outside")

	feb2024 := l.MonthlySummary(2024, 2)
	if len(feb2024.Expenses) != 1 || feb2024.Expenses[0].ID != 1 {
		t.Fatalf("leap-year February: %+v", feb2024.Expenses)
	}
	if feb2024.End.String() != "2024-02-29" {
		t.Fatalf("leap-year February ends %s", feb2024.End)
	}

	feb2023 := l.MonthlySummary(2023, 2)
	if feb2023.End.String() != "2023-02-28" {
		t.Fatalf("non-leap February ends %s", feb2023.End)
	}
	if len(feb2023.Expenses) != 1 || feb2023.Expenses[0].ID != 2 {
		t.Fatalf("non-leap February: %+v", feb2023.Expenses)
	}
}

// failingStore accepts nothing: every Save fails.
type failingStore struct{}

var _ store.Store = failingStore{}

func (failingStore) Load(context.Context) ([]core.Expense, error) { return nil, nil }
func (failingStore) Save(context.Context, []core.Expense) error {
	return errors.New("disk full")
}

func TestAddKeepsRecordInMemoryOnSaveFailure(t *testing.T) {
	l, err := Open(context.Background(), failingStore{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	e, err := l.Add(context.Background(), core.NewDate(2024, 3, 1), amount(t, "12.5"), "food", "lunch")
	if err == nil {
		t.Fatal("expected save failure to surface")
	}
	if e.ID != 1 {
		t.Fatalf("expense should still carry its id, got %d", e.ID)
	}
	// The append is not rolled back: memory runs ahead of storage.
	if l.Len() != 1 {
		t.Fatalf("record should remain in memory, len = %d", l.Len())
	}

	e2, err := l.Add(context.Background(), core.NewDate(2024, 3, 2), amount(t, "7"), "transport", "bus")
	if err == nil {
		t.Fatal("expected save failure to surface")
	}
	if e2.ID != 2 {
		t.Fatalf("id counter must keep advancing, got %d", e2.ID)
	}
}

type capturingPublisher struct {
	published []core.Expense
}

func (p *capturingPublisher) PublishExpenseRecorded(_ context.Context, e core.Expense) error {
	p.published = append(p.published, e)
	return nil
}

func TestAddPublishesEvent(t *testing.T) {
	pub := &capturingPublisher{}
	l, err := Open(context.Background(), memory.New(), WithEventPublisher(pub))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	e := mustAdd(t, l, core.NewDate(2024, 3, 1), "12.5", "food", "lunch")
	if len(pub.published) != 1 || pub.published[0].ID != e.ID {
		t.Fatalf("expected one published event for id %d, got %+v", e.ID, pub.published)
	}
}

type noisyPublisher struct{}

func (noisyPublisher) PublishExpenseRecorded(context.Context, core.Expense) error {
	return errors.New("broker down")
}

func TestAddSucceedsWhenPublishFails(t *testing.T) {
	l, err := Open(context.Background(), memory.New(), WithEventPublisher(noisyPublisher{}))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := l.Add(context.Background(), core.NewDate(2024, 3, 1), amount(t, "1"), "a", ""); err != nil {
		t.Fatalf("publish failure must not fail the add: %v", err)
	}
}
