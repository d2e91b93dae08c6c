package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
)

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	got, err := s.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("fresh store: got %v, %v", got, err)
	}

	want := []core.Expense{
		{ID: 1, Date: core.NewDate(2024, 3, 1), Amount: decimal.NewFromInt(5), Category: "food", Description: "lunch"},
		{ID: 2, Date: core.NewDate(2024, 3, 2), Amount: decimal.NewFromInt(7), Category: "transport", Description: "bus"},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected records: %+v", got)
	}

	// Mutating the returned slice must not touch the store.
	got[0].Category = "changed"
	again, _ := s.Load(ctx)
	if again[0].Category != "food" {
		t.Fatal("Load must return a copy")
	}
}
