package amqp

import (
	"testing"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
)

func TestExpenseRecordedMessageRoundTrip(t *testing.T) {
	e := core.Expense{
		ID:          12,
		Date:        core.NewDate(2024, 3, 1),
		Amount:      decimal.RequireFromString("12.5"),
		Category:    "food",
		Description: "lunch",
	}

	body, err := NewExpenseRecordedMessage(e).ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	msg, err := ExpenseRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, err := msg.Expense()
	if err != nil {
		t.Fatalf("reconstruct expense: %v", err)
	}
	if got.ID != e.ID || !got.Date.Equal(e.Date.Time) || !got.Amount.Equal(e.Amount) ||
		got.Category != e.Category || got.Description != e.Description {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, e)
	}
}

func TestExpenseRecordedMessageBadPayloads(t *testing.T) {
	if _, err := ExpenseRecordedMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected unmarshal error")
	}

	bad := &ExpenseRecordedMessage{ID: 1, Date: "yesterday", Amount: "1"}
	if _, err := bad.Expense(); err == nil {
		t.Fatal("expected bad date to fail reconstruction")
	}

	bad = &ExpenseRecordedMessage{ID: 1, Date: "2024-03-01", Amount: "lots"}
	if _, err := bad.Expense(); err == nil {
		t.Fatal("expected bad amount to fail reconstruction")
	}
}
