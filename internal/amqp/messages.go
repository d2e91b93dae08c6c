package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expenselog/internal/core"
)

// ExpenseRecordedMessage is the wire form of a newly recorded expense.
// Date and amount travel as text, in the same forms the flat-file codec uses.
type ExpenseRecordedMessage struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage builds a message from a recorded expense.
func NewExpenseRecordedMessage(e core.Expense) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ID:          e.ID,
		Date:        e.Date.String(),
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Description: e.Description,
		Timestamp:   time.Now(),
	}
}

// Expense reconstructs the recorded expense from the message.
func (m *ExpenseRecordedMessage) Expense() (core.Expense, error) {
	date, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("message %d: %w", m.ID, err)
	}
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("message %d: %w", m.ID, err)
	}
	return core.Expense{
		ID:          m.ID,
		Date:        date,
		Amount:      amount,
		Category:    m.Category,
		Description: m.Description,
	}, nil
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
