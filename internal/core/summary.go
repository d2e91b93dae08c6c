package core

import "github.com/shopspring/decimal"

// Summary is the result of a date-range query: the matching expenses in
// insertion order and the arithmetic sum of their amounts.
type Summary struct {
	Start    Date
	End      Date
	Expenses []Expense
	Total    decimal.Decimal
}

// Empty reports whether the summary matched no expenses.
func (s Summary) Empty() bool {
	return len(s.Expenses) == 0
}
