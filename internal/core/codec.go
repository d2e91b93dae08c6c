package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Delimiter separates the five record fields in the flat-text form.
// Fields are not quoted or escaped: a delimiter inside the category shifts
// every following field and the line misparses. Accepted limitation.
const Delimiter = ","

const recordFields = 5

var (
	ErrFieldCount = errors.New("expected 5 comma-separated fields")
	ErrBadID      = errors.New("invalid id")
	ErrBadDate    = errors.New("invalid date")
	ErrBadAmount  = errors.New("invalid amount")
)

// ParseError reports a line that could not be decoded into an Expense.
// It wraps one of the field-level sentinel errors above.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeLine renders an expense as one flat-text line:
//
//	<id>,<date:YYYY-MM-DD>,<amount>,<category>,<description>
func EncodeLine(e Expense) string {
	return strings.Join([]string{
		strconv.FormatInt(e.ID, 10),
		e.Date.String(),
		e.Amount.String(),
		e.Category,
		e.Description,
	}, Delimiter)
}

// DecodeLine is the inverse of EncodeLine. The split is capped at five parts,
// so a delimiter inside the description survives the round trip; one inside
// the category does not.
func DecodeLine(line string) (Expense, error) {
	parts := strings.SplitN(line, Delimiter, recordFields)
	if len(parts) < recordFields {
		return Expense{}, &ParseError{Input: line, Err: ErrFieldCount}
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Expense{}, &ParseError{Input: line, Err: fmt.Errorf("%w: %q", ErrBadID, parts[0])}
	}

	date, err := ParseDate(parts[1])
	if err != nil {
		return Expense{}, &ParseError{Input: line, Err: fmt.Errorf("%w: %q", ErrBadDate, parts[1])}
	}

	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return Expense{}, &ParseError{Input: line, Err: fmt.Errorf("%w: %q", ErrBadAmount, parts[2])}
	}

	return Expense{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Category:    parts[3],
		Description: parts[4],
	}, nil
}
