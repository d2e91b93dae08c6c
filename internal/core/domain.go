package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Date is a calendar date (year, month, day) with no time-of-day or
	// timezone component. The embedded time is always midnight UTC.
	Date struct {
		time.Time
	}

	// Expense is one recorded transaction. The ID is assigned by the ledger,
	// never by callers; amounts are taken as-is (sign and zero included).
	Expense struct {
		ID          int64
		Date        Date
		Amount      decimal.Decimal
		Category    string
		Description string
	}
)

// DateLayout is the ISO 8601 text form used everywhere a date is encoded.
const DateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String returns the ISO 8601 form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthRange returns the first and last day of the given month, accounting
// for month lengths and leap-year February.
func MonthRange(year, month int) (first, last Date) {
	first = NewDate(year, month, 1)
	// Day zero of the following month is the last day of this one.
	last = Date{Time: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)}
	return first, last
}

// InRange reports whether d falls within [start, end], inclusive on both
// bounds. An inverted range never matches.
func (d Date) InRange(start, end Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}
