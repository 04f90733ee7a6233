package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar-date format used across fino.
const DateLayout = "2006-01-02"

// Kind indicates whether a record is money coming in or going out.
type Kind string

const (
	// KindIncome represents money received.
	KindIncome Kind = "income"
	// KindExpense represents money spent.
	KindExpense Kind = "expense"
)

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindIncome):
		return KindIncome, nil
	case string(KindExpense):
		return KindExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction kind %q: use 'income' or 'expense'", s)
	}
}

// Record is a single ledger entry supplied by a record source.
// Records are treated as immutable once they leave the source.
type Record struct {
	Date        time.Time
	Amount      decimal.Decimal // sign is informational; aggregation uses the absolute value
	ID          string
	Description string
	Kind        Kind
	Category    string
}

// IsExpense reports whether the record counts toward spending.
func (r Record) IsExpense() bool {
	return r.Kind == KindExpense
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", strings.TrimSpace(s))
	}
	return t, nil
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
