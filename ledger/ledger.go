// Package ledger holds the pure computations derived from a statement.
package ledger

import (
	"time"

	"account-ledger/model"

	"github.com/shopspring/decimal"
)

// Balance folds a statement into a signed total: credits add, debits subtract.
// An empty statement has a zero balance.
func Balance(statement []model.Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range statement {
		switch e.Type {
		case model.Credit:
			balance = balance.Add(e.Amount)
		case model.Debit:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

// FilterByDate returns the entries created on the calendar day of date, as
// seen in loc. Time of day is ignored on both sides. A nil loc means UTC.
func FilterByDate(statement []model.Entry, date time.Time, loc *time.Location) []model.Entry {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.In(loc).Date()

	out := make([]model.Entry, 0)
	for _, e := range statement {
		ey, em, ed := e.CreatedAt.In(loc).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}
