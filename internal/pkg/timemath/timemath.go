package timemath

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// All hour and day figures are fixed-point with two decimal places.
// Float arithmetic is deliberately avoided so that totals stay exact.

var ErrInvalidRange = errors.New("end must not be before start")

const precision = 2

// HoursBetween returns the elapsed hours between start and end,
// rounded to two decimal places.
func HoursBetween(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, ErrInvalidRange
	}
	seconds := decimal.NewFromInt(int64(end.Sub(start) / time.Second))
	return seconds.Div(decimal.NewFromInt(3600)).Round(precision), nil
}

// InclusiveDayCount returns the number of calendar days covered by
// [start, end], counting both endpoints. A single-day range yields 1.
func InclusiveDayCount(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, ErrInvalidRange
	}
	days := int64(end.Sub(start)/(24*time.Hour)) + 1
	return decimal.NewFromInt(days), nil
}

// ClampNonNegative floors negative values to zero.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
