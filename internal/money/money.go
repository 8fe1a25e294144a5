// Package money converts between the decimal amounts used on the wire and
// the integer cents stored in the database. Summing cents keeps totals
// exact regardless of how many transactions are aggregated.
package money

import (
	"errors"
	"math"
)

// ErrInvalidAmount is returned for NaN, infinities, values with more than
// two fractional digits, and values that do not fit in int64 cents.
var ErrInvalidAmount = errors.New("invalid amount")

// maxAmount keeps amount*100 well inside float64's exact integer range.
const maxAmount = 1e13

// ToCents converts a decimal amount to cents. The sign is preserved;
// callers decide whether negative values are acceptable.
func ToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || math.Abs(amount) > maxAmount {
		return 0, ErrInvalidAmount
	}
	scaled := amount * 100
	rounded := math.Round(scaled)
	// Tolerate binary representation noise (0.1+0.2) but not a third digit.
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrInvalidAmount
	}
	return int64(rounded), nil
}

// FromCents converts cents back to a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
