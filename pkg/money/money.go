// Package money holds the fixed-point helpers shared by quantities and
// prices. Every stored amount has at most two fractional digits.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for quantities and prices
const Scale = 2

// MaxAmount bounds every stored amount: numeric(18,2) holds 16 integer digits
var MaxAmount = decimal.New(1, 16)

// ErrOutOfRange is returned for amounts whose magnitude reaches MaxAmount
var ErrOutOfRange = errors.New("amount out of range")

// InRange reports whether |d| < MaxAmount
func InRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(MaxAmount)
}

// ValidScale reports whether d has at most Scale fractional digits
func ValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// Parse reads a decimal string and rejects values with too many fractional digits
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q", s)
	}
	if !ValidScale(d) {
		return decimal.Zero, fmt.Errorf("decimal %q has more than %d fractional digits", s, Scale)
	}
	if !InRange(d) {
		return decimal.Zero, fmt.Errorf("decimal %q: %w", s, ErrOutOfRange)
	}
	return d, nil
}

// Format renders d with exactly Scale fractional digits ("7.00")
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// ToHundredths converts d to an integer count of hundredths. Amounts
// outside MaxAmount or with more than Scale digits are rejected rather
// than truncated.
func ToHundredths(d decimal.Decimal) (int64, error) {
	if !InRange(d) {
		return 0, fmt.Errorf("%s: %w", d, ErrOutOfRange)
	}
	if !ValidScale(d) {
		return 0, fmt.Errorf("decimal %s has more than %d fractional digits", d, Scale)
	}
	return d.Shift(Scale).IntPart(), nil
}

// FromHundredths is the inverse of ToHundredths
func FromHundredths(n int64) decimal.Decimal {
	return decimal.New(n, -Scale)
}

// FormatAmount renders a computed amount: two digits when that is exact,
// otherwise every digit it carries ("60.3925")
func FormatAmount(d decimal.Decimal) string {
	if ValidScale(d) {
		return Format(d)
	}
	return d.String()
}
