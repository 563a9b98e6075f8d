// Package money formats and converts dollar amounts held as decimals.
package money

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
	thousand      = decimal.NewFromInt(1_000)
	million       = decimal.NewFromInt(1_000_000)
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// New wraps a decimal amount.
func New(d decimal.Decimal) Money {
	return Money{d}
}

// FromString parses an amount.
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds the money amount to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(monthsPerYear)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(monthsPerYear)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sum totals amounts.
func Sum(amounts ...decimal.Decimal) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Money{total}
}

// String returns the amount fixed to cents without a currency symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as US currency with thousands separators, e.g. "$1,234.50".
func (m Money) Format() string {
	r := m.Decimal.Round(2)
	abs := r.Abs()
	whole := abs.Truncate(0)
	cents := abs.Sub(whole).Mul(hundred).IntPart()
	s := fmt.Sprintf("$%s.%02d", humanize.Comma(whole.IntPart()), cents)
	if r.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatWhole renders the amount rounded to whole dollars, e.g. "$1,235".
func (m Money) FormatWhole() string {
	r := m.Decimal.Round(0)
	s := "$" + humanize.Comma(r.Abs().IntPart())
	if r.IsNegative() {
		return "-" + s
	}
	return s
}

// Compact renders large amounts with a suffix: "$1.2M", "$350K", "$950".
func (m Money) Compact() string {
	abs := m.Decimal.Abs()
	sign := ""
	if m.Decimal.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + abs.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "$" + abs.Div(thousand).StringFixed(0) + "K"
	default:
		return sign + "$" + abs.StringFixed(0)
	}
}
