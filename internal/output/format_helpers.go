package output

import (
	"github.com/rpgo/nestegg/pkg/money"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as USD currency with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.New(amount).Format() }

// FormatWholeCurrency formats a decimal as USD rounded to whole dollars.
func FormatWholeCurrency(amount decimal.Decimal) string { return money.New(amount).FormatWhole() }

// FormatCompactCurrency formats large amounts as "$1.2M" / "$350K".
func FormatCompactCurrency(amount decimal.Decimal) string { return money.New(amount).Compact() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.07) as a percentage ("7.0%").
func FormatRate(rate decimal.Decimal) string { return rate.Mul(decimalHundred).StringFixed(1) + "%" }
