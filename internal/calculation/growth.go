package calculation

import (
	"github.com/shopspring/decimal"
)

// CompoundGrowth returns the future value of principal after years at an
// annual rate, plus monthly contributions compounded at rate/12. A zero rate
// degrades to principal plus the sum of contributions.
func CompoundGrowth(principal, rate decimal.Decimal, years int, monthlyContribution decimal.Decimal) decimal.Decimal {
	if years <= 0 {
		return principal
	}
	one := decimal.NewFromInt(1)
	futurePrincipal := principal.Mul(one.Add(rate).Pow(decimal.NewFromInt(int64(years))))
	if monthlyContribution.IsZero() {
		return futurePrincipal
	}

	months := decimal.NewFromInt(int64(years) * 12)
	if rate.IsZero() {
		return futurePrincipal.Add(monthlyContribution.Mul(months))
	}

	monthlyRate := rate.Div(monthsPerYear)
	annuityFactor := one.Add(monthlyRate).Pow(months).Sub(one).Div(monthlyRate)
	return futurePrincipal.Add(monthlyContribution.Mul(annuityFactor))
}

// SafeWithdrawal returns the annual withdrawal a portfolio supports at rate.
func SafeWithdrawal(portfolioValue, rate decimal.Decimal) decimal.Decimal {
	return portfolioValue.Mul(rate)
}
