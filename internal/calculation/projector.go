package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountProjector simulates one account's balance year by year
type AccountProjector struct {
	Limits *ContributionLimitResolver
	RMD    *RMDCalculator
}

// NewAccountProjector creates a projector over the given rule set
func NewAccountProjector(rules domain.RuleSet) *AccountProjector {
	return &AccountProjector{
		Limits: NewContributionLimitResolver(rules),
		RMD:    NewRMDCalculator(rules),
	}
}

// Project returns numYears+1 records, year 0 through numYears inclusive, with
// Age = currentAge + year. Each year the contribution is clamped to the cap,
// added at the start of the year, grown once, and then reduced by the RMD for
// tax-deferred types. Income-stream types have no cap and no RMD, so their
// balance just compounds; callers are expected not to pass them in.
func (p *AccountProjector) Project(account domain.Account, currentAge, numYears int, assumptions domain.EconomicAssumptions) []domain.YearProjection {
	if numYears < 0 {
		return []domain.YearProjection{}
	}

	projections := make([]domain.YearProjection, 0, numYears+1)
	growthFactor := decimal.NewFromInt(1).Add(assumptions.ReturnRate)
	balance := account.CurrentBalance

	for year := 0; year <= numYears; year++ {
		age := currentAge + year

		limit := p.Limits.Limit(account.Type, age, account.HSACoverage)
		contribution := decimal.Max(decimal.Zero, decimal.Min(account.AnnualContribution, limit))

		balance = balance.Add(contribution).Mul(growthFactor)

		rmd := decimal.Zero
		if account.Type.RequiresRMD() {
			rmd = p.RMD.CalculateRMD(balance, age)
			balance = balance.Sub(rmd)
		}

		projections = append(projections, domain.YearProjection{
			Year:         year,
			Age:          age,
			Balance:      decimal.Max(decimal.Zero, balance),
			Contribution: contribution,
			RMD:          rmd,
		})
	}

	return projections
}

// BalanceAt returns the balance recorded for year offset, zero when out of range.
func BalanceAt(projections []domain.YearProjection, year int) decimal.Decimal {
	if year < 0 || year >= len(projections) {
		return decimal.Zero
	}
	return projections[year].Balance
}
