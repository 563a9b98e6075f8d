package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildTimeline projects every balance account from the current age to the
// death age and sums the balances per year. Pensions and Social Security carry
// no balance and are skipped. Year 0 is the current age and the end is inclusive,
// the same convention Aggregate uses up to the retirement age.
func BuildTimeline(projector *AccountProjector, plan domain.Plan) domain.Timeline {
	profile := plan.Profile
	horizon := profile.LifespanYears()

	timeline := domain.Timeline{
		RetirementAge: profile.RetirementAge,
		AtRetirement:  decimal.Zero,
		Peak:          decimal.Zero,
		Final:         decimal.Zero,
	}
	if horizon < 0 {
		return timeline
	}

	timeline.Points = make([]domain.TimelinePoint, horizon+1)
	for year := range timeline.Points {
		age := profile.CurrentAge + year
		timeline.Points[year] = domain.TimelinePoint{
			Year:         year,
			Age:          age,
			TotalBalance: decimal.Zero,
			Balances:     make(map[domain.AccountType]decimal.Decimal),
			IsRetired:    age >= profile.RetirementAge,
		}
	}

	for _, account := range plan.Accounts {
		if account.Type.IsIncomeStream() {
			continue
		}
		projections := projector.Project(account, profile.CurrentAge, horizon, plan.Assumptions)
		for year, yp := range projections {
			point := &timeline.Points[year]
			point.TotalBalance = point.TotalBalance.Add(yp.Balance)
			point.Balances[account.Type] = point.BalanceFor(account.Type).Add(yp.Balance)
		}
	}

	retirementYear := profile.YearsToRetirement()
	for year, point := range timeline.Points {
		if year == retirementYear {
			timeline.AtRetirement = point.TotalBalance
		}
		if point.TotalBalance.GreaterThan(timeline.Peak) {
			timeline.Peak = point.TotalBalance
		}
	}
	timeline.Final = timeline.Points[len(timeline.Points)-1].TotalBalance

	return timeline
}
