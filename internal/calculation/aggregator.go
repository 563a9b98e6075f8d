package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// IncomeAggregator combines per-account projections into a retirement income summary
type IncomeAggregator struct {
	Projector      *AccountProjector
	SocialSecurity *SocialSecurityEstimator
	WithdrawalRate decimal.Decimal
	Logger         Logger
}

// NewIncomeAggregator creates an aggregator over the given rule set
func NewIncomeAggregator(rules domain.RuleSet) *IncomeAggregator {
	return &IncomeAggregator{
		Projector:      NewAccountProjector(rules),
		SocialSecurity: NewSocialSecurityEstimator(rules),
		WithdrawalRate: rules.WithdrawalRate,
		Logger:         NopLogger{},
	}
}

// Aggregate computes the income picture at retirement. The horizon runs from
// the current age to the retirement age. Pensions and Social Security feed the
// guaranteed income total; every other account is projected and its final
// balance feeds the investable total. No tax is applied.
func (ia *IncomeAggregator) Aggregate(accounts []domain.Account, profile domain.UserProfile, assumptions domain.EconomicAssumptions) domain.RetirementIncomeSummary {
	yearsToRetirement := profile.YearsToRetirement()

	totalBalance := decimal.Zero
	incomeStreams := decimal.Zero
	outcomes := make([]domain.AccountOutcome, 0, len(accounts))

	for _, account := range accounts {
		outcome := domain.AccountOutcome{
			Name:                account.DisplayName(),
			Type:                account.Type,
			BalanceAtRetirement: decimal.Zero,
			AnnualIncome:        decimal.Zero,
		}

		switch account.Type {
		case domain.AccountPension:
			outcome.AnnualIncome = account.MonthlyBenefit.Mul(monthsPerYear)
			incomeStreams = incomeStreams.Add(outcome.AnnualIncome)
		case domain.AccountSocialSecurity:
			monthlyEarnings := profile.CurrentIncome.Div(monthsPerYear)
			outcome.AnnualIncome = ia.SocialSecurity.AnnualBenefit(monthlyEarnings, profile.RetirementAge)
			incomeStreams = incomeStreams.Add(outcome.AnnualIncome)
		default:
			// Unknown types fall through to the balance branch with no cap and no RMD
			if !account.Type.Valid() {
				ia.Logger.Warnf("account %q has unknown type %q, projecting balance only", account.DisplayName(), account.Type)
			}
			projections := ia.Projector.Project(account, profile.CurrentAge, yearsToRetirement, assumptions)
			if len(projections) > 0 {
				outcome.BalanceAtRetirement = projections[len(projections)-1].Balance
			}
			totalBalance = totalBalance.Add(outcome.BalanceAtRetirement)
		}

		ia.Logger.Debugf("account %q (%s): balance at retirement %s, annual income %s",
			outcome.Name, account.Type, outcome.BalanceAtRetirement.StringFixed(2), outcome.AnnualIncome.StringFixed(2))
		outcomes = append(outcomes, outcome)
	}

	safeWithdrawal := SafeWithdrawal(totalBalance, ia.WithdrawalRate)
	totalIncome := safeWithdrawal.Add(incomeStreams)

	return domain.RetirementIncomeSummary{
		TotalBalance:         totalBalance,
		SafeWithdrawalAmount: safeWithdrawal,
		AnnualIncomeStreams:  incomeStreams,
		TotalAnnualIncome:    totalIncome,
		MonthlyIncome:        totalIncome.Div(monthsPerYear),
		Accounts:             outcomes,
	}
}
