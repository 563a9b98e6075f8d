package output

import (
	"time"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// buildTestResult returns a small hand-built result: two balance accounts and a pension.
func buildTestResult() *domain.PlanResult {
	plan := domain.Plan{
		Profile: domain.UserProfile{
			CurrentAge:    60,
			RetirementAge: 62,
			DeathAge:      64,
			FilingStatus:  domain.FilingSingle,
			CurrentIncome: dec("100000"),
		},
		Assumptions: domain.EconomicAssumptions{
			ReturnRate:        dec("0.07"),
			InflationRate:     dec("0.03"),
			RetirementTaxRate: dec("0.15"),
		},
		Accounts: []domain.Account{
			{Name: "Work 401k", Type: domain.AccountTraditional401k, CurrentBalance: dec("500000"), AnnualContribution: dec("20000")},
			{Type: domain.AccountRothIRA, CurrentBalance: dec("100000"), AnnualContribution: dec("7000")},
			{Name: "City Pension", Type: domain.AccountPension, MonthlyBenefit: dec("1500")},
		},
	}

	point := func(year int, balances map[domain.AccountType]decimal.Decimal) domain.TimelinePoint {
		total := decimal.Zero
		for _, b := range balances {
			total = total.Add(b)
		}
		return domain.TimelinePoint{Year: year, Age: 60 + year, TotalBalance: total, Balances: balances, IsRetired: 60+year >= 62}
	}

	return &domain.PlanResult{
		Plan: plan,
		Summary: domain.RetirementIncomeSummary{
			TotalBalance:         dec("800000"),
			SafeWithdrawalAmount: dec("32000"),
			AnnualIncomeStreams:  dec("18000"),
			TotalAnnualIncome:    dec("50000"),
			MonthlyIncome:        dec("4166.6666666666666667"),
			Accounts: []domain.AccountOutcome{
				{Name: "Work 401k", Type: domain.AccountTraditional401k, BalanceAtRetirement: dec("660000"), AnnualIncome: decimal.Zero},
				{Name: "IRA Roth", Type: domain.AccountRothIRA, BalanceAtRetirement: dec("140000"), AnnualIncome: decimal.Zero},
				{Name: "City Pension", Type: domain.AccountPension, BalanceAtRetirement: decimal.Zero, AnnualIncome: dec("18000")},
			},
		},
		Timeline: domain.Timeline{
			RetirementAge: 62,
			Points: []domain.TimelinePoint{
				point(0, map[domain.AccountType]decimal.Decimal{domain.AccountTraditional401k: dec("556400"), domain.AccountRothIRA: dec("114490")}),
				point(1, map[domain.AccountType]decimal.Decimal{domain.AccountTraditional401k: dec("616748"), domain.AccountRothIRA: dec("130000")}),
				point(2, map[domain.AccountType]decimal.Decimal{domain.AccountTraditional401k: dec("660000"), domain.AccountRothIRA: dec("140000")}),
				point(3, map[domain.AccountType]decimal.Decimal{domain.AccountTraditional401k: dec("690000"), domain.AccountRothIRA: dec("150000")}),
				point(4, map[domain.AccountType]decimal.Decimal{domain.AccountTraditional401k: dec("700000"), domain.AccountRothIRA: dec("160000")}),
			},
			AtRetirement: dec("800000"),
			Peak:         dec("860000"),
			Final:        dec("860000"),
		},
		TaxYear:     2024,
		GeneratedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}
