package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearProjection is a single simulated year for one account.
type YearProjection struct {
	Year         int             `json:"year"`
	Age          int             `json:"age"`
	Balance      decimal.Decimal `json:"balance"`
	Contribution decimal.Decimal `json:"contribution"`
	RMD          decimal.Decimal `json:"rmd"`
}

// AccountOutcome records how one account contributed to a retirement summary.
type AccountOutcome struct {
	Name                string          `json:"name"`
	Type                AccountType     `json:"type"`
	BalanceAtRetirement decimal.Decimal `json:"balance_at_retirement"`
	AnnualIncome        decimal.Decimal `json:"annual_income"`
}

// RetirementIncomeSummary is the aggregate income picture at retirement.
type RetirementIncomeSummary struct {
	TotalBalance         decimal.Decimal  `json:"total_balance"`
	SafeWithdrawalAmount decimal.Decimal  `json:"safe_withdrawal_amount"`
	AnnualIncomeStreams  decimal.Decimal  `json:"annual_income_streams"`
	TotalAnnualIncome    decimal.Decimal  `json:"total_annual_income"`
	MonthlyIncome        decimal.Decimal  `json:"monthly_income"`
	Accounts             []AccountOutcome `json:"accounts"`
}

// TimelinePoint is one year of the full-lifespan balance series.
type TimelinePoint struct {
	Year         int                             `json:"year"`
	Age          int                             `json:"age"`
	TotalBalance decimal.Decimal                 `json:"total_balance"`
	Balances     map[AccountType]decimal.Decimal `json:"balances"`
	IsRetired    bool                            `json:"is_retired"`
}

// Timeline is the full-lifespan projection across all balance accounts.
type Timeline struct {
	Points        []TimelinePoint `json:"points"`
	RetirementAge int             `json:"retirement_age"`
	AtRetirement  decimal.Decimal `json:"at_retirement"`
	Peak          decimal.Decimal `json:"peak"`
	Final         decimal.Decimal `json:"final"`
}

// BalanceFor returns the balance of the given type at this point, zero if absent.
func (tp *TimelinePoint) BalanceFor(t AccountType) decimal.Decimal {
	if v, ok := tp.Balances[t]; ok {
		return v
	}
	return decimal.Zero
}

// ClaimAgeOption is the Social Security outcome for one claiming age.
type ClaimAgeOption struct {
	ClaimAge        int             `json:"claim_age"`
	AnnualBenefit   decimal.Decimal `json:"annual_benefit"`
	LifetimeBenefit decimal.Decimal `json:"lifetime_benefit"`
}

// PlanResult bundles everything computed for a plan.
type PlanResult struct {
	Plan        Plan                    `json:"plan"`
	Summary     RetirementIncomeSummary `json:"summary"`
	Timeline    Timeline                `json:"timeline"`
	TaxYear     int                     `json:"tax_year"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// CalendarYear maps a timeline year offset to a calendar year.
func (r *PlanResult) CalendarYear(offset int) int { return r.GeneratedAt.Year() + offset }
