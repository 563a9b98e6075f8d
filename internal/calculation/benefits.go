package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

var defaultRules = domain.DefaultRuleSet()

// FederalTax calculates federal income tax using the default rule set
func FederalTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return NewFederalTaxCalculator(defaultRules).CalculateFederalTax(income, status)
}

// ContributionLimit returns the annual contribution cap using the default rule set
func ContributionLimit(t domain.AccountType, age int, coverage domain.HSACoverage) decimal.Decimal {
	return NewContributionLimitResolver(defaultRules).Limit(t, age, coverage)
}

// RMD wraps the RMD calculation with the default rule set
func RMD(balance decimal.Decimal, age int) decimal.Decimal {
	return NewRMDCalculator(defaultRules).CalculateRMD(balance, age)
}

// SocialSecurityBenefit estimates the annual benefit using the default rule set
func SocialSecurityBenefit(avgMonthlyEarnings decimal.Decimal, claimAge int) decimal.Decimal {
	return NewSocialSecurityEstimator(defaultRules).AnnualBenefit(avgMonthlyEarnings, claimAge)
}

// ProjectAccount projects one account using the default rule set
func ProjectAccount(account domain.Account, currentAge, numYears int, assumptions domain.EconomicAssumptions) []domain.YearProjection {
	return NewAccountProjector(defaultRules).Project(account, currentAge, numYears, assumptions)
}

// AggregateIncome computes the retirement income summary using the default rule set
func AggregateIncome(accounts []domain.Account, profile domain.UserProfile, assumptions domain.EconomicAssumptions) domain.RetirementIncomeSummary {
	return NewIncomeAggregator(defaultRules).Aggregate(accounts, profile, assumptions)
}
