package calculation

import (
	"testing"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProfile() domain.UserProfile {
	return domain.UserProfile{
		CurrentAge:    30,
		RetirementAge: 65,
		DeathAge:      90,
		FilingStatus:  domain.FilingSingle,
		CurrentIncome: decimal.NewFromInt(75000),
	}
}

func TestAggregateSingleTraditional401k(t *testing.T) {
	accounts := []domain.Account{{
		Name:               "Work 401k",
		Type:               domain.AccountTraditional401k,
		CurrentBalance:     decimal.NewFromInt(10000),
		AnnualContribution: decimal.NewFromInt(10000),
	}}

	summary := AggregateIncome(accounts, baseProfile(), assumptionsAt(0.07))

	// 36 years (ages 30..65) of (balance + 10000) * 1.07; the 10000 contribution never hits the cap
	assert.Equal(t, "1707613.44", summary.TotalBalance.StringFixed(2))
	assert.True(t, summary.SafeWithdrawalAmount.Equal(summary.TotalBalance.Mul(decimal.NewFromFloat(0.04))))
	assert.Equal(t, "68304.54", summary.SafeWithdrawalAmount.StringFixed(2))
	assert.True(t, summary.AnnualIncomeStreams.IsZero())
	assert.True(t, summary.TotalAnnualIncome.Equal(summary.SafeWithdrawalAmount))
	assert.True(t, summary.MonthlyIncome.Mul(decimal.NewFromInt(12)).Sub(summary.TotalAnnualIncome).Abs().LessThan(decimal.NewFromFloat(0.0001)))

	require.Len(t, summary.Accounts, 1)
	assert.Equal(t, "Work 401k", summary.Accounts[0].Name)
	assert.True(t, summary.Accounts[0].BalanceAtRetirement.Equal(summary.TotalBalance))
}

func TestAggregateIncomeStreams(t *testing.T) {
	accounts := []domain.Account{
		{Type: domain.AccountPension, MonthlyBenefit: decimal.NewFromInt(2000)},
		{Type: domain.AccountSocialSecurity},
	}

	summary := AggregateIncome(accounts, baseProfile(), assumptionsAt(0.07))

	// Pension 2000 * 12; Social Security 75000/12 -> capped 44000 * (0.75 + 3*0.05)
	assert.Equal(t, "63600.00", summary.AnnualIncomeStreams.StringFixed(2))
	assert.True(t, summary.TotalBalance.IsZero())
	assert.True(t, summary.SafeWithdrawalAmount.IsZero())
	assert.Equal(t, "5300.00", summary.MonthlyIncome.StringFixed(2))

	require.Len(t, summary.Accounts, 2)
	assert.Equal(t, "24000", summary.Accounts[0].AnnualIncome.String())
	assert.Equal(t, "39600.00", summary.Accounts[1].AnnualIncome.StringFixed(2))
	assert.Equal(t, "Social Security", summary.Accounts[1].Name)
}

func TestAggregatePensionBalanceIsIgnored(t *testing.T) {
	accounts := []domain.Account{{
		Type:           domain.AccountPension,
		CurrentBalance: decimal.NewFromInt(500000),
		MonthlyBenefit: decimal.NewFromInt(1000),
	}}

	summary := AggregateIncome(accounts, baseProfile(), assumptionsAt(0.07))
	assert.True(t, summary.TotalBalance.IsZero())
	assert.Equal(t, "12000", summary.AnnualIncomeStreams.String())
}

func TestAggregateIsIdempotent(t *testing.T) {
	accounts := []domain.Account{
		{Type: domain.AccountTraditional401k, CurrentBalance: decimal.NewFromInt(85000), AnnualContribution: decimal.NewFromInt(23000)},
		{Type: domain.AccountRothIRA, CurrentBalance: decimal.NewFromInt(20000), AnnualContribution: decimal.NewFromInt(9000)},
		{Type: domain.AccountHSA, CurrentBalance: decimal.NewFromInt(4000), AnnualContribution: decimal.NewFromInt(8000), HSACoverage: domain.HSACoverageFamily},
		{Type: domain.AccountTaxable, CurrentBalance: decimal.NewFromInt(30000)},
		{Type: domain.AccountSocialSecurity},
	}
	aggregator := NewIncomeAggregator(domain.DefaultRuleSet())

	first := aggregator.Aggregate(accounts, baseProfile(), assumptionsAt(0.065))
	second := aggregator.Aggregate(accounts, baseProfile(), assumptionsAt(0.065))

	assert.Equal(t, first.TotalBalance.String(), second.TotalBalance.String())
	assert.Equal(t, first.SafeWithdrawalAmount.String(), second.SafeWithdrawalAmount.String())
	assert.Equal(t, first.AnnualIncomeStreams.String(), second.AnnualIncomeStreams.String())
	assert.Equal(t, first.TotalAnnualIncome.String(), second.TotalAnnualIncome.String())
	assert.Equal(t, first.MonthlyIncome.String(), second.MonthlyIncome.String())
	assert.Equal(t, first, second)
}

func TestAggregateUnknownTypeProjectsBalanceOnly(t *testing.T) {
	accounts := []domain.Account{{
		Type:               domain.AccountType("annuity"),
		CurrentBalance:     decimal.NewFromInt(1000),
		AnnualContribution: decimal.NewFromInt(1000),
	}}
	aggregator := NewIncomeAggregator(domain.DefaultRuleSet())
	logger := &recordingLogger{}
	aggregator.Logger = logger

	profile := baseProfile()
	profile.RetirementAge = 31
	summary := aggregator.Aggregate(accounts, profile, assumptionsAt(0))

	assert.Equal(t, "1000", summary.TotalBalance.String(), "no cap means no contribution")
	assert.NotEmpty(t, logger.warnings)
}

func TestAggregateRetirementAgeNotAfterCurrentAge(t *testing.T) {
	accounts := []domain.Account{{Type: domain.AccountRothIRA, CurrentBalance: decimal.NewFromInt(1000)}}
	profile := baseProfile()
	profile.RetirementAge = 29

	summary := AggregateIncome(accounts, profile, assumptionsAt(0.07))
	assert.True(t, summary.TotalBalance.IsZero())
}

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}
