package calculation

import (
	"testing"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assumptionsAt(rate float64) domain.EconomicAssumptions {
	return domain.EconomicAssumptions{
		ReturnRate:    decimal.NewFromFloat(rate),
		InflationRate: decimal.NewFromFloat(0.03),
	}
}

func TestProjectLengthAndAges(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	account := domain.Account{
		Type:               domain.AccountTraditional401k,
		CurrentBalance:     decimal.NewFromInt(100000),
		AnnualContribution: decimal.NewFromInt(50000),
	}

	projections := projector.Project(account, 60, 5, assumptionsAt(0.05))

	require.Len(t, projections, 6)
	for i, p := range projections {
		assert.Equal(t, i, p.Year)
		assert.Equal(t, 60+i, p.Age)
		// 50000 requested, capped at 30500 with catch-up
		assert.Equal(t, "30500", p.Contribution.String())
		assert.True(t, p.RMD.IsZero(), "no RMD before 72")
	}
	assert.Equal(t, "351840.82", projections[5].Balance.StringFixed(2))
}

func TestProjectContributionTimingAndGrowth(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	account := domain.Account{
		Type:               domain.AccountRothIRA,
		CurrentBalance:     decimal.NewFromInt(1000),
		AnnualContribution: decimal.NewFromInt(1000),
	}

	projections := projector.Project(account, 30, 1, assumptionsAt(0.10))

	require.Len(t, projections, 2)
	// (1000 + 1000) * 1.1
	assert.Equal(t, "2200.00", projections[0].Balance.StringFixed(2))
	// (2200 + 1000) * 1.1
	assert.Equal(t, "3520.00", projections[1].Balance.StringFixed(2))
}

func TestProjectClampsNegativeContribution(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	account := domain.Account{
		Type:               domain.AccountRothIRA,
		CurrentBalance:     decimal.NewFromInt(1000),
		AnnualContribution: decimal.NewFromInt(-500),
	}

	projections := projector.Project(account, 30, 0, assumptionsAt(0))
	require.Len(t, projections, 1)
	assert.True(t, projections[0].Contribution.IsZero())
	assert.Equal(t, "1000", projections[0].Balance.String())
}

func TestProjectAppliesRMDToTraditionalAccounts(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	account := domain.Account{
		Type:           domain.AccountTraditionalIRA,
		CurrentBalance: decimal.NewFromInt(100000),
	}

	projections := projector.Project(account, 71, 1, assumptionsAt(0))
	require.Len(t, projections, 2)

	assert.True(t, projections[0].RMD.IsZero())
	assert.Equal(t, "100000", projections[0].Balance.String())

	// RMD reported is the amount withdrawn from the post-growth balance
	assert.Equal(t, "3649.64", projections[1].RMD.StringFixed(2))
	assert.True(t, projections[1].Balance.Add(projections[1].RMD).Equal(decimal.NewFromInt(100000)))
}

func TestProjectRothNeverTakesRMD(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	for _, accountType := range []domain.AccountType{domain.AccountRoth401k, domain.AccountRothIRA} {
		account := domain.Account{Type: accountType, CurrentBalance: decimal.NewFromInt(250000)}

		projections := projector.Project(account, 95, 15, assumptionsAt(0.04))
		require.Len(t, projections, 16)
		for _, p := range projections {
			assert.True(t, p.RMD.IsZero(), "%s at age %d", accountType, p.Age)
		}
		assert.True(t, projections[15].Balance.GreaterThan(account.CurrentBalance))
	}
}

func TestProjectFloorsRecordedBalanceAtZero(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	account := domain.Account{Type: domain.AccountTaxable, CurrentBalance: decimal.NewFromInt(1000)}

	projections := projector.Project(account, 40, 2, assumptionsAt(-1.5))
	for _, p := range projections {
		assert.False(t, p.Balance.IsNegative(), "year %d", p.Year)
	}
}

func TestProjectTaxableAccountIgnoresContributions(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	account := domain.Account{
		Type:               domain.AccountTaxable,
		CurrentBalance:     decimal.NewFromInt(5000),
		AnnualContribution: decimal.NewFromInt(12000),
	}

	projections := projector.Project(account, 40, 0, assumptionsAt(0))
	require.Len(t, projections, 1)
	assert.True(t, projections[0].Contribution.IsZero(), "taxable accounts resolve a zero cap")
	assert.Equal(t, "5000", projections[0].Balance.String())
}

func TestProjectNegativeYears(t *testing.T) {
	projector := NewAccountProjector(domain.DefaultRuleSet())
	projections := projector.Project(domain.Account{Type: domain.AccountRothIRA}, 70, -3, assumptionsAt(0.07))
	assert.Empty(t, projections)
	assert.True(t, BalanceAt(projections, 0).IsZero())
}

func TestProjectIsPure(t *testing.T) {
	account := domain.Account{
		Type:               domain.AccountTraditional401k,
		CurrentBalance:     decimal.NewFromInt(40000),
		AnnualContribution: decimal.NewFromInt(15000),
	}
	before := account

	first := ProjectAccount(account, 45, 40, assumptionsAt(0.06))
	second := ProjectAccount(account, 45, 40, assumptionsAt(0.06))

	assert.Equal(t, before, account)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Balance.Equal(second[i].Balance))
		assert.True(t, first[i].RMD.Equal(second[i].RMD))
	}
}
