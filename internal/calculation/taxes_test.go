package calculation

import (
	"testing"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestFederalTaxCalculation tests federal income tax calculations using 2024 tax brackets
func TestFederalTaxCalculation(t *testing.T) {
	calculator := NewFederalTaxCalculator(domain.DefaultRuleSet())

	tests := []struct {
		name        string
		income      decimal.Decimal
		status      domain.FilingStatus
		expectedTax decimal.Decimal
	}{
		{"Zero income", decimal.Zero, domain.FilingSingle, decimal.Zero},
		{"Negative income", decimal.NewFromInt(-5000), domain.FilingMarriedJoint, decimal.Zero},
		{"First bracket only", decimal.NewFromInt(10000), domain.FilingSingle, decimal.NewFromInt(1000)},
		{"Exact first boundary", decimal.NewFromInt(11600), domain.FilingSingle, decimal.NewFromInt(1160)},
		// 1160 + 35550*0.12 + 53375*0.22
		{"Exact 22% boundary", decimal.NewFromInt(100525), domain.FilingSingle, decimal.NewFromFloat(17168.5)},
		// 1160 + 4266 + 52850*0.22
		{"Inside 22% bracket", decimal.NewFromInt(100000), domain.FilingSingle, decimal.NewFromInt(17053)},
		// 2320 + 71100*0.12
		{"Married joint two brackets", decimal.NewFromInt(94300), domain.FilingMarriedJoint, decimal.NewFromInt(10852)},
		{"Married separate uses single schedule", decimal.NewFromInt(100525), domain.FilingMarriedSeparate, decimal.NewFromFloat(17168.5)},
		// 183647.25 + 390650*0.37
		{"Unbounded top bracket", decimal.NewFromInt(1000000), domain.FilingSingle, decimal.NewFromFloat(328187.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.CalculateFederalTax(tt.income, tt.status)
			assert.True(t, got.Equal(tt.expectedTax),
				"income %s (%s): expected %s, got %s", tt.income, tt.status, tt.expectedTax, got)
		})
	}
}

func TestFederalTaxWrapperMatchesCalculator(t *testing.T) {
	income := decimal.NewFromInt(250000)
	want := NewFederalTaxCalculator(domain.DefaultRuleSet()).CalculateFederalTax(income, domain.FilingMarriedJoint)
	assert.True(t, FederalTax(income, domain.FilingMarriedJoint).Equal(want))
}

func TestMarginalAndEffectiveRates(t *testing.T) {
	calculator := NewFederalTaxCalculator(domain.DefaultRuleSet())

	assert.Equal(t, "0.22", calculator.MarginalRate(decimal.NewFromInt(100525), domain.FilingSingle).String())
	assert.Equal(t, "0.24", calculator.MarginalRate(decimal.NewFromInt(100526), domain.FilingSingle).String())
	assert.Equal(t, "0.37", calculator.MarginalRate(decimal.NewFromInt(5000000), domain.FilingMarriedJoint).String())
	assert.True(t, calculator.MarginalRate(decimal.Zero, domain.FilingSingle).IsZero())

	assert.True(t, calculator.EffectiveRate(decimal.Zero, domain.FilingSingle).IsZero())
	assert.Equal(t, "0.1", calculator.EffectiveRate(decimal.NewFromInt(10000), domain.FilingSingle).String())
}

func TestFederalTaxCustomSchedule(t *testing.T) {
	rules := domain.DefaultRuleSet()
	rules.FederalTax.Single = []domain.TaxBracket{
		{Min: decimal.Zero, Max: decimal.NewFromInt(1000), Rate: decimal.NewFromFloat(0.5)},
		{Min: decimal.NewFromInt(1000), Max: decimal.Zero, Rate: decimal.NewFromFloat(0.1)},
	}
	calculator := NewFederalTaxCalculator(rules)

	got := calculator.CalculateFederalTax(decimal.NewFromInt(3000), domain.FilingSingle)
	assert.True(t, got.Equal(decimal.NewFromInt(700)), "got %s", got)
}
