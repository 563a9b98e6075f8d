package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal Tax Brackets: one tax year's schedule (2024 by default) for every projection year
//    - No inflation indexing, no standard deduction, no credits
//    - Income passed in is treated as taxable income
//
// 2. Married filing separately uses the single schedule. This is an explicit policy.
//
// 3. The aggregate retirement income summary never applies this tax.

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Year   int
	Config domain.FederalTaxConfig
}

// NewFederalTaxCalculator creates a federal tax calculator for the given rule set
func NewFederalTaxCalculator(rules domain.RuleSet) *FederalTaxCalculator {
	return &FederalTaxCalculator{Year: rules.TaxYear, Config: rules.FederalTax}
}

// BracketsFor returns the schedule used for a filing status.
func (ftc *FederalTaxCalculator) BracketsFor(status domain.FilingStatus) []domain.TaxBracket {
	switch status {
	case domain.FilingMarriedJoint:
		return ftc.Config.MarriedJoint
	case domain.FilingSingle, domain.FilingMarriedSeparate:
		return ftc.Config.Single
	default:
		return ftc.Config.Single
	}
}

// CalculateFederalTax calculates federal income tax on taxable income
func (ftc *FederalTaxCalculator) CalculateFederalTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, bracket := range ftc.BracketsFor(status) {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		top := income
		if !bracket.Unbounded() {
			top = decimal.Min(income, bracket.Max)
		}
		incomeInBracket := top.Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}

	return totalTax
}

// MarginalRate returns the rate of the bracket the last dollar of income falls in.
func (ftc *FederalTaxCalculator) MarginalRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	rate := decimal.Zero
	for _, bracket := range ftc.BracketsFor(status) {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		rate = bracket.Rate
	}
	return rate
}

// EffectiveRate returns tax divided by income, zero for non-positive income.
func (ftc *FederalTaxCalculator) EffectiveRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return ftc.CalculateFederalTax(income, status).Div(income)
}
