package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// RMDCalculator calculates Required Minimum Distributions
type RMDCalculator struct {
	StartAge int
	divisors map[int]decimal.Decimal
	floor    decimal.Decimal
	lastAge  int
}

// NewRMDCalculator creates a new RMD calculator from the rule set's uniform lifetime table
func NewRMDCalculator(rules domain.RuleSet) *RMDCalculator {
	calc := &RMDCalculator{
		StartAge: rules.RMD.StartAge,
		divisors: make(map[int]decimal.Decimal, len(rules.RMD.Divisors)),
	}
	for _, d := range rules.RMD.Divisors {
		calc.divisors[d.Age] = d.Divisor
		if d.Age >= calc.lastAge {
			calc.lastAge = d.Age
			calc.floor = d.Divisor
		}
	}
	return calc
}

// Divisor returns the distribution period for an age and whether one applies.
func (rmd *RMDCalculator) Divisor(age int) (decimal.Decimal, bool) {
	if age < rmd.StartAge {
		return decimal.Zero, false
	}
	if period, exists := rmd.divisors[age]; exists && period.IsPositive() {
		return period, true
	}
	// Past the end of the table the last divisor is used as a floor
	if age > rmd.lastAge && rmd.floor.IsPositive() {
		return rmd.floor, true
	}
	return decimal.Zero, false
}

// CalculateRMD calculates the Required Minimum Distribution for a given age and balance
func (rmd *RMDCalculator) CalculateRMD(balance decimal.Decimal, age int) decimal.Decimal {
	period, ok := rmd.Divisor(age)
	if !ok {
		return decimal.Zero
	}
	return balance.Div(period)
}
