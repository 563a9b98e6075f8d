package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownFilingStatus is returned for unrecognised filing status tags.
var ErrUnknownFilingStatus = errors.New("unknown filing status")

// FilingStatus is the federal tax filing status.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
)

var filingAliases = map[string]FilingStatus{
	"single":           FilingSingle,
	"married_joint":    FilingMarriedJoint,
	"married":          FilingMarriedJoint,
	"marriedjoint":     FilingMarriedJoint,
	"mfj":              FilingMarriedJoint,
	"married_separate": FilingMarriedSeparate,
	"marriedseparate":  FilingMarriedSeparate,
	"mfs":              FilingMarriedSeparate,
}

// ParseFilingStatus resolves a filing status tag, accepting common aliases.
func ParseFilingStatus(s string) (FilingStatus, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "" {
		return FilingSingle, nil
	}
	if fs, ok := filingAliases[n]; ok {
		return fs, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilingStatus, s)
}

// UserProfile holds the demographic inputs for a plan.
type UserProfile struct {
	CurrentAge    int             `yaml:"current_age" json:"current_age"`
	RetirementAge int             `yaml:"retirement_age" json:"retirement_age"`
	DeathAge      int             `yaml:"death_age" json:"death_age"`
	FilingStatus  FilingStatus    `yaml:"filing_status" json:"filing_status"`
	CurrentIncome decimal.Decimal `yaml:"current_income" json:"current_income"`
	AverageIncome decimal.Decimal `yaml:"average_income" json:"average_income"` // career average, informational
}

// YearsToRetirement returns RetirementAge - CurrentAge.
func (p *UserProfile) YearsToRetirement() int { return p.RetirementAge - p.CurrentAge }

// YearsInRetirement returns DeathAge - RetirementAge.
func (p *UserProfile) YearsInRetirement() int { return p.DeathAge - p.RetirementAge }

// LifespanYears returns DeathAge - CurrentAge.
func (p *UserProfile) LifespanYears() int { return p.DeathAge - p.CurrentAge }

// EconomicAssumptions are the rates applied to a calculation. Rates are fractions (0.07 = 7%).
type EconomicAssumptions struct {
	ReturnRate        decimal.Decimal `yaml:"return_rate" json:"return_rate"`
	InflationRate     decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	RetirementTaxRate decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
}

// Plan is one complete set of caller inputs.
type Plan struct {
	Profile     UserProfile         `yaml:"profile" json:"profile"`
	Assumptions EconomicAssumptions `yaml:"assumptions" json:"assumptions"`
	Accounts    []Account           `yaml:"accounts" json:"accounts"`
}
