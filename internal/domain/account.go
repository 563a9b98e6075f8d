package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownAccountType is returned when an account type tag is not one of the supported variants.
var ErrUnknownAccountType = errors.New("unknown account type")

// AccountType identifies the kind of retirement account.
type AccountType string

const (
	AccountTraditional401k AccountType = "traditional_401k"
	AccountRoth401k        AccountType = "roth_401k"
	AccountTraditionalIRA  AccountType = "traditional_ira"
	AccountRothIRA         AccountType = "roth_ira"
	AccountHSA             AccountType = "hsa"
	AccountPension         AccountType = "pension"
	AccountSocialSecurity  AccountType = "social_security"
	AccountTaxable         AccountType = "taxable"
)

// AccountTypes lists every supported account type in display order.
var AccountTypes = []AccountType{
	AccountTraditional401k,
	AccountRoth401k,
	AccountTraditionalIRA,
	AccountRothIRA,
	AccountHSA,
	AccountPension,
	AccountSocialSecurity,
	AccountTaxable,
}

// AccountClass groups account types by how the projection treats them.
type AccountClass int

const (
	ClassUnknown AccountClass = iota
	ClassTaxDeferred
	ClassTaxFree
	ClassHealthSavings
	ClassIncomeStream
	ClassTaxable
)

// Class returns the tax/treatment class of the account type.
func (t AccountType) Class() AccountClass {
	switch t {
	case AccountTraditional401k, AccountTraditionalIRA:
		return ClassTaxDeferred
	case AccountRoth401k, AccountRothIRA:
		return ClassTaxFree
	case AccountHSA:
		return ClassHealthSavings
	case AccountPension, AccountSocialSecurity:
		return ClassIncomeStream
	case AccountTaxable:
		return ClassTaxable
	default:
		return ClassUnknown
	}
}

// Valid reports whether t is one of the supported variants.
func (t AccountType) Valid() bool { return t.Class() != ClassUnknown }

// RequiresRMD reports whether required minimum distributions apply.
// Only tax-deferred accounts carry RMDs; Roth accounts are exempt.
func (t AccountType) RequiresRMD() bool { return t.Class() == ClassTaxDeferred }

// IsIncomeStream reports whether the account pays a benefit instead of holding a balance.
func (t AccountType) IsIncomeStream() bool { return t.Class() == ClassIncomeStream }

// Label returns the display name of the account type.
func (t AccountType) Label() string {
	switch t {
	case AccountTraditional401k:
		return "401(k) Traditional"
	case AccountRoth401k:
		return "401(k) Roth"
	case AccountTraditionalIRA:
		return "IRA Traditional"
	case AccountRothIRA:
		return "IRA Roth"
	case AccountHSA:
		return "HSA"
	case AccountPension:
		return "Pension"
	case AccountSocialSecurity:
		return "Social Security"
	case AccountTaxable:
		return "Taxable Accounts"
	default:
		return string(t)
	}
}

// ParseAccountType converts a tag to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccountType, s)
	}
	return t, nil
}

// HSACoverage selects the HSA contribution sub-table.
type HSACoverage string

const (
	HSACoverageSingle HSACoverage = "single"
	HSACoverageFamily HSACoverage = "family"
)

// Normalize returns the coverage tier, defaulting to single for anything but family.
func (c HSACoverage) Normalize() HSACoverage {
	if HSACoverage(strings.ToLower(string(c))) == HSACoverageFamily {
		return HSACoverageFamily
	}
	return HSACoverageSingle
}

// Account is a caller-owned snapshot of a single savings account or income stream.
type Account struct {
	ID                 string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name               string          `yaml:"name,omitempty" json:"name,omitempty"`
	Description        string          `yaml:"description,omitempty" json:"description,omitempty"`
	Type               AccountType     `yaml:"type" json:"type"`
	CurrentBalance     decimal.Decimal `yaml:"current_balance" json:"current_balance"`
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annual_contribution"`
	EmployerMatch      decimal.Decimal `yaml:"employer_match" json:"employer_match"` // informational, never added to the balance
	MonthlyBenefit     decimal.Decimal `yaml:"monthly_benefit" json:"monthly_benefit"` // pension and social security only
	HSACoverage        HSACoverage     `yaml:"hsa_coverage,omitempty" json:"hsa_coverage,omitempty"`
}

// DisplayName returns the account name, falling back to the type label.
func (a *Account) DisplayName() string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return a.Type.Label()
}
