package domain

import (
	"github.com/shopspring/decimal"
)

// RuleSet holds the fixed tables for one tax year. It is injected into the
// calculators so a different year's tables can be swapped in.
type RuleSet struct {
	TaxYear            int                 `toml:"tax_year" yaml:"tax_year" json:"tax_year"`
	FederalTax         FederalTaxConfig    `toml:"federal_tax" yaml:"federal_tax" json:"federal_tax"`
	ContributionLimits ContributionLimits  `toml:"contribution_limits" yaml:"contribution_limits" json:"contribution_limits"`
	RMD                RMDConfig           `toml:"rmd" yaml:"rmd" json:"rmd"`
	SocialSecurity     SocialSecurityRules `toml:"social_security" yaml:"social_security" json:"social_security"`
	WithdrawalRate     decimal.Decimal     `toml:"withdrawal_rate" yaml:"withdrawal_rate" json:"withdrawal_rate"`
}

// TaxBracket is one marginal bracket. A zero Max marks the unbounded top bracket.
type TaxBracket struct {
	Min  decimal.Decimal `toml:"min" yaml:"min" json:"min"`
	Max  decimal.Decimal `toml:"max" yaml:"max" json:"max"`
	Rate decimal.Decimal `toml:"rate" yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper edge.
func (b TaxBracket) Unbounded() bool { return b.Max.IsZero() }

// FederalTaxConfig holds the bracket schedules. Married-separate filers use Single.
type FederalTaxConfig struct {
	Single       []TaxBracket `toml:"single" yaml:"single" json:"single"`
	MarriedJoint []TaxBracket `toml:"married_joint" yaml:"married_joint" json:"married_joint"`
}

// ContributionLimit is a base annual cap plus a catch-up amount from CatchUpAge on.
type ContributionLimit struct {
	Base       decimal.Decimal `toml:"base" yaml:"base" json:"base"`
	CatchUp    decimal.Decimal `toml:"catch_up" yaml:"catch_up" json:"catch_up"`
	CatchUpAge int             `toml:"catch_up_age" yaml:"catch_up_age" json:"catch_up_age"`
}

// ContributionLimits holds one table per capped account type.
type ContributionLimits struct {
	Traditional401k ContributionLimit `toml:"traditional_401k" yaml:"traditional_401k" json:"traditional_401k"`
	Roth401k        ContributionLimit `toml:"roth_401k" yaml:"roth_401k" json:"roth_401k"`
	TraditionalIRA  ContributionLimit `toml:"traditional_ira" yaml:"traditional_ira" json:"traditional_ira"`
	RothIRA         ContributionLimit `toml:"roth_ira" yaml:"roth_ira" json:"roth_ira"`
	HSASingle       ContributionLimit `toml:"hsa_single" yaml:"hsa_single" json:"hsa_single"`
	HSAFamily       ContributionLimit `toml:"hsa_family" yaml:"hsa_family" json:"hsa_family"`
}

// RMDDivisor is the uniform lifetime table divisor for one age.
type RMDDivisor struct {
	Age     int             `toml:"age" yaml:"age" json:"age"`
	Divisor decimal.Decimal `toml:"divisor" yaml:"divisor" json:"divisor"`
}

// RMDConfig holds the RMD start age and divisor table. Ages past the last
// entry reuse the last divisor.
type RMDConfig struct {
	StartAge int          `toml:"start_age" yaml:"start_age" json:"start_age"`
	Divisors []RMDDivisor `toml:"divisors" yaml:"divisors" json:"divisors"`
}

// SocialSecurityRules parameterise the simplified benefit formula.
type SocialSecurityRules struct {
	EarningsReplacement decimal.Decimal `toml:"earnings_replacement" yaml:"earnings_replacement" json:"earnings_replacement"`
	AnnualMaximum       decimal.Decimal `toml:"annual_maximum" yaml:"annual_maximum" json:"annual_maximum"`
	FullRetirementAge   int             `toml:"full_retirement_age" yaml:"full_retirement_age" json:"full_retirement_age"`
	EarlyFloorAge       int             `toml:"early_floor_age" yaml:"early_floor_age" json:"early_floor_age"`
	EarlyBaseFactor     decimal.Decimal `toml:"early_base_factor" yaml:"early_base_factor" json:"early_base_factor"`
	EarlyStep           decimal.Decimal `toml:"early_step" yaml:"early_step" json:"early_step"`
	DelayedStep         decimal.Decimal `toml:"delayed_step" yaml:"delayed_step" json:"delayed_step"`
}

func decF(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decI(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// DefaultRuleSet returns the simplified 2024 tables.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		TaxYear: 2024,
		FederalTax: FederalTaxConfig{
			Single: []TaxBracket{
				{Min: decI(0), Max: decI(11600), Rate: decF(0.10)},
				{Min: decI(11600), Max: decI(47150), Rate: decF(0.12)},
				{Min: decI(47150), Max: decI(100525), Rate: decF(0.22)},
				{Min: decI(100525), Max: decI(191950), Rate: decF(0.24)},
				{Min: decI(191950), Max: decI(243725), Rate: decF(0.32)},
				{Min: decI(243725), Max: decI(609350), Rate: decF(0.35)},
				{Min: decI(609350), Max: decimal.Zero, Rate: decF(0.37)},
			},
			MarriedJoint: []TaxBracket{
				{Min: decI(0), Max: decI(23200), Rate: decF(0.10)},
				{Min: decI(23200), Max: decI(94300), Rate: decF(0.12)},
				{Min: decI(94300), Max: decI(201050), Rate: decF(0.22)},
				{Min: decI(201050), Max: decI(383900), Rate: decF(0.24)},
				{Min: decI(383900), Max: decI(487450), Rate: decF(0.32)},
				{Min: decI(487450), Max: decI(731200), Rate: decF(0.35)},
				{Min: decI(731200), Max: decimal.Zero, Rate: decF(0.37)},
			},
		},
		ContributionLimits: ContributionLimits{
			Traditional401k: ContributionLimit{Base: decI(23000), CatchUp: decI(7500), CatchUpAge: 50},
			Roth401k:        ContributionLimit{Base: decI(23000), CatchUp: decI(7500), CatchUpAge: 50},
			TraditionalIRA:  ContributionLimit{Base: decI(7000), CatchUp: decI(1000), CatchUpAge: 50},
			RothIRA:         ContributionLimit{Base: decI(7000), CatchUp: decI(1000), CatchUpAge: 50},
			HSASingle:       ContributionLimit{Base: decI(4300), CatchUp: decI(1000), CatchUpAge: 55},
			HSAFamily:       ContributionLimit{Base: decI(8550), CatchUp: decI(1000), CatchUpAge: 55},
		},
		RMD: RMDConfig{
			StartAge: 72,
			Divisors: uniformLifetimeTable(),
		},
		SocialSecurity: SocialSecurityRules{
			EarningsReplacement: decF(0.9),
			AnnualMaximum:       decI(44000),
			FullRetirementAge:   67,
			EarlyFloorAge:       62,
			EarlyBaseFactor:     decF(0.75),
			EarlyStep:           decF(0.05),
			DelayedStep:         decF(0.08),
		},
		WithdrawalRate: decF(0.04),
	}
}

// IRS Uniform Lifetime Table (simplified), ages 72-100.
func uniformLifetimeTable() []RMDDivisor {
	periods := []float64{
		27.4, 26.5, 25.5, 24.6, 23.7, 22.9, 22.0, // 72-78
		21.1, 20.2, 19.4, 18.5, 17.7, 16.8, 16.0, // 79-85
		15.2, 14.4, 13.7, 12.9, 12.2, 11.5, 10.8, // 86-92
		10.1, 9.5, 8.9, 8.4, 7.8, 7.3, 6.8, // 93-99
		6.4, // 100
	}
	table := make([]RMDDivisor, len(periods))
	for i, p := range periods {
		table[i] = RMDDivisor{Age: 72 + i, Divisor: decF(p)}
	}
	return table
}
