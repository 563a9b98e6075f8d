package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidRules is returned when a rule table fails validation.
var ErrInvalidRules = errors.New("invalid rules")

// LoadRules overlays the TOML file at path onto the default rule set. An empty
// path returns the defaults.
func LoadRules(path string) (domain.RuleSet, error) {
	if path == "" {
		return domain.DefaultRuleSet(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to open rules file %s: %w", path, err)
	}
	defer f.Close()

	rules, err := DecodeRules(f)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// DecodeRules reads TOML from r and overlays every key it defines onto the
// default rule set. Tables given in the file replace the default table whole;
// scalar keys replace only themselves.
func DecodeRules(r io.Reader) (domain.RuleSet, error) {
	var file domain.RuleSet
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return domain.RuleSet{}, fmt.Errorf("%w: unknown keys %v", ErrInvalidRules, undecoded)
	}

	rules := domain.DefaultRuleSet()
	for _, o := range ruleOverrides() {
		if md.IsDefined(o.key...) {
			o.apply(&rules, &file)
		}
	}

	if err := ValidateRules(rules); err != nil {
		return domain.RuleSet{}, err
	}
	return rules, nil
}

// EncodeRules writes the rule set as TOML.
func EncodeRules(w io.Writer, rules domain.RuleSet) error {
	if err := toml.NewEncoder(w).Encode(rules); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return nil
}

type ruleOverride struct {
	key   []string
	apply func(dst, src *domain.RuleSet)
}

func ruleOverrides() []ruleOverride {
	overrides := []ruleOverride{
		{[]string{"tax_year"}, func(d, s *domain.RuleSet) { d.TaxYear = s.TaxYear }},
		{[]string{"withdrawal_rate"}, func(d, s *domain.RuleSet) { d.WithdrawalRate = s.WithdrawalRate }},
		{[]string{"federal_tax", "single"}, func(d, s *domain.RuleSet) { d.FederalTax.Single = s.FederalTax.Single }},
		{[]string{"federal_tax", "married_joint"}, func(d, s *domain.RuleSet) { d.FederalTax.MarriedJoint = s.FederalTax.MarriedJoint }},
		{[]string{"rmd", "start_age"}, func(d, s *domain.RuleSet) { d.RMD.StartAge = s.RMD.StartAge }},
		{[]string{"rmd", "divisors"}, func(d, s *domain.RuleSet) { d.RMD.Divisors = s.RMD.Divisors }},
		{[]string{"social_security", "earnings_replacement"}, func(d, s *domain.RuleSet) {
			d.SocialSecurity.EarningsReplacement = s.SocialSecurity.EarningsReplacement
		}},
		{[]string{"social_security", "annual_maximum"}, func(d, s *domain.RuleSet) { d.SocialSecurity.AnnualMaximum = s.SocialSecurity.AnnualMaximum }},
		{[]string{"social_security", "full_retirement_age"}, func(d, s *domain.RuleSet) {
			d.SocialSecurity.FullRetirementAge = s.SocialSecurity.FullRetirementAge
		}},
		{[]string{"social_security", "early_floor_age"}, func(d, s *domain.RuleSet) { d.SocialSecurity.EarlyFloorAge = s.SocialSecurity.EarlyFloorAge }},
		{[]string{"social_security", "early_base_factor"}, func(d, s *domain.RuleSet) {
			d.SocialSecurity.EarlyBaseFactor = s.SocialSecurity.EarlyBaseFactor
		}},
		{[]string{"social_security", "early_step"}, func(d, s *domain.RuleSet) { d.SocialSecurity.EarlyStep = s.SocialSecurity.EarlyStep }},
		{[]string{"social_security", "delayed_step"}, func(d, s *domain.RuleSet) { d.SocialSecurity.DelayedStep = s.SocialSecurity.DelayedStep }},
	}

	limits := []struct {
		name string
		get  func(*domain.ContributionLimits) *domain.ContributionLimit
	}{
		{"traditional_401k", func(l *domain.ContributionLimits) *domain.ContributionLimit { return &l.Traditional401k }},
		{"roth_401k", func(l *domain.ContributionLimits) *domain.ContributionLimit { return &l.Roth401k }},
		{"traditional_ira", func(l *domain.ContributionLimits) *domain.ContributionLimit { return &l.TraditionalIRA }},
		{"roth_ira", func(l *domain.ContributionLimits) *domain.ContributionLimit { return &l.RothIRA }},
		{"hsa_single", func(l *domain.ContributionLimits) *domain.ContributionLimit { return &l.HSASingle }},
		{"hsa_family", func(l *domain.ContributionLimits) *domain.ContributionLimit { return &l.HSAFamily }},
	}
	for _, l := range limits {
		get := l.get
		overrides = append(overrides,
			ruleOverride{[]string{"contribution_limits", l.name, "base"}, func(d, s *domain.RuleSet) {
				get(&d.ContributionLimits).Base = get(&s.ContributionLimits).Base
			}},
			ruleOverride{[]string{"contribution_limits", l.name, "catch_up"}, func(d, s *domain.RuleSet) {
				get(&d.ContributionLimits).CatchUp = get(&s.ContributionLimits).CatchUp
			}},
			ruleOverride{[]string{"contribution_limits", l.name, "catch_up_age"}, func(d, s *domain.RuleSet) {
				get(&d.ContributionLimits).CatchUpAge = get(&s.ContributionLimits).CatchUpAge
			}},
		)
	}
	return overrides
}

// ValidateRules checks that the tables are usable by the calculators.
func ValidateRules(rules domain.RuleSet) error {
	if err := validateBrackets("single", rules.FederalTax.Single); err != nil {
		return err
	}
	if err := validateBrackets("married_joint", rules.FederalTax.MarriedJoint); err != nil {
		return err
	}

	limits := map[string]domain.ContributionLimit{
		"traditional_401k": rules.ContributionLimits.Traditional401k,
		"roth_401k":        rules.ContributionLimits.Roth401k,
		"traditional_ira":  rules.ContributionLimits.TraditionalIRA,
		"roth_ira":         rules.ContributionLimits.RothIRA,
		"hsa_single":       rules.ContributionLimits.HSASingle,
		"hsa_family":       rules.ContributionLimits.HSAFamily,
	}
	for name, l := range limits {
		if l.Base.IsNegative() || l.CatchUp.IsNegative() {
			return fmt.Errorf("%w: contribution limit %s cannot be negative", ErrInvalidRules, name)
		}
	}

	if rules.RMD.StartAge <= 0 {
		return fmt.Errorf("%w: rmd start age must be positive", ErrInvalidRules)
	}
	if len(rules.RMD.Divisors) == 0 {
		return fmt.Errorf("%w: rmd divisor table is empty", ErrInvalidRules)
	}
	for i, d := range rules.RMD.Divisors {
		if !d.Divisor.IsPositive() {
			return fmt.Errorf("%w: rmd divisor for age %d must be positive", ErrInvalidRules, d.Age)
		}
		if i > 0 && d.Age <= rules.RMD.Divisors[i-1].Age {
			return fmt.Errorf("%w: rmd divisor ages must be ascending", ErrInvalidRules)
		}
	}

	ss := rules.SocialSecurity
	if ss.FullRetirementAge < ss.EarlyFloorAge {
		return fmt.Errorf("%w: full retirement age must not precede the early claim age", ErrInvalidRules)
	}
	if !ss.AnnualMaximum.IsPositive() {
		return fmt.Errorf("%w: social security annual maximum must be positive", ErrInvalidRules)
	}

	if !rules.WithdrawalRate.IsPositive() || rules.WithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: withdrawal rate must be in (0, 1]", ErrInvalidRules)
	}
	return nil
}

func validateBrackets(name string, brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: %s tax brackets are empty", ErrInvalidRules, name)
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%w: %s tax brackets must start at 0", ErrInvalidRules, name)
	}
	one := decimal.NewFromInt(1)
	last := len(brackets) - 1
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: %s bracket %d rate out of range", ErrInvalidRules, name, i+1)
		}
		if b.Unbounded() != (i == last) {
			return fmt.Errorf("%w: %s bracket %d: only the top bracket may be unbounded", ErrInvalidRules, name, i+1)
		}
		if !b.Unbounded() && b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: %s bracket %d max must exceed min", ErrInvalidRules, name, i+1)
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("%w: %s bracket %d does not start where bracket %d ends", ErrInvalidRules, name, i+1, i)
		}
	}
	return nil
}
