package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan is returned when a plan fails validation.
var ErrInvalidPlan = errors.New("invalid plan")

// Defaults applied when a field is missing from the input.
const (
	DefaultCurrentAge    = 30
	DefaultRetirementAge = 65
	DefaultDeathAge      = 85
)

var (
	DefaultReturnRate    = decimal.NewFromFloat(0.07)
	DefaultInflationRate = decimal.NewFromFloat(0.03)
)

// InputParser handles parsing of plan files
type InputParser struct {
	Logger calculation.Logger
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Logger: calculation.NopLogger{}}
}

// LoadFromFile loads a plan from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, warnings, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		ip.Logger.Warnf("%s: %s", filename, w)
	}

	if err := ip.ValidatePlan(plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return plan, nil
}

// Parse decodes a YAML (or JSON) plan. Numeric fields are coerced: missing
// fields take their defaults, unparseable values become 0 and produce a warning.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, []string, error) {
	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	plan, warnings := raw.toPlan()
	return &plan, warnings, nil
}

// DecodeJSON decodes a JSON plan with the same coercion rules as Parse.
func (ip *InputParser) DecodeJSON(data []byte) (*domain.Plan, []string, error) {
	var raw rawPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	plan, warnings := raw.toPlan()
	return &plan, warnings, nil
}

// ValidatePlan checks the invariants the calculation core leaves to its caller
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: no plan provided", ErrInvalidPlan)
	}
	if err := ip.validateProfile(&plan.Profile); err != nil {
		return fmt.Errorf("%w: profile: %w", ErrInvalidPlan, err)
	}
	if err := ip.validateAssumptions(&plan.Assumptions); err != nil {
		return fmt.Errorf("%w: assumptions: %w", ErrInvalidPlan, err)
	}
	for i := range plan.Accounts {
		if err := ip.validateAccount(&plan.Accounts[i]); err != nil {
			return fmt.Errorf("%w: account %d (%s): %w", ErrInvalidPlan, i+1, plan.Accounts[i].DisplayName(), err)
		}
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.UserProfile) error {
	if p.CurrentAge < 0 {
		return fmt.Errorf("current age cannot be negative")
	}
	if p.RetirementAge <= p.CurrentAge {
		return fmt.Errorf("retirement age (%d) must be after current age (%d)", p.RetirementAge, p.CurrentAge)
	}
	if p.DeathAge <= p.RetirementAge {
		return fmt.Errorf("death age (%d) must be after retirement age (%d)", p.DeathAge, p.RetirementAge)
	}
	if p.DeathAge > 120 {
		return fmt.Errorf("death age cannot exceed 120")
	}
	if _, err := domain.ParseFilingStatus(string(p.FilingStatus)); err != nil {
		return err
	}
	if p.CurrentIncome.IsNegative() {
		return fmt.Errorf("current income cannot be negative")
	}
	if p.AverageIncome.IsNegative() {
		return fmt.Errorf("average income cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.EconomicAssumptions) error {
	minusOne := decimal.NewFromInt(-1)
	if a.ReturnRate.LessThanOrEqual(minusOne) {
		return fmt.Errorf("return rate must be greater than -100%%")
	}
	if a.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if a.RetirementTaxRate.IsNegative() || a.RetirementTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate must be between 0 and 100%%")
	}
	return nil
}

func (ip *InputParser) validateAccount(a *domain.Account) error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownAccountType, a.Type)
	}
	if a.CurrentBalance.IsNegative() {
		return fmt.Errorf("current balance cannot be negative")
	}
	if a.AnnualContribution.IsNegative() {
		return fmt.Errorf("annual contribution cannot be negative")
	}
	if a.EmployerMatch.IsNegative() {
		return fmt.Errorf("employer match cannot be negative")
	}
	if a.MonthlyBenefit.IsNegative() {
		return fmt.Errorf("monthly benefit cannot be negative")
	}
	return nil
}

// SavePlan writes a plan as YAML
func (ip *InputParser) SavePlan(plan *domain.Plan, filename string) error {
	b, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExamplePlan returns a plan covering every account type
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	return &domain.Plan{
		Profile: domain.UserProfile{
			CurrentAge:    35,
			RetirementAge: 65,
			DeathAge:      90,
			FilingStatus:  domain.FilingMarriedJoint,
			CurrentIncome: decimal.NewFromInt(95000),
			AverageIncome: decimal.NewFromInt(82000),
		},
		Assumptions: domain.EconomicAssumptions{
			ReturnRate:        decimal.NewFromFloat(0.065),
			InflationRate:     decimal.NewFromFloat(0.025),
			RetirementTaxRate: decimal.NewFromFloat(0.15),
		},
		Accounts: []domain.Account{
			{ID: "work-401k", Name: "Employer 401(k)", Type: domain.AccountTraditional401k, CurrentBalance: decimal.NewFromInt(120000), AnnualContribution: decimal.NewFromInt(19500), EmployerMatch: decimal.NewFromInt(4750)},
			{ID: "work-roth", Name: "Employer Roth 401(k)", Type: domain.AccountRoth401k, CurrentBalance: decimal.NewFromInt(15000), AnnualContribution: decimal.NewFromInt(3500)},
			{ID: "rollover-ira", Name: "Rollover IRA", Type: domain.AccountTraditionalIRA, CurrentBalance: decimal.NewFromInt(42000)},
			{ID: "roth-ira", Name: "Roth IRA", Type: domain.AccountRothIRA, CurrentBalance: decimal.NewFromInt(28000), AnnualContribution: decimal.NewFromInt(7000)},
			{ID: "hsa", Name: "Family HSA", Type: domain.AccountHSA, CurrentBalance: decimal.NewFromInt(9000), AnnualContribution: decimal.NewFromInt(8000), HSACoverage: domain.HSACoverageFamily},
			{ID: "brokerage", Name: "Brokerage", Type: domain.AccountTaxable, CurrentBalance: decimal.NewFromInt(35000)},
			{ID: "pension", Name: "State Pension", Description: "Vested at 10 years", Type: domain.AccountPension, MonthlyBenefit: decimal.NewFromInt(850)},
			{ID: "ssa", Name: "Social Security", Type: domain.AccountSocialSecurity},
		},
	}
}

// field is a numeric input held as text until it is coerced.
type field struct {
	Text string
	Set  bool
}

func (f *field) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", n.Line)
	}
	if n.Tag == "!!null" {
		return nil
	}
	f.Text, f.Set = n.Value, true
	return nil
}

func (f *field) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f.Text, f.Set = s, true
	return nil
}

type rawProfile struct {
	CurrentAge    field  `yaml:"current_age" json:"current_age"`
	RetirementAge field  `yaml:"retirement_age" json:"retirement_age"`
	DeathAge      field  `yaml:"death_age" json:"death_age"`
	FilingStatus  string `yaml:"filing_status" json:"filing_status"`
	CurrentIncome field  `yaml:"current_income" json:"current_income"`
	AverageIncome field  `yaml:"average_income" json:"average_income"`
}

type rawAssumptions struct {
	ReturnRate    field `yaml:"return_rate" json:"return_rate"`
	InflationRate field `yaml:"inflation_rate" json:"inflation_rate"`
	TaxRate       field `yaml:"tax_rate" json:"tax_rate"`
}

type rawAccount struct {
	ID                 string `yaml:"id" json:"id"`
	Name               string `yaml:"name" json:"name"`
	Description        string `yaml:"description" json:"description"`
	Type               string `yaml:"type" json:"type"`
	CurrentBalance     field  `yaml:"current_balance" json:"current_balance"`
	AnnualContribution field  `yaml:"annual_contribution" json:"annual_contribution"`
	EmployerMatch      field  `yaml:"employer_match" json:"employer_match"`
	MonthlyBenefit     field  `yaml:"monthly_benefit" json:"monthly_benefit"`
	HSACoverage        string `yaml:"hsa_coverage" json:"hsa_coverage"`
}

type rawPlan struct {
	Profile     rawProfile     `yaml:"profile" json:"profile"`
	Assumptions rawAssumptions `yaml:"assumptions" json:"assumptions"`
	Accounts    []rawAccount   `yaml:"accounts" json:"accounts"`
}

// coercer converts fields and records a warning for every value it zeroes.
type coercer struct {
	warnings []string
}

func (c *coercer) amount(f field, def decimal.Decimal, path string) decimal.Decimal {
	text := strings.TrimSpace(f.Text)
	if !f.Set || text == "" {
		return def
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(text, ",", ""))
	if err != nil {
		c.warnings = append(c.warnings, fmt.Sprintf("%s: %q is not a number, using 0", path, f.Text))
		return decimal.Zero
	}
	return v
}

func (c *coercer) whole(f field, def int, path string) int {
	return int(c.amount(f, decimal.NewFromInt(int64(def)), path).IntPart())
}

func (r rawPlan) toPlan() (domain.Plan, []string) {
	c := &coercer{}

	status := domain.FilingStatus(strings.TrimSpace(r.Profile.FilingStatus))
	if fs, err := domain.ParseFilingStatus(r.Profile.FilingStatus); err == nil {
		status = fs
	}

	plan := domain.Plan{
		Profile: domain.UserProfile{
			CurrentAge:    c.whole(r.Profile.CurrentAge, DefaultCurrentAge, "profile.current_age"),
			RetirementAge: c.whole(r.Profile.RetirementAge, DefaultRetirementAge, "profile.retirement_age"),
			DeathAge:      c.whole(r.Profile.DeathAge, DefaultDeathAge, "profile.death_age"),
			FilingStatus:  status,
			CurrentIncome: c.amount(r.Profile.CurrentIncome, decimal.Zero, "profile.current_income"),
			AverageIncome: c.amount(r.Profile.AverageIncome, decimal.Zero, "profile.average_income"),
		},
		Assumptions: domain.EconomicAssumptions{
			ReturnRate:        c.amount(r.Assumptions.ReturnRate, DefaultReturnRate, "assumptions.return_rate"),
			InflationRate:     c.amount(r.Assumptions.InflationRate, DefaultInflationRate, "assumptions.inflation_rate"),
			RetirementTaxRate: c.amount(r.Assumptions.TaxRate, decimal.Zero, "assumptions.tax_rate"),
		},
		Accounts: make([]domain.Account, 0, len(r.Accounts)),
	}

	for i, ra := range r.Accounts {
		path := fmt.Sprintf("accounts[%d]", i)
		accountType := domain.AccountType(strings.TrimSpace(ra.Type))
		if t, err := domain.ParseAccountType(ra.Type); err == nil {
			accountType = t
		}
		account := domain.Account{
			ID:                 ra.ID,
			Name:               ra.Name,
			Description:        ra.Description,
			Type:               accountType,
			CurrentBalance:     c.amount(ra.CurrentBalance, decimal.Zero, path+".current_balance"),
			AnnualContribution: c.amount(ra.AnnualContribution, decimal.Zero, path+".annual_contribution"),
			EmployerMatch:      c.amount(ra.EmployerMatch, decimal.Zero, path+".employer_match"),
			MonthlyBenefit:     c.amount(ra.MonthlyBenefit, decimal.Zero, path+".monthly_benefit"),
		}
		if accountType == domain.AccountHSA {
			account.HSACoverage = domain.HSACoverage(ra.HSACoverage).Normalize()
		}
		plan.Accounts = append(plan.Accounts, account)
	}

	return plan, c.warnings
}
