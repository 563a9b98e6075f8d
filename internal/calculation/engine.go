package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates all retirement calculations. It holds only
// rule tables and calculators built from them, so one engine may serve
// concurrent callers.
type CalculationEngine struct {
	Rules          domain.RuleSet
	TaxCalc        *FederalTaxCalculator
	Limits         *ContributionLimitResolver
	RMDCalc        *RMDCalculator
	SocialSecurity *SocialSecurityEstimator
	Projector      *AccountProjector
	Aggregator     *IncomeAggregator
	Logger         Logger
}

// NewCalculationEngine creates a new calculation engine with the default rule set
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultRuleSet())
}

// NewCalculationEngineWithRules creates a new calculation engine over the given rule tables
func NewCalculationEngineWithRules(rules domain.RuleSet) *CalculationEngine {
	projector := NewAccountProjector(rules)
	aggregator := NewIncomeAggregator(rules)
	aggregator.Projector = projector
	return &CalculationEngine{
		Rules:          rules,
		TaxCalc:        NewFederalTaxCalculator(rules),
		Limits:         projector.Limits,
		RMDCalc:        projector.RMD,
		SocialSecurity: aggregator.SocialSecurity,
		Projector:      projector,
		Aggregator:     aggregator,
		Logger:         NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Aggregator.Logger = l
}

// RunPlan calculates the retirement summary and full-lifespan timeline for a plan.
// It only fails when ctx is done.
func (ce *CalculationEngine) RunPlan(ctx context.Context, plan domain.Plan) (*domain.PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run plan: %w", err)
	}

	ce.Logger.Debugf("running plan: age %d to %d, retire at %d, %d accounts",
		plan.Profile.CurrentAge, plan.Profile.DeathAge, plan.Profile.RetirementAge, len(plan.Accounts))

	summary := ce.Summary(plan)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run plan: %w", err)
	}
	timeline := ce.Timeline(plan)

	ce.Logger.Infof("plan complete: balance at retirement %s, monthly income %s",
		summary.TotalBalance.StringFixed(2), summary.MonthlyIncome.StringFixed(2))

	return &domain.PlanResult{
		Plan:        plan,
		Summary:     summary,
		Timeline:    timeline,
		TaxYear:     ce.Rules.TaxYear,
		GeneratedAt: nowFunc(),
	}, nil
}

// RunPlans runs several plans in order, stopping at the first error.
func (ce *CalculationEngine) RunPlans(ctx context.Context, plans []domain.Plan) ([]*domain.PlanResult, error) {
	results := make([]*domain.PlanResult, 0, len(plans))
	for i, plan := range plans {
		result, err := ce.RunPlan(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("plan %d: %w", i+1, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Summary aggregates the plan's accounts up to the retirement age.
func (ce *CalculationEngine) Summary(plan domain.Plan) domain.RetirementIncomeSummary {
	return ce.Aggregator.Aggregate(plan.Accounts, plan.Profile, plan.Assumptions)
}

// Timeline projects the plan's balance accounts over the full lifespan.
func (ce *CalculationEngine) Timeline(plan domain.Plan) domain.Timeline {
	return BuildTimeline(ce.Projector, plan)
}

// ProjectAccount projects one account for numYears from currentAge.
func (ce *CalculationEngine) ProjectAccount(account domain.Account, currentAge, numYears int, assumptions domain.EconomicAssumptions) []domain.YearProjection {
	return ce.Projector.Project(account, currentAge, numYears, assumptions)
}

// FederalTax calculates federal income tax under the engine's rules.
func (ce *CalculationEngine) FederalTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return ce.TaxCalc.CalculateFederalTax(income, status)
}

// CompareClaimAges lists Social Security outcomes for claim ages 62 through 70.
func (ce *CalculationEngine) CompareClaimAges(avgMonthlyEarnings decimal.Decimal, deathAge int) []domain.ClaimAgeOption {
	return ce.SocialSecurity.CompareClaimAges(avgMonthlyEarnings, deathAge)
}
