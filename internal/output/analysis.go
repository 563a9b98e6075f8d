package output

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ReadinessStatus grades how well projected income replaces current income.
type ReadinessStatus string

const (
	ReadinessExcellent ReadinessStatus = "excellent"
	ReadinessGood      ReadinessStatus = "good"
	ReadinessFair      ReadinessStatus = "fair"
	ReadinessNeedsWork ReadinessStatus = "needs-work"
)

var (
	excellentRatio   = decimal.NewFromFloat(0.8)
	goodRatio        = decimal.NewFromFloat(0.6)
	fairRatio        = decimal.NewFromFloat(0.4)
	adequateRatio    = decimal.NewFromFloat(0.7)
	millionaireLevel = decimal.NewFromInt(1_000_000)
)

// Readiness is the retirement readiness assessment of a plan result.
type Readiness struct {
	ReplacementRatio  decimal.Decimal `json:"replacement_ratio"`
	Status            ReadinessStatus `json:"status"`
	Message           string          `json:"message"`
	YearsToRetirement int             `json:"years_to_retirement"`
	YearsInRetirement int             `json:"years_in_retirement"`
	Insights          []string        `json:"insights"`
}

// ReplacementPercent returns the ratio as a percentage.
func (r Readiness) ReplacementPercent() decimal.Decimal {
	return r.ReplacementRatio.Mul(decimalHundred)
}

// Label returns the status in display form, e.g. "NEEDS WORK".
func (s ReadinessStatus) Label() string {
	switch s {
	case ReadinessExcellent:
		return "EXCELLENT"
	case ReadinessGood:
		return "GOOD"
	case ReadinessFair:
		return "FAIR"
	default:
		return "NEEDS WORK"
	}
}

// AssessReadiness grades total annual retirement income against current income.
// With no current income the ratio is zero and the status is needs-work.
func AssessReadiness(result *domain.PlanResult) Readiness {
	profile := result.Plan.Profile
	ratio := decimal.Zero
	if profile.CurrentIncome.IsPositive() {
		ratio = result.Summary.TotalAnnualIncome.Div(profile.CurrentIncome)
	}

	r := Readiness{
		ReplacementRatio:  ratio,
		YearsToRetirement: profile.YearsToRetirement(),
		YearsInRetirement: profile.YearsInRetirement(),
	}
	switch {
	case ratio.GreaterThanOrEqual(excellentRatio):
		r.Status = ReadinessExcellent
		r.Message = "Excellent! You're on track for a comfortable retirement."
	case ratio.GreaterThanOrEqual(goodRatio):
		r.Status = ReadinessGood
		r.Message = "Good progress! Consider increasing contributions if possible."
	case ratio.GreaterThanOrEqual(fairRatio):
		r.Status = ReadinessFair
		r.Message = "Fair start. You may want to increase savings significantly."
	default:
		r.Status = ReadinessNeedsWork
		r.Message = "Consider significantly increasing your retirement savings."
	}

	r.Insights = []string{
		fmt.Sprintf("You have %d years until retirement", r.YearsToRetirement),
		fmt.Sprintf("Your retirement phase will last approximately %d years", r.YearsInRetirement),
		fmt.Sprintf("You'll replace %s%% of your current income", r.ReplacementPercent().StringFixed(1)),
	}
	if result.Summary.TotalBalance.GreaterThan(millionaireLevel) {
		r.Insights = append(r.Insights, "You're projected to be a retirement millionaire")
	}
	if ratio.LessThan(adequateRatio) {
		r.Insights = append(r.Insights, "Consider increasing contributions or delaying retirement to improve your outcome")
	}
	return r
}

// AccountTypeSummary totals the current holdings of one account type.
type AccountTypeSummary struct {
	Type               domain.AccountType `json:"type"`
	Label              string             `json:"label"`
	Count              int                `json:"count"`
	CurrentBalance     decimal.Decimal    `json:"current_balance"`
	AnnualContribution decimal.Decimal    `json:"annual_contribution"`
}

// SummarizeAccountTypes groups accounts by type in canonical type order.
// Types with no accounts are omitted; unknown types are listed last in input order.
func SummarizeAccountTypes(accounts []domain.Account) []AccountTypeSummary {
	byType := make(map[domain.AccountType]*AccountTypeSummary)
	var unknown []domain.AccountType
	for _, a := range accounts {
		s, ok := byType[a.Type]
		if !ok {
			s = &AccountTypeSummary{Type: a.Type, Label: a.Type.Label()}
			byType[a.Type] = s
			if !a.Type.Valid() {
				unknown = append(unknown, a.Type)
			}
		}
		s.Count++
		s.CurrentBalance = s.CurrentBalance.Add(a.CurrentBalance)
		s.AnnualContribution = s.AnnualContribution.Add(a.AnnualContribution)
	}

	order := append(append([]domain.AccountType(nil), domain.AccountTypes...), unknown...)
	out := make([]AccountTypeSummary, 0, len(byType))
	for _, t := range order {
		if s, ok := byType[t]; ok {
			out = append(out, *s)
		}
	}
	return out
}
