package calculation

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ContributionLimitResolver resolves the annual contribution cap for an account type
type ContributionLimitResolver struct {
	Limits domain.ContributionLimits
}

// NewContributionLimitResolver creates a resolver over the rule set's limit tables
func NewContributionLimitResolver(rules domain.RuleSet) *ContributionLimitResolver {
	return &ContributionLimitResolver{Limits: rules.ContributionLimits}
}

// tableFor returns the limit table for a type. ok is false for uncapped types.
func (r *ContributionLimitResolver) tableFor(t domain.AccountType, coverage domain.HSACoverage) (domain.ContributionLimit, bool) {
	switch t {
	case domain.AccountTraditional401k:
		return r.Limits.Traditional401k, true
	case domain.AccountRoth401k:
		return r.Limits.Roth401k, true
	case domain.AccountTraditionalIRA:
		return r.Limits.TraditionalIRA, true
	case domain.AccountRothIRA:
		return r.Limits.RothIRA, true
	case domain.AccountHSA:
		if coverage.Normalize() == domain.HSACoverageFamily {
			return r.Limits.HSAFamily, true
		}
		return r.Limits.HSASingle, true
	case domain.AccountPension, domain.AccountSocialSecurity, domain.AccountTaxable:
		return domain.ContributionLimit{}, false
	default:
		return domain.ContributionLimit{}, false
	}
}

// Limit returns the annual cap for the type at the given age. Catch-up applies
// from CatchUpAge inclusive. Uncapped and unknown types return 0.
func (r *ContributionLimitResolver) Limit(t domain.AccountType, age int, coverage domain.HSACoverage) decimal.Decimal {
	table, ok := r.tableFor(t, coverage)
	if !ok {
		return decimal.Zero
	}
	if age >= table.CatchUpAge {
		return table.Base.Add(table.CatchUp)
	}
	return table.Base
}

// Describe returns a short label such as "(Limit: $23,000)", empty for uncapped types.
func (r *ContributionLimitResolver) Describe(t domain.AccountType, age int, coverage domain.HSACoverage) string {
	if _, ok := r.tableFor(t, coverage); !ok {
		return ""
	}
	limit := r.Limit(t, age, coverage)
	return fmt.Sprintf("(Limit: $%s)", humanize.Comma(limit.Round(0).IntPart()))
}
