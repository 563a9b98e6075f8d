package calculation

import (
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SOCIAL SECURITY ASSUMPTIONS:
//
// The benefit is a single-formula approximation, not the tiered bend-point
// calculation. The primary insurance amount is a flat share of monthly
// earnings, capped at an annual maximum, then scaled linearly by claim age.

// SocialSecurityEstimator handles Social Security benefit estimates
type SocialSecurityEstimator struct {
	Rules domain.SocialSecurityRules
}

// NewSocialSecurityEstimator creates a new Social Security estimator
func NewSocialSecurityEstimator(rules domain.RuleSet) *SocialSecurityEstimator {
	return &SocialSecurityEstimator{Rules: rules.SocialSecurity}
}

// PrimaryInsuranceAmount returns the annual benefit at full retirement age.
func (sse *SocialSecurityEstimator) PrimaryInsuranceAmount(avgMonthlyEarnings decimal.Decimal) decimal.Decimal {
	annual := avgMonthlyEarnings.Mul(sse.Rules.EarningsReplacement).Mul(decimal.NewFromInt(12))
	return decimal.Min(annual, sse.Rules.AnnualMaximum)
}

// AdjustmentFactor returns the claim-age multiplier. Exactly full retirement age yields 1.0.
func (sse *SocialSecurityEstimator) AdjustmentFactor(claimAge int) decimal.Decimal {
	fra := sse.Rules.FullRetirementAge
	if claimAge < fra {
		// Early retirement reduction
		yearsFromFloor := decimal.NewFromInt(int64(claimAge - sse.Rules.EarlyFloorAge))
		return sse.Rules.EarlyBaseFactor.Add(yearsFromFloor.Mul(sse.Rules.EarlyStep))
	}
	// Delayed retirement credits
	yearsDelayed := decimal.NewFromInt(int64(claimAge - fra))
	return decimal.NewFromInt(1).Add(yearsDelayed.Mul(sse.Rules.DelayedStep))
}

// AnnualBenefit estimates the annual benefit for average monthly earnings claimed at claimAge
func (sse *SocialSecurityEstimator) AnnualBenefit(avgMonthlyEarnings decimal.Decimal, claimAge int) decimal.Decimal {
	return sse.PrimaryInsuranceAmount(avgMonthlyEarnings).Mul(sse.AdjustmentFactor(claimAge))
}

// LifetimeBenefit totals the annual benefit from claimAge up to deathAge.
func (sse *SocialSecurityEstimator) LifetimeBenefit(avgMonthlyEarnings decimal.Decimal, claimAge, deathAge int) decimal.Decimal {
	years := deathAge - claimAge
	if years <= 0 {
		return decimal.Zero
	}
	return sse.AnnualBenefit(avgMonthlyEarnings, claimAge).Mul(decimal.NewFromInt(int64(years)))
}

// CompareClaimAges evaluates every claim age from the early floor through 70.
func (sse *SocialSecurityEstimator) CompareClaimAges(avgMonthlyEarnings decimal.Decimal, deathAge int) []domain.ClaimAgeOption {
	const latestClaimAge = 70
	var options []domain.ClaimAgeOption
	for age := sse.Rules.EarlyFloorAge; age <= latestClaimAge; age++ {
		options = append(options, domain.ClaimAgeOption{
			ClaimAge:        age,
			AnnualBenefit:   sse.AnnualBenefit(avgMonthlyEarnings, age),
			LifetimeBenefit: sse.LifetimeBenefit(avgMonthlyEarnings, age, deathAge),
		})
	}
	return options
}

// ClaimBreakEvenAge returns the first age at which cumulative benefits from
// claiming at lateAge reach those from claiming at earlyAge, counting benefits
// paid through the end of each age. It returns 0 when the later claim never
// catches up by deathAge or the ages are not ordered.
func (sse *SocialSecurityEstimator) ClaimBreakEvenAge(earlyAge, lateAge int, avgMonthlyEarnings decimal.Decimal, deathAge int) int {
	if lateAge <= earlyAge {
		return 0
	}
	early := sse.AnnualBenefit(avgMonthlyEarnings, earlyAge)
	late := sse.AnnualBenefit(avgMonthlyEarnings, lateAge)
	if !late.GreaterThan(early) {
		return 0
	}
	for age := lateAge; age <= deathAge; age++ {
		earlyTotal := early.Mul(decimal.NewFromInt(int64(age - earlyAge + 1)))
		lateTotal := late.Mul(decimal.NewFromInt(int64(age - lateAge + 1)))
		if lateTotal.GreaterThanOrEqual(earlyTotal) {
			return age
		}
	}
	return 0
}
