package output

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
)

// Limitations lists the simplifications every projection makes.
var Limitations = []string{
	"Employer match is recorded but not added to projected balances",
	"Retirement tax rate is recorded but not deducted from income",
	"Required minimum distributions reduce balances but are not reported as income",
	"Inflation rate is recorded but balances and income are shown in nominal dollars",
	"Contribution limits and tax brackets are held at current-year levels",
	"Accounts without a contribution limit, such as taxable accounts, grow without new contributions",
}

// GenerateAssumptions lists the modeling assumptions with the plan's actual rates.
func GenerateAssumptions(plan *domain.Plan) []string {
	a := plan.Assumptions
	out := []string{
		fmt.Sprintf("Investment return: %s annually, compounded yearly", FormatRate(a.ReturnRate)),
		fmt.Sprintf("Inflation: %s annually", FormatRate(a.InflationRate)),
		fmt.Sprintf("Retirement tax rate: %s", FormatRate(a.RetirementTaxRate)),
		fmt.Sprintf("Contributions are capped at the annual limit and included through age %d", plan.Profile.RetirementAge),
		"Safe withdrawal applies the withdrawal rate to balances at retirement",
	}
	return append(out, Limitations...)
}
