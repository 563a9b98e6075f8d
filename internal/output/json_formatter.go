package output

import (
	"github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
)

// JSONFormatter serializes the plan result, plus its readiness assessment, as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*domain.PlanResult
	Readiness    Readiness            `json:"readiness"`
	AccountTypes []AccountTypeSummary `json:"account_types"`
	Assumptions  []string             `json:"assumptions"`
}

func (j JSONFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	report := jsonReport{
		PlanResult:   result,
		Readiness:    AssessReadiness(result),
		AccountTypes: SummarizeAccountTypes(result.Plan.Accounts),
		Assumptions:  GenerateAssumptions(&result.Plan),
	}
	return json.MarshalIndent(report, "", "  ")
}
