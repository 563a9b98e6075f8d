package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a balance chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"whole":   FormatWholeCurrency,
	"compact": FormatCompactCurrency,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"json": func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		return template.JS(b), err
	},
}).Parse(htmlTemplateSource))

type chartSeries struct {
	Labels   []int     `json:"labels"`
	Balances []float64 `json:"balances"`
	Retired  []bool    `json:"retired"`
}

func (h HTMLFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	var series chartSeries
	for _, p := range result.Timeline.Points {
		series.Labels = append(series.Labels, p.Age)
		series.Balances = append(series.Balances, p.TotalBalance.Round(2).InexactFloat64())
		series.Retired = append(series.Retired, p.IsRetired)
	}

	data := struct {
		*domain.PlanResult
		Readiness    Readiness
		AccountTypes []AccountTypeSummary
		Assumptions  []string
		Chart        chartSeries
	}{
		PlanResult:   result,
		Readiness:    AssessReadiness(result),
		AccountTypes: SummarizeAccountTypes(result.Plan.Accounts),
		Assumptions:  GenerateAssumptions(&result.Plan),
		Chart:        series,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
