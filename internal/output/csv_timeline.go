package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/nestegg/internal/domain"
)

// CSVTimelineExporter writes the full-lifespan balance series, one row per year,
// with a column per balance account type present in the plan.
type CSVTimelineExporter struct{}

func (c CSVTimelineExporter) Name() string { return "timeline-csv" }

func (c CSVTimelineExporter) Format(result *domain.PlanResult) ([]byte, error) {
	types := timelineTypes(result.Plan.Accounts)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "CalendarYear", "Age", "Retired", "TotalBalance"}
	for _, t := range types {
		header = append(header, string(t))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range result.Timeline.Points {
		row := []string{
			strconv.Itoa(p.Year),
			strconv.Itoa(result.CalendarYear(p.Year)),
			strconv.Itoa(p.Age),
			strconv.FormatBool(p.IsRetired),
			p.TotalBalance.StringFixed(2),
		}
		for _, t := range types {
			row = append(row, p.BalanceFor(t).StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// timelineTypes returns the balance-carrying types held by the plan in canonical order.
func timelineTypes(accounts []domain.Account) []domain.AccountType {
	var types []domain.AccountType
	for _, s := range SummarizeAccountTypes(accounts) {
		if !s.Type.IsIncomeStream() {
			types = append(types, s.Type)
		}
	}
	return types
}
