package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/nestegg/internal/domain"
)

// CSVSummarizer writes one row per account followed by a totals row.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Account", "Type", "BalanceAtRetirement", "AnnualIncome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	summary := result.Summary
	for _, a := range summary.Accounts {
		row := []string{
			a.Name,
			string(a.Type),
			a.BalanceAtRetirement.StringFixed(2),
			a.AnnualIncome.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	totals := [][]string{
		{"Total", "", summary.TotalBalance.StringFixed(2), summary.AnnualIncomeStreams.StringFixed(2)},
		{"SafeWithdrawal", "", "", summary.SafeWithdrawalAmount.StringFixed(2)},
		{"TotalAnnualIncome", "", "", summary.TotalAnnualIncome.StringFixed(2)},
		{"MonthlyIncome", "", "", summary.MonthlyIncome.StringFixed(2)},
	}
	if err := w.WriteAll(totals); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
