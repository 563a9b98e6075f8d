package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/nestegg/internal/domain"
)

// Flexoki Dark palette
var (
	colorText      = lipgloss.Color("#CECDC3")
	colorTextMuted = lipgloss.Color("#6F6E69")
	colorAccent    = lipgloss.Color("#3AA99F")
	colorGreen     = lipgloss.Color("#879A39")
	colorOrange    = lipgloss.Color("#DA702C")
	colorYellow    = lipgloss.Color("#D0A215")
	colorRed       = lipgloss.Color("#D14D41")
	colorBorder    = lipgloss.Color("#282726")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(55).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorBorder)
)

var statusColors = map[ReadinessStatus]lipgloss.Color{
	ReadinessExcellent: colorGreen,
	ReadinessGood:      colorOrange,
	ReadinessFair:      colorYellow,
	ReadinessNeedsWork: colorRed,
}

// ConsoleFormatter renders a styled terminal summary of a plan result.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	var b strings.Builder
	profile := result.Plan.Profile
	summary := result.Summary
	readiness := AssessReadiness(result)

	b.WriteString(titleStyle.Render("RETIREMENT PROJECTION"))
	b.WriteString("\n\n")

	writeKV(&b, "Current age", fmt.Sprintf("%d", profile.CurrentAge))
	writeKV(&b, "Retirement age", fmt.Sprintf("%d (%d years away)", profile.RetirementAge, readiness.YearsToRetirement))
	writeKV(&b, "Life expectancy", fmt.Sprintf("%d (%d years retired)", profile.DeathAge, readiness.YearsInRetirement))
	writeKV(&b, "Current income", FormatCurrency(profile.CurrentIncome))
	writeKV(&b, "Rules", fmt.Sprintf("%d tax year", result.TaxYear))
	b.WriteString("\n")

	b.WriteString("  " + headerStyle.Render("Income at Retirement") + "\n")
	writeKV(&b, "Balance at retirement", FormatCurrency(summary.TotalBalance))
	writeKV(&b, "Safe withdrawal", FormatCurrency(summary.SafeWithdrawalAmount))
	writeKV(&b, "Pensions & Social Security", FormatCurrency(summary.AnnualIncomeStreams))
	writeKV(&b, "Total annual income", FormatCurrency(summary.TotalAnnualIncome))
	writeKV(&b, "Monthly income", FormatCurrency(summary.MonthlyIncome))
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(statusColors[readiness.Status])
	b.WriteString("  " + headerStyle.Render("Retirement Readiness: ") + statusStyle.Render(readiness.Status.Label()) + "\n")
	b.WriteString("  " + valueStyle.Render(readiness.Message) + "\n")
	writeKV(&b, "Income replacement", FormatPercentage(readiness.ReplacementPercent()))
	b.WriteString("\n")

	if len(summary.Accounts) > 0 {
		rows := make([][]string, 0, len(summary.Accounts))
		for _, a := range summary.Accounts {
			rows = append(rows, []string{a.Name, a.Type.Label(), FormatCurrency(a.BalanceAtRetirement), FormatCurrency(a.AnnualIncome)})
		}
		b.WriteString(renderTable("Accounts", []string{"Account", "Type", "At Retirement", "Annual Income"}, rows))
		b.WriteString("\n")
	}

	if len(result.Timeline.Points) > 0 {
		writeKV(&b, "Peak balance", FormatCurrency(result.Timeline.Peak))
		writeKV(&b, fmt.Sprintf("Balance at age %d", profile.DeathAge), FormatCurrency(result.Timeline.Final))
		b.WriteString("\n")
	}

	b.WriteString("  " + headerStyle.Render("Key Insights") + "\n")
	for _, insight := range readiness.Insights {
		b.WriteString("  - " + valueStyle.Render(insight) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + headerStyle.Render("Assumptions") + "\n")
	for _, a := range GenerateAssumptions(&result.Plan) {
		b.WriteString("  " + mutedStyle.Render("- "+a) + "\n")
	}

	return []byte(b.String()), nil
}

func writeKV(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

// renderTable draws a rounded box table; every column but the first is right-aligned.
func renderTable(title string, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	border := func(left, mid, right string) string {
		var s strings.Builder
		s.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			s.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < len(widths)-1 {
				s.WriteString(dimStyle.Render(mid))
			}
		}
		s.WriteString(dimStyle.Render(right))
		s.WriteString("\n")
		return s.String()
	}
	line := func(cells []string, style lipgloss.Style) string {
		var s strings.Builder
		s.WriteString(dimStyle.Render("│"))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == 0 {
				s.WriteString(style.Render(fmt.Sprintf(" %-*s ", w, cell)))
			} else {
				s.WriteString(style.Render(fmt.Sprintf(" %*s ", w, cell)))
			}
			if i < len(widths)-1 {
				s.WriteString(dimStyle.Render("│"))
			}
		}
		s.WriteString(dimStyle.Render("│"))
		s.WriteString("\n")
		return s.String()
	}

	var b strings.Builder
	if title != "" {
		b.WriteString("  " + headerStyle.Render(title) + "\n")
	}
	b.WriteString(border("╭", "┬", "╮"))
	b.WriteString(line(headers, headerStyle))
	b.WriteString(border("├", "┼", "┤"))
	for _, row := range rows {
		b.WriteString(line(row, valueStyle))
	}
	b.WriteString(border("╰", "┴", "╯"))
	return b.String()
}
