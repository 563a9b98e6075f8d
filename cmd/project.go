package cmd

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/shopspring/decimal"

	"github.com/spf13/cobra"
)

var (
	flagAccountType  string
	flagBalance      string
	flagContribution string
	flagAge          int
	flagYears        int
	flagReturn       string
	flagCoverage     string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a single account year by year",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&flagAccountType, "type", "t", "traditional_401k", "Account type")
	projectCmd.Flags().StringVar(&flagBalance, "balance", "0", "Current balance")
	projectCmd.Flags().StringVar(&flagContribution, "contribution", "0", "Annual contribution (capped at the limit)")
	projectCmd.Flags().IntVar(&flagAge, "age", 30, "Current age")
	projectCmd.Flags().IntVar(&flagYears, "years", 35, "Years to project")
	projectCmd.Flags().StringVar(&flagReturn, "return", "0.07", "Annual return rate")
	projectCmd.Flags().StringVar(&flagCoverage, "coverage", "single", "HSA coverage tier: single or family")
	rootCmd.AddCommand(projectCmd)
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, value)
	}
	return d, nil
}

func runProject(cmd *cobra.Command, _ []string) error {
	accountType, err := domain.ParseAccountType(flagAccountType)
	if err != nil {
		return err
	}
	if flagYears < 0 {
		return fmt.Errorf("--years must not be negative")
	}
	balance, err := parseAmount("balance", flagBalance)
	if err != nil {
		return err
	}
	contribution, err := parseAmount("contribution", flagContribution)
	if err != nil {
		return err
	}
	rate, err := parseAmount("return", flagReturn)
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	account := domain.Account{
		Type:               accountType,
		CurrentBalance:     balance,
		AnnualContribution: contribution,
		HSACoverage:        domain.HSACoverage(flagCoverage).Normalize(),
	}
	projections := engine.ProjectAccount(account, flagAge, flagYears, domain.EconomicAssumptions{ReturnRate: rate})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %s %s\n\n", accountType.Label(), engine.Limits.Describe(accountType, flagAge, account.HSACoverage))
	fmt.Fprintf(out, "  %4s  %5s  %14s  %14s  %16s\n", "Year", "Age", "Contribution", "RMD", "Balance")
	for _, p := range projections {
		fmt.Fprintf(out, "  %4d  %5d  %14s  %14s  %16s\n",
			p.Year, p.Age,
			output.FormatCurrency(p.Contribution),
			output.FormatCurrency(p.RMD),
			output.FormatCurrency(p.Balance))
	}
	return nil
}
