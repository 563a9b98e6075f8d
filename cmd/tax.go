package cmd

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/shopspring/decimal"

	"github.com/spf13/cobra"
)

var (
	flagFilingStatus    string
	flagLimitAge        int
	flagLimitCoverage   string
	flagMonthlyEarnings string
	flagDeathAge        int
	flagEarlyClaim      int
	flagLateClaim       int
)

var hundred = decimal.NewFromInt(100)

var taxCmd = &cobra.Command{
	Use:   "tax <income>",
	Short: "Calculate federal income tax on taxable income",
	Args:  cobra.ExactArgs(1),
	RunE:  runTax,
}

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show annual contribution limits at an age",
	RunE:  runLimits,
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Compare Social Security claiming ages",
	RunE:  runClaim,
}

func init() {
	taxCmd.Flags().StringVarP(&flagFilingStatus, "filing-status", "s", "single", "Filing status: single, married_joint, married_separate")

	limitsCmd.Flags().IntVar(&flagLimitAge, "age", 40, "Age for catch-up eligibility")
	limitsCmd.Flags().StringVar(&flagLimitCoverage, "coverage", "single", "HSA coverage tier: single or family")

	claimCmd.Flags().StringVar(&flagMonthlyEarnings, "monthly-earnings", "", "Average monthly earnings (required)")
	claimCmd.Flags().IntVar(&flagDeathAge, "death-age", 85, "Life expectancy")
	claimCmd.Flags().IntVar(&flagEarlyClaim, "early", 62, "Earlier claim age for the break-even comparison")
	claimCmd.Flags().IntVar(&flagLateClaim, "late", 70, "Later claim age for the break-even comparison")
	_ = claimCmd.MarkFlagRequired("monthly-earnings")

	rootCmd.AddCommand(taxCmd, limitsCmd, claimCmd)
}

func runTax(cmd *cobra.Command, args []string) error {
	income, err := parseAmount("income", args[0])
	if err != nil {
		return err
	}
	status, err := domain.ParseFilingStatus(flagFilingStatus)
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	calc := engine.TaxCalc
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Federal tax (%d, %s)\n\n", engine.Rules.TaxYear, status)
	fmt.Fprintf(out, "  %-16s %s\n", "Income:", output.FormatCurrency(income))
	fmt.Fprintf(out, "  %-16s %s\n", "Tax:", output.FormatCurrency(calc.CalculateFederalTax(income, status)))
	fmt.Fprintf(out, "  %-16s %s\n", "Marginal rate:", output.FormatRate(calc.MarginalRate(income, status)))
	fmt.Fprintf(out, "  %-16s %s\n", "Effective rate:", output.FormatPercentage(calc.EffectiveRate(income, status).Mul(hundred)))
	return nil
}

func runLimits(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	coverage := domain.HSACoverage(flagLimitCoverage).Normalize()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Contribution limits at age %d (%d rules)\n\n", flagLimitAge, engine.Rules.TaxYear)
	for _, t := range domain.AccountTypes {
		limit := engine.Limits.Limit(t, flagLimitAge, coverage)
		value := "no limit"
		if !limit.IsZero() {
			value = output.FormatWholeCurrency(limit)
		}
		fmt.Fprintf(out, "  %-20s %12s\n", t.Label(), value)
	}
	return nil
}

func runClaim(cmd *cobra.Command, _ []string) error {
	earnings, err := parseAmount("monthly-earnings", flagMonthlyEarnings)
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Social Security claiming ages (monthly earnings %s, living to %d)\n\n", output.FormatCurrency(earnings), flagDeathAge)
	fmt.Fprintf(out, "  %5s  %14s  %16s\n", "Age", "Annual", "Lifetime")
	for _, o := range engine.CompareClaimAges(earnings, flagDeathAge) {
		fmt.Fprintf(out, "  %5d  %14s  %16s\n", o.ClaimAge, output.FormatCurrency(o.AnnualBenefit), output.FormatCurrency(o.LifetimeBenefit))
	}

	fmt.Fprintln(out)
	if age := engine.SocialSecurity.ClaimBreakEvenAge(flagEarlyClaim, flagLateClaim, earnings, flagDeathAge); age > 0 {
		fmt.Fprintf(out, "  Claiming at %d catches up with claiming at %d by age %d\n", flagLateClaim, flagEarlyClaim, age)
	} else {
		fmt.Fprintf(out, "  Claiming at %d does not catch up with claiming at %d by age %d\n", flagLateClaim, flagEarlyClaim, flagDeathAge)
	}
	return nil
}
