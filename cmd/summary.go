package cmd

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/output"

	"github.com/spf13/cobra"
)

var (
	flagFormat    string
	flagOutputDir string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <plan.yaml>",
	Short: "Project a plan to retirement and report income",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport("console"),
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <plan.yaml>",
	Short: "Export the year-by-year balance series through the death age",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport("timeline-csv"),
}

var validateCmd = &cobra.Command{
	Use:   "validate <plan.yaml>",
	Short: "Check a plan file without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	for _, c := range []*cobra.Command{summaryCmd, timelineCmd} {
		c.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format: console, json, csv, timeline-csv, html")
		c.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Write a timestamped report file into this directory instead of stdout")
	}
	rootCmd.AddCommand(summaryCmd, timelineCmd, validateCmd)
}

func runReport(defaultFormat string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		format := flagFormat
		if format == "" {
			format = defaultFormat
		}
		if output.GetFormatterByName(format) == nil {
			return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
		}

		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		result, err := engine.RunPlan(cmd.Context(), *plan)
		if err != nil {
			return err
		}

		if flagOutputDir != "" {
			path, err := output.WriteReportFile(result, format, flagOutputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Report written to %s\n", path)
			return nil
		}
		return output.GenerateReport(result, format, cmd.OutOrStdout())
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(cmd, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: valid (%d accounts, age %d to %d, retiring at %d)\n",
		args[0], len(plan.Accounts), plan.Profile.CurrentAge, plan.Profile.DeathAge, plan.Profile.RetirementAge)
	return nil
}
