package cmd

import (
	"fmt"

	"github.com/rpgo/nestegg/internal/config"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule tables as TOML",
	Long:  "Print the tax brackets, contribution limits, RMD divisors and Social Security parameters in effect, after applying --rules. The output is a valid --rules file.",
	RunE:  runRules,
}

var exampleCmd = &cobra.Command{
	Use:   "example [path]",
	Short: "Write an example plan covering every account type",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	rootCmd.AddCommand(rulesCmd, exampleCmd)
}

func runRules(cmd *cobra.Command, _ []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}
	return config.EncodeRules(cmd.OutOrStdout(), rules)
}

func runExample(cmd *cobra.Command, args []string) error {
	path := "example_plan.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	parser := config.NewInputParser()
	if err := parser.SavePlan(parser.CreateExamplePlan(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Example plan written to %s\n", path)
	return nil
}
