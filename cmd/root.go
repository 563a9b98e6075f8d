// Package cmd implements the nestegg CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/domain"

	"github.com/spf13/cobra"
)

var (
	flagRules   string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "nestegg",
	Short:         "Retirement savings projection calculator",
	Long:          "Project retirement account balances, income at retirement, taxes, contribution limits and Social Security claiming options.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRules, "rules", "r", "", "TOML rule table overrides (tax brackets, limits, RMD, Social Security)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log calculation details to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

// newLogger maps --verbose and --quiet to a stderr logger.
func newLogger(w io.Writer) calculation.Logger {
	switch {
	case flagVerbose:
		return calculation.NewStdLogger(w, calculation.LevelDebug)
	case flagQuiet:
		return calculation.NopLogger{}
	default:
		return calculation.NewStdLogger(w, calculation.LevelWarn)
	}
}

// loadRules returns the rule set named by --rules, or the defaults.
func loadRules() (domain.RuleSet, error) {
	return config.LoadRules(flagRules)
}

// newEngine builds an engine over the --rules tables, logging to the command's stderr.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	rules, err := loadRules()
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(newLogger(cmd.ErrOrStderr()))
	return engine, nil
}

// loadPlan reads and validates a plan file, logging coercion warnings.
func loadPlan(cmd *cobra.Command, path string) (*domain.Plan, error) {
	parser := config.NewInputParser()
	parser.Logger = newLogger(cmd.ErrOrStderr())
	return parser.LoadFromFile(path)
}
