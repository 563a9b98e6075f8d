package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/server"

	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a JSON HTTP API",
	Long:  "Serve the calculator over HTTP. Settings come from RPGO_ADDR, RPGO_RULES_FILE, RPGO_MAX_BODY_BYTES, RPGO_LOG_LEVEL, RPGO_READ_TIMEOUT and RPGO_WRITE_TIMEOUT; --addr and --rules take precedence.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides RPGO_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if flagServeAddr != "" {
		cfg.Addr = flagServeAddr
	}
	if flagRules != "" {
		cfg.RulesFile = flagRules
	}

	level, err := calculation.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = calculation.LevelDebug
	}
	logger := calculation.NewStdLogger(cmd.ErrOrStderr(), level)

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.New(engine, cfg, logger).ListenAndServe(ctx)
}
