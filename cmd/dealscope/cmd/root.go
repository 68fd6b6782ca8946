// Package cmd implements the dealscope command tree.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fennecworks/dealscope/internal/config"
	"github.com/fennecworks/dealscope/pkg/logging"
)

var (
	cfgFile string
	verbose bool

	cfg config.Config

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dealscope",
	Short: "Moroccan startup deal screener",
	Long: `Dealscope collects startup records from heterogeneous sources, cleans
and deduplicates them into one record per company, scores data quality,
and optionally persists the catalogue to PostgreSQL.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree with signal-aware cancellation.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./dealscope.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// setup loads configuration and installs the process logger before any
// command runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == "json" {
		logger = logging.NewJSON(cmd.ErrOrStderr())
	} else {
		logger = logging.NewConsole()
	}
	logger = logger.Level(level)

	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
	return nil
}
