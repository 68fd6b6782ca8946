package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fennecworks/dealscope/internal/sched"
	"github.com/fennecworks/dealscope/pkg/logging"
)

var serveImmediate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run collection cycles on a schedule",
	Long: `Serve runs collection cycles on the configured cron schedule until
interrupted. Each cycle collects, cleans, scores, and persists.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveImmediate, "immediate", false,
		"run one cycle at startup before waiting for the schedule")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("serve requires database_url (DEALSCOPE_DATABASE_URL)")
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cycle := func(ctx context.Context) error {
		result, err := runCycle(ctx)
		if err != nil {
			return err
		}
		return persist(ctx, result)
	}

	scheduler := sched.New(cfg.Schedule, cycle)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	if serveImmediate {
		if err := scheduler.RunNow(ctx); err != nil {
			logger.Error().Err(err).Msg("Startup run failed")
		}
	}

	<-ctx.Done()
	logger.Info().Msg("Shutting down")
	return nil
}
