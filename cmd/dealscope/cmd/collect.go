package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collectStore bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one collection cycle",
	Long: `Collect gathers records from every configured source, cleans the
batch, scores investability, and optionally persists the catalogue.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().BoolVar(&collectStore, "store", false,
		"persist the cleaned catalogue to PostgreSQL")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	result, err := runCycle(ctx)
	if err != nil {
		return err
	}

	if collectStore {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--store requires database_url (DEALSCOPE_DATABASE_URL)")
		}
		if err := persist(ctx, result); err != nil {
			return err
		}
	}

	return emit(cmd.OutOrStdout(), result, "summary")
}
