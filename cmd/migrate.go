package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herbgarden/herbarium/db"
	"github.com/herbgarden/herbarium/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Applies all pending database migrations and exits.

The serve command runs migrations automatically on startup; this
subcommand exists for deploy pipelines that migrate separately.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	fmt.Println("Migrations applied.")
	return nil
}
