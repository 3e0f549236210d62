// Package cmd implements the herbarium command-line interface.
//
// Subcommands:
//   - serve: run the HTTP API server (default when no subcommand is given)
//   - migrate: apply pending database migrations and exit
//   - version: print build and configuration information
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "herbarium",
	Short: "Herbarium - virtual herbal garden backend",
	Long: `Herbarium is the backend API for a virtual herbal garden.

It serves a plant catalog with full-text search, per-user bookmarks,
and AI-assisted chat and plant identification backed by Gemini.

Running herbarium without a subcommand starts the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	// Best-effort .env loading for local development; a missing file is
	// not an error. Real environment variables keep precedence because
	// godotenv never overwrites existing values.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
