package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/herbgarden/herbarium/api"
	"github.com/herbgarden/herbarium/db"
	"github.com/herbgarden/herbarium/internal/ai"
	"github.com/herbgarden/herbarium/internal/bookmark"
	"github.com/herbgarden/herbarium/internal/config"
	"github.com/herbgarden/herbarium/internal/database"
	"github.com/herbgarden/herbarium/internal/log"
	"github.com/herbgarden/herbarium/internal/plant"
	"github.com/herbgarden/herbarium/internal/user"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the herbarium HTTP API server.

Pending database migrations are applied before the server begins
listening. The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (overrides HERBARIUM_LISTEN_ADDR and config file)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(log.Config{})
	logger.Info("starting herbarium", "version", AppVersion, "model", cfg.ModelName)

	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.PostgresConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	userStore, err := user.NewStore(pool, logger)
	if err != nil {
		return fmt.Errorf("creating user store: %w", err)
	}
	plantStore, err := plant.NewStore(pool, logger)
	if err != nil {
		return fmt.Errorf("creating plant store: %w", err)
	}
	bookmarkStore, err := bookmark.NewStore(pool, logger)
	if err != nil {
		return fmt.Errorf("creating bookmark store: %w", err)
	}

	generator, err := ai.NewGemini(ctx, config.GeminiAPIKey(), cfg.ModelName)
	if err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}
	aiService, err := ai.NewService(generator, logger)
	if err != nil {
		return fmt.Errorf("creating AI service: %w", err)
	}

	server, err := api.NewServer(api.ServerConfig{
		Pool:        pool,
		Users:       userStore,
		Plants:      plantStore,
		Bookmarks:   bookmarkStore,
		AI:          aiService,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	return server.Run(ctx, addr)
}
