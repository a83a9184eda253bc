// Package main is the entry point for the Acme Ice Cream flavors API.
//
// MAIN PACKAGE IN GO:
// The main package is kept minimal. Its job is to:
// 1. Read configuration (environment first, then command-line flags)
// 2. Create the logger
// 3. Hand off to internal/server
//
// COMMANDS:
//
//	acme-ice-cream          same as "serve"
//	acme-ice-cream serve    reset and seed the table, then listen
//	acme-ice-cream seed     reset and seed the table, then exit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sakif/acme-ice-cream/internal/config"
	"github.com/sakif/acme-ice-cream/internal/repository/sqldb"
	"github.com/sakif/acme-ice-cream/internal/server"
)

func main() {
	// === 1. ENVIRONMENT ===
	// Env vars become the flag defaults, so an explicit flag always wins.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "acme-ice-cream",
		Short:         "Acme Ice Cream flavors API",
		Long:          "Serves a small CRUD API over the flavors table plus a landing page.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// === 2. FLAGS ===
	// Persistent so that both subcommands accept them.
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.Port, "port", cfg.Port, "HTTP port (env PORT)")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres:// or sqlite: connection URL (env DATABASE_URL)")
	flags.StringVar(&cfg.IndexPath, "index", cfg.IndexPath, "HTML file served at / instead of the embedded page (env INDEX_HTML)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error (env LOG_LEVEL)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text|json (env LOG_FORMAT)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Reset and seed the flavors table, then serve HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset and seed the flavors table, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cfg)
		},
	}

	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(serveCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// serve runs the full startup routine and blocks until SIGINT or SIGTERM.
// Any failure before the listener is up is returned, and main exits non-zero.
func serve(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// === 3. SIGNALS ===
	// NotifyContext cancels ctx on Ctrl+C or a container stop, which triggers
	// graceful shutdown inside server.Start.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// seed drops, recreates and seeds the table without starting the server.
func seed(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := sqldb.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Reset(ctx); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	logger.Info("DB has been seeded", slog.String("dialect", db.Dialect()))
	return nil
}
