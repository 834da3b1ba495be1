package bloodlines

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nonoumasy/bloodlines"
	"github.com/nonoumasy/bloodlines/pkg/config"
	"github.com/nonoumasy/bloodlines/pkg/logger"
	"github.com/nonoumasy/bloodlines/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bloodlines HTTP server",
	Long: `Start the bloodlines HTTP server to provide REST API access to
person search, entity resolution, and tree expansion.

Endpoints:
- GET /api/v1/search?q=<query>      person search
- GET /api/v1/person/:id            resolved person
- GET /api/v1/tree/:id?depth=<n>    expanded tree
- GET /health, /ready, /live        health checks

Configuration can be provided through config files, environment
variables, or command-line flags.`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
	serveMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server-specific flags
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Server host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serveMode, "mode", "debug", "Server mode (debug, release, test)")

	// Knowledge-base flags
	serveCmd.Flags().String("wikidata-base-url", "", "Wikidata API endpoint")
	serveCmd.Flags().Int("wikidata-timeout", 0, "Wikidata request timeout in seconds")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serveMode
	}
	if cmd.Flags().Changed("wikidata-base-url") {
		cfg.Wikidata.BaseURL, _ = cmd.Flags().GetString("wikidata-base-url")
	}
	if cmd.Flags().Changed("wikidata-timeout") {
		cfg.Wikidata.Timeout, _ = cmd.Flags().GetInt("wikidata-timeout")
	}

	if err := validateServeConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.FromConfig(cfg.Log.Level, cfg.Log.Format)

	svc := bloodlines.New(nil, cfg, log)
	defer svc.Close()

	// Create and setup server
	srv := server.New(cfg, svc, log)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Info("server stopped gracefully")
		return nil
	}
}

func validateServeConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Wikidata.BaseURL == "" {
		return fmt.Errorf("wikidata base URL is required")
	}
	return nil
}

// buildLogger is shared by the non-server commands.
func buildLogger(cfg *config.Config) *slog.Logger {
	return logger.FromConfig(cfg.Log.Level, cfg.Log.Format)
}
