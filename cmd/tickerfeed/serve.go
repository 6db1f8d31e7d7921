package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tickerfeed/tickerfeed"
	"github.com/tickerfeed/tickerfeed/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the tickerfeed server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feed server",
	Long: `Start the tickerfeed server.

The server will:
  - Load configuration from the specified YAML file
  - Seed the in-memory store with the configured stocks
  - Start the price update loop and serve the dashboard, API, and live stream

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  tickerfeed serve -c config.yaml
  tickerfeed serve --config /etc/tickerfeed/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded", "stocks", len(cfg.Stocks))
	logger.Info("starting server",
		"port", cfg.Port,
		"update_interval", cfg.UpdateInterval().String(),
	)

	// convert config to SDK records
	records := config.BuildRecords(cfg)

	// create feed with options
	opts := []tickerfeed.Option{
		tickerfeed.WithRecords(records...),
		tickerfeed.WithPort(cfg.Port),
		tickerfeed.WithUpdateInterval(cfg.UpdateInterval()),
		tickerfeed.WithLogger(logger),
	}
	if cfg.Title != "" {
		opts = append(opts, tickerfeed.WithTitle(cfg.Title))
	}

	feed, err := tickerfeed.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create feed: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- feed.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
