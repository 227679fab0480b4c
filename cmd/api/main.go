// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Ibis HTTP API server.
//
// # Commands
//
//	api serve            start the HTTP server (default)
//	api migrate up       apply pending migrations
//	api migrate down     roll back migrations
//	api migrate version  print the current schema version
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/ibis/internal/platform/config"
	"github.com/taibuivan/ibis/internal/platform/constants"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	serve := newServeCmd()

	rootCmd := &cobra.Command{
		Use:           "api",
		Short:         "Ibis knowledge-base API",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	rootCmd.AddCommand(serve, newMigrateCmd())

	return rootCmd.ExecuteContext(ctx)
}

// setup loads configuration and builds the process logger.
//
// The logger is JSON on stdout; cfg.Debug lowers the level to debug.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("debug", cfg.Debug),
	)

	return cfg, log, nil
}
