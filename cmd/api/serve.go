// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/taibuivan/ibis/internal/api"
	"github.com/taibuivan/ibis/internal/core/alias"
	"github.com/taibuivan/ibis/internal/core/fact"
	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/core/period"
	"github.com/taibuivan/ibis/internal/core/source"
	"github.com/taibuivan/ibis/internal/core/tag"
	"github.com/taibuivan/ibis/internal/core/tagtype"
	"github.com/taibuivan/ibis/internal/platform/constants"
	"github.com/taibuivan/ibis/internal/platform/migration"
	pgstore "github.com/taibuivan/ibis/internal/platform/postgres"
	redisstore "github.com/taibuivan/ibis/internal/platform/redis"
	"github.com/taibuivan/ibis/internal/platform/sec"
	"github.com/taibuivan/ibis/internal/users/account"
	"github.com/taibuivan/ibis/internal/users/auth"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

/*
runServe wires the whole application and blocks until ctx is cancelled.

Startup sequence:
 1. Load configuration and build the logger.
 2. Apply migrations when AUTO_MIGRATE is set.
 3. Connect to PostgreSQL and Redis.
 4. Wire repositories, services and handlers.
 5. Serve until SIGINT/SIGTERM, then shut down gracefully.
*/
func runServe(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// # Migrations
	if cfg.AutoMigrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// # PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{MaxConns: cfg.DBMaxConns}, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// # Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// # Token Service
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}

	// # Health
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckSessions: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// # Users
	authService := auth.NewService(auth.NewUserRepository(pool), auth.NewSessionRepository(rdb), tokens, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), authService, log)

	// # Knowledge Base
	owners := ownership.NewPostgresStore(pool)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Account:   account.NewHandler(accountService),
		Sources:   source.NewHandler(source.NewService(source.NewPostgresRepository(pool), owners, log)),
		Periods:   period.NewHandler(period.NewService(period.NewPostgresRepository(pool), log)),
		TagTypes:  tagtype.NewHandler(tagtype.NewService(tagtype.NewPostgresRepository(pool), log)),
		Tags:      tag.NewHandler(tag.NewService(tag.NewPostgresRepository(pool), owners, log)),
		Aliases:   alias.NewHandler(alias.NewService(alias.NewPostgresRepository(pool), owners, log)),
		Facts:     fact.NewHandler(fact.NewService(fact.NewPostgresRepository(pool), owners, log)),
	}

	server := api.NewServer(ctx, cfg, log, tokens, handlers)

	// # Serve
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped")
	return nil
}
