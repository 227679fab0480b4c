// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for the SQL files in data/migrations.
//
// It backs both the startup auto-migration of `api serve` and the
// `api migrate up|down|version` commands.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// open builds a migrator and returns a closer that logs close failures.
func open(dsn, migrationsPath string, logger *slog.Logger) (*migrate.Migrate, func(), error) {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	closer := func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}
	return migrator, closer, nil
}

// current returns the applied version, refusing to go on from a dirty state.
func current(migrator *migrate.Migrate) (uint, error) {
	version, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return version, fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", version)
	}
	return version, nil
}

// RunUp applies all pending UP migrations.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	migrator, closer, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer closer()

	from, err := current(migrator)
	if err != nil {
		return err
	}

	logger.Info("migration_started", slog.Int("current_version", int(from)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_successful", slog.Int("from_version", int(from)), slog.Int("to_version", int(to)))
	return nil
}

// RunDown rolls back steps migrations; steps <= 0 rolls back everything.
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	migrator, closer, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer closer()

	from, err := current(migrator)
	if err != nil {
		return err
	}

	if steps > 0 {
		err = migrator.Steps(-steps)
	} else {
		err = migrator.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_rolled_back", slog.Int("from_version", int(from)), slog.Int("to_version", int(to)))
	return nil
}

// Version reports the applied migration version and whether it is dirty.
// A database without migrations reports version 0.
func Version(dsn, migrationsPath string, logger *slog.Logger) (uint, bool, error) {
	migrator, closer, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return 0, false, err
	}
	defer closer()

	version, isDirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get version: %w", err)
	}
	return version, isDirty, nil
}

// ToPgx5DSN rewrites a postgres:// URL to the pgx5:// scheme golang-migrate expects.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return false
}
