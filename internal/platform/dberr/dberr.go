// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates pgx errors into [apperr.AppError] values so that
// storage details never reach the client.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/ibis/internal/platform/apperr"
)

// ErrNotFound is returned when a queried row doesn't exist or is owned by someone else.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and classifies it as an [apperr.AppError].
//
//   - pgx.ErrNoRows              -> 404 NOT_FOUND
//   - unique_violation (23505)   -> 409 CONFLICT
//   - foreign_key_violation      -> 400 VALIDATION_ERROR
//   - anything else              -> 500, cause tagged with action
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("An object with this name already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			invalid := apperr.ValidationError("Referenced object does not exist")
			invalid.Cause = err
			return invalid
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
