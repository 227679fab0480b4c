// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package period

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed period store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List implements [Repository].
func (repository *PostgresRepository) List(ctx context.Context, userID string, limit, offset int) ([]*Period, int, error) {
	const query = `
		SELECT id, startat, endat, createdat, updatedat, COUNT(*) OVER() AS total
		FROM kb.period
		WHERE userid = $1
		ORDER BY startat ASC NULLS FIRST, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := repository.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_periods")
	}
	defer rows.Close()

	periods := []*Period{}
	var total int
	for rows.Next() {
		period := &Period{UserID: userID}
		if err := rows.Scan(&period.ID, &period.Start, &period.End, &period.CreatedAt, &period.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_period")
		}
		periods = append(periods, period)
	}

	return periods, total, dberr.Wrap(rows.Err(), "list_periods")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Period, error) {
	const query = `
		SELECT id, startat, endat, createdat, updatedat
		FROM kb.period
		WHERE id = $1 AND userid = $2
	`
	period := &Period{UserID: userID}
	err := repository.db.QueryRow(ctx, query, id, userID).Scan(
		&period.ID, &period.Start, &period.End, &period.CreatedAt, &period.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_period_by_id")
	}
	return period, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, period *Period) error {
	const query = `
		INSERT INTO kb.period (id, userid, startat, endat, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(ctx, query, period.ID, period.UserID, period.Start, period.End).
		Scan(&period.CreatedAt, &period.UpdatedAt)
	return dberr.Wrap(err, "create_period")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, period *Period) error {
	const query = `
		UPDATE kb.period
		SET startat = $3, endat = $4, updatedat = NOW()
		WHERE id = $1 AND userid = $2
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(ctx, query, period.ID, period.UserID, period.Start, period.End).
		Scan(&period.CreatedAt, &period.UpdatedAt)
	return dberr.Wrap(err, "update_period")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM kb.period WHERE id = $1 AND userid = $2`
	tag, err := repository.db.Exec(ctx, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_period")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
