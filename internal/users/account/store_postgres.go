// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/database/schema"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/users/auth"
)

// PostgresRepository implements [Repository] on users.account.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var account = schema.UserAccount

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(account.Columns(), ", "), account.Table, account.ID)

	user := &auth.User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account")
	}
	return user, nil
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, user *auth.User) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 RETURNING %s",
		account.Table, account.Email, account.DisplayName, account.UpdatedAt, account.ID, account.UpdatedAt)

	err := repository.pool.QueryRow(ctx, query, user.ID, user.Email, user.DisplayName).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_account")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", account.Table, account.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
