// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/database/schema"
	"github.com/taibuivan/ibis/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var (
	account       = schema.UserAccount
	selectAccount = fmt.Sprintf("SELECT %s FROM %s", strings.Join(account.Columns(), ", "), account.Table)
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
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
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into users.account.

Returns:
  - error: CONFLICT on a duplicate username or email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s`,
		account.Table,
		account.ID, account.Username, account.Email, account.Password, account.DisplayName,
		account.CreatedAt, account.UpdatedAt,
		account.CreatedAt, account.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := selectAccount + fmt.Sprintf(" WHERE %s = $1", account.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

// FindByEmail implements [UserRepository].
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := selectAccount + fmt.Sprintf(" WHERE lower(%s) = lower($1)", account.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

// FindByUsername implements [UserRepository].
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := selectAccount + fmt.Sprintf(" WHERE %s = $1", account.Username)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}
	return user, nil
}

// TouchLastLogin implements [UserRepository].
func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1", account.Table, account.LastLoginAt, account.ID)

	_, err := repository.pool.Exec(ctx, query, id)
	return dberr.Wrap(err, "touch_last_login")
}
