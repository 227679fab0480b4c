// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package alias

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed alias store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectAlias = `
	SELECT a.id, a.name, a.tagid, t.name, a.createdat, a.updatedat
`

// List implements [Repository].
func (repository *PostgresRepository) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Alias, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectAlias)
	queryBuilder.WriteString(`, COUNT(*) OVER() AS total
		FROM kb.alias a
		JOIN kb.tag t ON t.id = a.tagid
		WHERE a.userid = $1`)

	args := []any{userID}
	argID := 2

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.name ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.tagid = $%d", argID))
		args = append(args, filter.Tag)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY a.name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_aliases")
	}
	defer rows.Close()

	aliases := []*Alias{}
	var total int
	for rows.Next() {
		alias := &Alias{UserID: userID}
		if err := rows.Scan(&alias.ID, &alias.Name, &alias.Tag, &alias.TagName, &alias.CreatedAt, &alias.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_alias")
		}
		aliases = append(aliases, alias)
	}

	return aliases, total, dberr.Wrap(rows.Err(), "list_aliases")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Alias, error) {
	query := selectAlias + ` FROM kb.alias a JOIN kb.tag t ON t.id = a.tagid WHERE a.id = $1 AND a.userid = $2`

	alias := &Alias{UserID: userID}
	err := repository.db.QueryRow(ctx, query, id, userID).
		Scan(&alias.ID, &alias.Name, &alias.Tag, &alias.TagName, &alias.CreatedAt, &alias.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_alias_by_id")
	}
	return alias, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, alias *Alias) error {
	const query = `
		INSERT INTO kb.alias (id, userid, name, tagid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat, (SELECT name FROM kb.tag WHERE id = $4)
	`
	err := repository.db.QueryRow(ctx, query, alias.ID, alias.UserID, alias.Name, alias.Tag).
		Scan(&alias.CreatedAt, &alias.UpdatedAt, &alias.TagName)
	return dberr.Wrap(err, "create_alias")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, alias *Alias) error {
	const query = `
		UPDATE kb.alias
		SET name = $3, tagid = $4, updatedat = NOW()
		WHERE id = $1 AND userid = $2
		RETURNING createdat, updatedat, (SELECT name FROM kb.tag WHERE id = $4)
	`
	err := repository.db.QueryRow(ctx, query, alias.ID, alias.UserID, alias.Name, alias.Tag).
		Scan(&alias.CreatedAt, &alias.UpdatedAt, &alias.TagName)
	return dberr.Wrap(err, "update_alias")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM kb.alias WHERE id = $1 AND userid = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_alias")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
