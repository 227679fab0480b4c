// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed source store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectSource = `
	SELECT
		s.id, s.name, s.accessed, s.author, s.publisher, s.published,
		ARRAY(SELECT fs.factid::text FROM kb.factsource fs WHERE fs.sourceid = s.id ORDER BY fs.factid) AS facts,
		s.createdat, s.updatedat
`

// # Source Retrieval

/*
List returns a filtered and paginated list of sources.

Description: Uses ILIKE for name/author search and COUNT(*) OVER() for total metadata.
*/
func (repository *PostgresRepository) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Source, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectSource)
	queryBuilder.WriteString(`, COUNT(*) OVER() AS total FROM kb.source s WHERE s.userid = $1`)

	args := []any{userID}
	argID := 2

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (s.name ILIKE $%d OR s.author ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.accessed DESC, s.id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_sources")
	}
	defer rows.Close()

	sources := []*Source{}
	var total int
	for rows.Next() {
		source := &Source{UserID: userID}
		err := rows.Scan(
			&source.ID, &source.Name, &source.Accessed, &source.Author, &source.Publisher, &source.Published,
			&source.Facts, &source.CreatedAt, &source.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_source")
		}
		sources = append(sources, source)
	}

	return sources, total, dberr.Wrap(rows.Err(), "list_sources")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Source, error) {
	query := selectSource + ` FROM kb.source s WHERE s.id = $1 AND s.userid = $2`

	source := &Source{UserID: userID}
	err := repository.db.QueryRow(ctx, query, id, userID).Scan(
		&source.ID, &source.Name, &source.Accessed, &source.Author, &source.Publisher, &source.Published,
		&source.Facts, &source.CreatedAt, &source.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_source_by_id")
	}
	return source, nil
}

// # Source Mutation

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, source *Source) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO kb.source (id, userid, name, accessed, author, publisher, published, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING createdat, updatedat
		`
		err := tx.QueryRow(ctx, query,
			source.ID, source.UserID, source.Name, source.Accessed, source.Author, source.Publisher, source.Published,
		).Scan(&source.CreatedAt, &source.UpdatedAt)
		if err != nil {
			return err
		}

		return replaceFacts(ctx, tx, source.ID, source.Facts)
	})
	return dberr.Wrap(err, "create_source")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, source *Source) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		const query = `
			UPDATE kb.source
			SET name = $3, accessed = $4, author = $5, publisher = $6, published = $7, updatedat = NOW()
			WHERE id = $1 AND userid = $2
			RETURNING createdat, updatedat
		`
		err := tx.QueryRow(ctx, query,
			source.ID, source.UserID, source.Name, source.Accessed, source.Author, source.Publisher, source.Published,
		).Scan(&source.CreatedAt, &source.UpdatedAt)
		if err != nil {
			return err
		}

		return replaceFacts(ctx, tx, source.ID, source.Facts)
	})
	return dberr.Wrap(err, "update_source")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM kb.source WHERE id = $1 AND userid = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_source")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// replaceFacts makes factIDs the exact set of facts citing sourceID.
func replaceFacts(ctx context.Context, tx pgx.Tx, sourceID string, factIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM kb.factsource WHERE sourceid = $1`, sourceID); err != nil {
		return err
	}

	if len(factIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO kb.factsource (factid, sourceid)
		SELECT fid, $1 FROM unnest($2::uuid[]) AS fid
		ON CONFLICT DO NOTHING
	`
	_, err := tx.Exec(ctx, query, sourceID, factIDs)
	return err
}
