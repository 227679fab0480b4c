// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

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

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTag = `
	SELECT
		t.id, t.name, t.slug, t.text, t.typeid::text,
		ARRAY(SELECT tr.relatedid::text FROM kb.tagrelated tr WHERE tr.tagid = t.id ORDER BY tr.relatedid) AS tags,
		ARRAY(SELECT tr.tagid::text FROM kb.tagrelated tr WHERE tr.relatedid = t.id ORDER BY tr.tagid) AS taggedby,
		t.createdat, t.updatedat
`

func scanTag(row pgx.Row, tag *Tag, extra ...any) error {
	dest := []any{
		&tag.ID, &tag.Name, &tag.Slug, &tag.Text, &tag.Type,
		&tag.Tags, &tag.TaggedBy, &tag.CreatedAt, &tag.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// # Tag Retrieval

// List implements [Repository].
func (repository *PostgresRepository) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Tag, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectTag)
	queryBuilder.WriteString(`, COUNT(*) OVER() AS total FROM kb.tag t WHERE t.userid = $1`)

	args := []any{userID}
	argID := 2

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.name ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.typeid = $%d", argID))
		args = append(args, filter.Type)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := []*Tag{}
	var total int
	for rows.Next() {
		tag := &Tag{UserID: userID}
		if err := scanTag(rows, tag, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}

	return tags, total, dberr.Wrap(rows.Err(), "list_tags")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Tag, error) {
	tag := &Tag{UserID: userID}
	row := repository.db.QueryRow(ctx, selectTag+` FROM kb.tag t WHERE t.id = $1 AND t.userid = $2`, id, userID)
	if err := scanTag(row, tag); err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_id")
	}
	return tag, nil
}

// FindBySlug implements [Repository].
func (repository *PostgresRepository) FindBySlug(ctx context.Context, userID, slug string) (*Tag, error) {
	query := selectTag + ` FROM kb.tag t WHERE t.slug = $1 AND t.userid = $2 ORDER BY t.id ASC LIMIT 1`

	tag := &Tag{UserID: userID}
	if err := scanTag(repository.db.QueryRow(ctx, query, slug, userID), tag); err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_slug")
	}
	return tag, nil
}

// # Tag Mutation

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, tag *Tag) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO kb.tag (id, userid, name, slug, text, typeid, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING createdat, updatedat
		`
		err := tx.QueryRow(ctx, query, tag.ID, tag.UserID, tag.Name, tag.Slug, tag.Text, tag.Type).
			Scan(&tag.CreatedAt, &tag.UpdatedAt)
		if err != nil {
			return err
		}

		return replaceRelated(ctx, tx, tag.ID, tag.Tags)
	})
	return dberr.Wrap(err, "create_tag")
}

// Update implements [Repository]. The reverse relation is re-read once the
// outgoing relations are written, so a self-reference shows on both sides.
func (repository *PostgresRepository) Update(ctx context.Context, tag *Tag) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		const query = `
			UPDATE kb.tag
			SET name = $3, slug = $4, text = $5, typeid = $6, updatedat = NOW()
			WHERE id = $1 AND userid = $2
			RETURNING createdat, updatedat
		`
		err := tx.QueryRow(ctx, query, tag.ID, tag.UserID, tag.Name, tag.Slug, tag.Text, tag.Type).
			Scan(&tag.CreatedAt, &tag.UpdatedAt)
		if err != nil {
			return err
		}

		if err := replaceRelated(ctx, tx, tag.ID, tag.Tags); err != nil {
			return err
		}

		return tx.QueryRow(ctx,
			`SELECT ARRAY(SELECT tr.tagid::text FROM kb.tagrelated tr WHERE tr.relatedid = $1 ORDER BY tr.tagid)`,
			tag.ID,
		).Scan(&tag.TaggedBy)
	})
	return dberr.Wrap(err, "update_tag")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM kb.tag WHERE id = $1 AND userid = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// replaceRelated makes relatedIDs the exact set of tags tagged by tagID.
func replaceRelated(ctx context.Context, tx pgx.Tx, tagID string, relatedIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM kb.tagrelated WHERE tagid = $1`, tagID); err != nil {
		return err
	}

	if len(relatedIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO kb.tagrelated (tagid, relatedid)
		SELECT $1, rid FROM unnest($2::uuid[]) AS rid
		ON CONFLICT DO NOTHING
	`
	_, err := tx.Exec(ctx, query, tagID, relatedIDs)
	return err
}
