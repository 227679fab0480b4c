// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag type store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List implements [Repository].
func (repository *PostgresRepository) List(ctx context.Context, userID string, limit, offset int) ([]*TagType, int, error) {
	const query = `
		SELECT id, name, createdat, updatedat, COUNT(*) OVER() AS total
		FROM kb.tagtype
		WHERE userid = $1
		ORDER BY name ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := repository.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tag_types")
	}
	defer rows.Close()

	tagTypes := []*TagType{}
	var total int
	for rows.Next() {
		tagType := &TagType{UserID: userID}
		if err := rows.Scan(&tagType.ID, &tagType.Name, &tagType.CreatedAt, &tagType.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag_type")
		}
		tagTypes = append(tagTypes, tagType)
	}

	return tagTypes, total, dberr.Wrap(rows.Err(), "list_tag_types")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*TagType, error) {
	const query = `SELECT id, name, createdat, updatedat FROM kb.tagtype WHERE id = $1 AND userid = $2`

	tagType := &TagType{UserID: userID}
	err := repository.db.QueryRow(ctx, query, id, userID).Scan(
		&tagType.ID, &tagType.Name, &tagType.CreatedAt, &tagType.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag_type_by_id")
	}
	return tagType, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, tagType *TagType) error {
	const query = `
		INSERT INTO kb.tagtype (id, userid, name, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(ctx, query, tagType.ID, tagType.UserID, tagType.Name).
		Scan(&tagType.CreatedAt, &tagType.UpdatedAt)
	return dberr.Wrap(err, "create_tag_type")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, tagType *TagType) error {
	const query = `
		UPDATE kb.tagtype SET name = $3, updatedat = NOW()
		WHERE id = $1 AND userid = $2
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(ctx, query, tagType.ID, tagType.UserID, tagType.Name).
		Scan(&tagType.CreatedAt, &tagType.UpdatedAt)
	return dberr.Wrap(err, "update_tag_type")
}

// Delete implements [Repository]. Tags of this type become untyped.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM kb.tagtype WHERE id = $1 AND userid = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_tag_type")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
