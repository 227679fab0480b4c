// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fact

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

// NewPostgresRepository constructs a PostgreSQL backed fact store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectFact = `
	SELECT
		f.id, f.key, f.value, f.contextid::text, f.periodid::text, COALESCE(c.name, ''),
		ARRAY(SELECT ft.tagid::text FROM kb.facttag ft WHERE ft.factid = f.id ORDER BY ft.tagid) AS tags,
		ARRAY(SELECT fs.sourceid::text FROM kb.factsource fs WHERE fs.factid = f.id ORDER BY fs.sourceid) AS sources,
		f.createdat, f.updatedat
`

const fromFact = ` FROM kb.fact f LEFT JOIN kb.tag c ON c.id = f.contextid`

func scanFact(row pgx.Row, fact *Fact, extra ...any) error {
	dest := []any{
		&fact.ID, &fact.Key, &fact.Value, &fact.Context, &fact.Period, &fact.ContextName,
		&fact.Tags, &fact.Sources, &fact.CreatedAt, &fact.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// # Fact Retrieval

/*
List returns a filtered and paginated list of facts.

Description: Tag and source filters use EXISTS against the join tables so a
fact carrying several matching tags is still returned once.
*/
func (repository *PostgresRepository) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Fact, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectFact)
	queryBuilder.WriteString(`, COUNT(*) OVER() AS total`)
	queryBuilder.WriteString(fromFact)
	queryBuilder.WriteString(` WHERE f.userid = $1`)

	args := []any{userID}
	argID := 2

	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM kb.facttag ft WHERE ft.factid = f.id AND ft.tagid = ANY($%d::uuid[]))", argID))
		args = append(args, filter.Tags)
		argID++
	}

	if filter.Context != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND f.contextid = $%d", argID))
		args = append(args, filter.Context)
		argID++
	}

	if filter.Period != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND f.periodid = $%d", argID))
		args = append(args, filter.Period)
		argID++
	}

	if filter.Key != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND f.key = $%d", argID))
		args = append(args, filter.Key)
		argID++
	}

	if filter.Source != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM kb.factsource fs WHERE fs.factid = f.id AND fs.sourceid = $%d)", argID))
		args = append(args, filter.Source)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY f.createdat DESC, f.id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_facts")
	}
	defer rows.Close()

	facts := []*Fact{}
	var total int
	for rows.Next() {
		fact := &Fact{UserID: userID}
		if err := scanFact(rows, fact, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_fact")
		}
		facts = append(facts, fact)
	}

	return facts, total, dberr.Wrap(rows.Err(), "list_facts")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Fact, error) {
	fact := &Fact{UserID: userID}
	row := repository.db.QueryRow(ctx, selectFact+fromFact+` WHERE f.id = $1 AND f.userid = $2`, id, userID)
	if err := scanFact(row, fact); err != nil {
		return nil, dberr.Wrap(err, "get_fact_by_id")
	}
	return fact, nil
}

// # Fact Mutation

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, fact *Fact) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO kb.fact (id, userid, key, value, contextid, periodid, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING createdat, updatedat
		`
		err := tx.QueryRow(ctx, query, fact.ID, fact.UserID, fact.Key, fact.Value, fact.Context, fact.Period).
			Scan(&fact.CreatedAt, &fact.UpdatedAt)
		if err != nil {
			return err
		}

		return repository.writeLinks(ctx, tx, fact)
	})
	return dberr.Wrap(err, "create_fact")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, fact *Fact) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		const query = `
			UPDATE kb.fact
			SET key = $3, value = $4, contextid = $5, periodid = $6, updatedat = NOW()
			WHERE id = $1 AND userid = $2
			RETURNING createdat, updatedat
		`
		err := tx.QueryRow(ctx, query, fact.ID, fact.UserID, fact.Key, fact.Value, fact.Context, fact.Period).
			Scan(&fact.CreatedAt, &fact.UpdatedAt)
		if err != nil {
			return err
		}

		return repository.writeLinks(ctx, tx, fact)
	})
	return dberr.Wrap(err, "update_fact")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM kb.fact WHERE id = $1 AND userid = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_fact")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
writeLinks replaces the tag and source sets of fact, links the context tag,
and reloads the stored tag list and context name into fact.
*/
func (repository *PostgresRepository) writeLinks(ctx context.Context, tx pgx.Tx, fact *Fact) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM kb.facttag WHERE factid = $1`, fact.ID)
	batch.Queue(`DELETE FROM kb.factsource WHERE factid = $1`, fact.ID)

	if len(fact.Tags) > 0 {
		batch.Queue(`
			INSERT INTO kb.facttag (factid, tagid)
			SELECT $1, tid FROM unnest($2::uuid[]) AS tid
			ON CONFLICT DO NOTHING`, fact.ID, fact.Tags)
	}

	if fact.Context != nil {
		batch.Queue(`INSERT INTO kb.facttag (factid, tagid) VALUES ($1, $2) ON CONFLICT DO NOTHING`, fact.ID, *fact.Context)
	}

	if len(fact.Sources) > 0 {
		batch.Queue(`
			INSERT INTO kb.factsource (factid, sourceid)
			SELECT $1, sid FROM unnest($2::uuid[]) AS sid
			ON CONFLICT DO NOTHING`, fact.ID, fact.Sources)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	const reload = `
		SELECT
			ARRAY(SELECT ft.tagid::text FROM kb.facttag ft WHERE ft.factid = $1 ORDER BY ft.tagid),
			COALESCE((SELECT name FROM kb.tag WHERE id = $2), '')
	`
	return tx.QueryRow(ctx, reload, fact.ID, fact.Context).Scan(&fact.Tags, &fact.ContextName)
}
