// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ownership

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ibis/internal/platform/database/schema"
	"github.com/taibuivan/ibis/internal/platform/dberr"
)

var tables = map[Kind]schema.OwnedTable{
	KindSource:  schema.KBSource,
	KindPeriod:  schema.KBPeriod,
	KindTagType: schema.KBTagType,
	KindTag:     schema.KBTag,
	KindFact:    schema.KBFact,
}

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed ownership store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Owners implements [Store].
func (store *PostgresStore) Owners(ctx context.Context, kind Kind, ids []string) (map[string]string, error) {
	table, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("ownership: unknown kind %q", kind)
	}

	query := fmt.Sprintf(`SELECT %s::text, %s::text FROM %s WHERE %s = ANY($1::uuid[])`,
		table.ID, table.UserID, table.Table, table.ID)

	rows, err := store.db.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_owners")
	}
	defer rows.Close()

	owners := make(map[string]string, len(ids))
	for rows.Next() {
		var id, userID string
		if err := rows.Scan(&id, &userID); err != nil {
			return nil, dberr.Wrap(err, "scan_owner")
		}
		owners[id] = userID
	}

	return owners, dberr.Wrap(rows.Err(), "resolve_owners")
}
