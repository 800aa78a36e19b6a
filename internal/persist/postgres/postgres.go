// Package postgres is a Persistence Adapter backed by PostgreSQL, for
// deployments that already run one. Schema:
//
//	CREATE TABLE lists (
//	    list_id       TEXT PRIMARY KEY,
//	    owner_id      TEXT NOT NULL DEFAULT '',
//	    title         TEXT NOT NULL,
//	    items         JSONB NOT NULL DEFAULT '[]',
//	    creation_time TIMESTAMPTZ NOT NULL
//	);
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shoppagain/lists/internal/types"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Store implements persist.Persister on PostgreSQL.
type Store struct{ db *sql.DB }

// NewWithDB constructs a Store backed directly by database/sql.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the lists table if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS lists (
            list_id       TEXT PRIMARY KEY,
            owner_id      TEXT NOT NULL DEFAULT '',
            title         TEXT NOT NULL,
            items         JSONB NOT NULL DEFAULT '[]',
            creation_time TIMESTAMPTZ NOT NULL
        )`)
	return err
}

// HealthPing verifies the connection is alive.
func (s *Store) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) upsert(ctx context.Context, l *types.ShoppingList) error {
	items, err := json.Marshal(l.Items)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO lists (list_id, owner_id, title, items, creation_time)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (list_id) DO UPDATE
        SET owner_id = EXCLUDED.owner_id, title = EXCLUDED.title, items = EXCLUDED.items
    `, l.ID, l.OwnerID, l.Title, string(items), l.CreatedAt.UTC())
	return err
}

// CreateList stores a new list.
func (s *Store) CreateList(ctx context.Context, l *types.ShoppingList) (*types.ShoppingList, error) {
	if err := types.ValidateIDPresent(l.ID, "list id"); err != nil {
		return nil, err
	}
	if err := s.upsert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateList overwrites the stored list (last write wins).
func (s *Store) UpdateList(ctx context.Context, l *types.ShoppingList) error {
	if err := types.ValidateIDPresent(l.ID, "list id"); err != nil {
		return err
	}
	return s.upsert(ctx, l)
}

// DeleteList removes the row; an absent id is a no-op.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	if err := types.ValidateIDPresent(listID, "list id"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE list_id = $1`, listID)
	return err
}

// FetchAll returns lists owned by ownerID, or all lists when empty.
func (s *Store) FetchAll(ctx context.Context, ownerID string) ([]*types.ShoppingList, error) {
	q := `SELECT list_id, owner_id, title, items, creation_time FROM lists`
	args := []any{}
	if ownerID != "" {
		q += ` WHERE owner_id = $1`
		args = append(args, ownerID)
	}
	q += ` ORDER BY creation_time`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*types.ShoppingList
	for rows.Next() {
		var (
			l     types.ShoppingList
			items []byte
		)
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &items, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &l.Items); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
