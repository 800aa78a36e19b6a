// Package sqlite is the local durable Persistence Adapter. Lists live in a
// single SQLite file; every mutation rewrites the affected list (title,
// owner, and the full item collection) as one unit.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shoppagain/lists/internal/types"
)

// timeLayout is fixed-width (nanoseconds always padded, offsets always UTC)
// so that the TEXT column sorts chronologically. RFC3339Nano trims trailing
// zeros, which makes fractional-second stamps sort before whole-second ones.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements persist.Persister on a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database file at path and ensures the schema.
func New(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires an existing connection (used by tests and the factory).
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying *sql.DB connection (local-only use case).
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database file.
func (s *Store) Close() error { return s.db.Close() }

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) upsert(ctx context.Context, l *types.ShoppingList) error {
	items, err := json.Marshal(l.Items)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO Lists (ListId, OwnerId, Title, Items, CreationTime) VALUES (?,?,?,?,?)
        ON CONFLICT(ListId) DO UPDATE SET OwnerId=excluded.OwnerId, Title=excluded.Title, Items=excluded.Items`,
		l.ID, l.OwnerID, l.Title, string(items), l.CreatedAt.UTC().Format(timeLayout))
	return err
}

// CreateList writes the new list.
func (s *Store) CreateList(ctx context.Context, l *types.ShoppingList) (*types.ShoppingList, error) {
	if err := types.ValidateIDPresent(l.ID, "list id"); err != nil {
		return nil, err
	}
	if err := s.upsert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateList overwrites the stored list. An update racing ahead of its
// create still lands as an upsert, which is the last-write-wins contract.
func (s *Store) UpdateList(ctx context.Context, l *types.ShoppingList) error {
	if err := types.ValidateIDPresent(l.ID, "list id"); err != nil {
		return err
	}
	return s.upsert(ctx, l)
}

// DeleteList removes the row; deleting an absent id is a no-op.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	if err := types.ValidateIDPresent(listID, "list id"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM Lists WHERE ListId = ?`, listID)
	return err
}

// FetchAll returns lists owned by ownerID, or every list when ownerID is
// empty, in creation order.
func (s *Store) FetchAll(ctx context.Context, ownerID string) ([]*types.ShoppingList, error) {
	q := `SELECT ListId, OwnerId, Title, Items, CreationTime FROM Lists`
	args := []any{}
	if ownerID != "" {
		q += ` WHERE OwnerId = ?`
		args = append(args, ownerID)
	}
	q += ` ORDER BY CreationTime`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*types.ShoppingList
	for rows.Next() {
		var (
			l       types.ShoppingList
			items   string
			created string
		)
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &items, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(items), &l.Items); err != nil {
			return nil, err
		}
		if l.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
