// Package persist defines the durability boundary the list store delegates
// to. Implementations live under persist/<driver>/ (remote, sqlite, postgres)
// and must never panic into the caller; failures come back as plain errors
// which the store logs without rolling back its in-memory mutation.
package persist

import (
	"context"

	"github.com/shoppagain/lists/internal/types"
)

// Persister is the adapter capability set consumed by the store.
// Every call carries the post-mutation snapshot of the affected list.
type Persister interface {
	// CreateList stores a new list and returns the stored representation.
	CreateList(ctx context.Context, l *types.ShoppingList) (*types.ShoppingList, error)
	// UpdateList overwrites the stored list with the same id (last write wins).
	UpdateList(ctx context.Context, l *types.ShoppingList) error
	// DeleteList removes the list; deleting an unknown id is not an error.
	DeleteList(ctx context.Context, listID string) error
	// FetchAll returns every list owned by ownerID; an empty ownerID returns
	// all lists (single-user deployments).
	FetchAll(ctx context.Context, ownerID string) ([]*types.ShoppingList, error)
}

// Noop discards writes and fetches nothing. It backs stores that run purely
// in memory (and keeps tests quiet).
type Noop struct{}

func (Noop) CreateList(_ context.Context, l *types.ShoppingList) (*types.ShoppingList, error) {
	return l, nil
}
func (Noop) UpdateList(context.Context, *types.ShoppingList) error { return nil }
func (Noop) DeleteList(context.Context, string) error              { return nil }
func (Noop) FetchAll(context.Context, string) ([]*types.ShoppingList, error) {
	return nil, nil
}
