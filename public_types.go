package lists

import (
	"github.com/shoppagain/lists/internal/persist"
	"github.com/shoppagain/lists/internal/types"
)

// Public type aliases so consumers can import only the lists package.
type (
	// Domain entities
	ShoppingList = types.ShoppingList
	Item         = types.Item

	// Mutation payloads
	ListMetadata = types.ListMetadata
	ItemFields   = types.ItemFields
	ItemUpdates  = types.ItemUpdates

	// Persister is the durability boundary; implementations live in
	// internal/persist/{remote,sqlite,postgres} and are selected through
	// NewFromEnv, or injected directly by tests.
	Persister = persist.Persister
)

// String returns a pointer to s, for building ItemUpdates literals.
func String(s string) *string { return &s }
