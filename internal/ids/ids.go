// Package ids generates client-side primary keys for lists and items.
//
// UUIDv4 keys are safe to mint on any client without coordination, which is
// what lets the store mutate optimistically before the adapter confirms.
package ids

import "github.com/google/uuid"

// New returns a fresh opaque identifier.
func New() string {
	return uuid.New().String()
}
