// Package persisttest is a compliance suite every Persistence Adapter must
// pass. Implementations provide a clean, isolated adapter from makePersister.
package persisttest

import (
	"context"
	"testing"
	"time"

	"github.com/shoppagain/lists/internal/ids"
	"github.com/shoppagain/lists/internal/persist"
	"github.com/shoppagain/lists/internal/types"
)

// Run exercises the create/update/delete/fetchAll contract.
func Run(t *testing.T, makePersister func(t *testing.T) persist.Persister) {
	t.Helper()

	p := makePersister(t)
	ctx := context.Background()

	owner := "u-" + ids.New()
	now := time.Now().UTC().Truncate(time.Second)

	l1 := &types.ShoppingList{
		ID:        ids.New(),
		Title:     "Groceries",
		OwnerID:   owner,
		CreatedAt: now,
		Items: []types.Item{
			{ID: ids.New(), Name: "Milk", Quantity: "2", Category: "Dairy", DateAdded: now},
		},
	}

	stored, err := p.CreateList(ctx, l1)
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if stored == nil || stored.ID != l1.ID {
		t.Fatalf("CreateList: stored id mismatch: %+v", stored)
	}

	// Fetch scoped to the owner sees exactly the one list with its item.
	got, err := p.FetchAll(ctx, owner)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != l1.ID || got[0].Title != "Groceries" {
		t.Fatalf("FetchAll after create: %+v", got)
	}
	if len(got[0].Items) != 1 || got[0].Items[0].Name != "Milk" {
		t.Fatalf("FetchAll lost items: %+v", got[0].Items)
	}

	// Update carries the post-mutation snapshot: rename plus a second item.
	l1.Title = "Weekend groceries"
	l1.Items = append(l1.Items, types.Item{ID: ids.New(), Name: "Bread", Quantity: "1", Category: "Bakery", DateAdded: now.Add(time.Second)})
	if err := p.UpdateList(ctx, l1); err != nil {
		t.Fatalf("UpdateList: %v", err)
	}
	got, err = p.FetchAll(ctx, owner)
	if err != nil {
		t.Fatalf("FetchAll after update: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Weekend groceries" || len(got[0].Items) != 2 {
		t.Fatalf("update not visible: %+v", got)
	}

	// Another owner's fetch must not see this list.
	other, err := p.FetchAll(ctx, "u-"+ids.New())
	if err != nil {
		t.Fatalf("FetchAll other owner: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("owner scoping leaked %d lists", len(other))
	}

	// Delete is idempotent: once for real, once for an id that is gone.
	if err := p.DeleteList(ctx, l1.ID); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if err := p.DeleteList(ctx, l1.ID); err != nil {
		t.Fatalf("DeleteList (absent id): %v", err)
	}
	got, err = p.FetchAll(ctx, owner)
	if err != nil {
		t.Fatalf("FetchAll after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("list still present after delete: %+v", got)
	}
}
