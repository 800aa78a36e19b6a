package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// ShoppingList is a named, user-owned collection of shopping items.
// Items are kept in insertion order; display order is a projection concern.
type ShoppingList struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"date"`
	OwnerID   string    `json:"userId,omitempty"`
	Items     []Item    `json:"subItems"`
}

// Item is a single shopping entry inside exactly one list.
// Quantity is free text ("2", "1.5 kg", "a dozen"); sorting never uses it.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes,omitempty"`
	Image     string    `json:"image,omitempty"`
	DateAdded time.Time `json:"date"`
}

// Clone returns a deep copy safe to hand to persistence jobs or callers.
func (l *ShoppingList) Clone() *ShoppingList {
	if l == nil {
		return nil
	}
	out := *l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return &out
}

// FindItem returns the index of the item with the given id, or -1.
func (l *ShoppingList) FindItem(itemID string) int {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
