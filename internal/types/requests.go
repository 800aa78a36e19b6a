package types

// ------------------------------
// Mutation payloads
// ------------------------------

// ListMetadata carries optional fields supplied when a list is created.
type ListMetadata struct {
	OwnerID string
}

// ItemFields are the caller-supplied fields for a new item.
// Name and Quantity are required after trimming; the rest are optional.
type ItemFields struct {
	Name     string
	Quantity string
	Category string
	Notes    string
	Image    string
}

// ItemUpdates is a partial item edit. Nil fields are left untouched,
// so an update never clobbers ID or DateAdded.
type ItemUpdates struct {
	Name     *string
	Quantity *string
	Category *string
	Notes    *string
	Image    *string
}

// Apply merges the non-nil updates into it.
func (u ItemUpdates) Apply(it *Item) {
	if u.Name != nil {
		it.Name = *u.Name
	}
	if u.Quantity != nil {
		it.Quantity = *u.Quantity
	}
	if u.Category != nil {
		it.Category = *u.Category
	}
	if u.Notes != nil {
		it.Notes = *u.Notes
	}
	if u.Image != nil {
		it.Image = *u.Image
	}
}
