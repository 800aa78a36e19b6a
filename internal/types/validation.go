package types

import (
	"fmt"
	"strings"
)

//
// The store treats any validation error as a silent no-op; these helpers
// exist so adapters and tests can share the exact same rules.

// ValidateListTitle rejects titles that are empty after trimming.
func ValidateListTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("list title must be non-empty")
	}
	return nil
}

// ValidateItemFields rejects items whose name or quantity is empty after
// trimming. Category, notes and image are free-form.
func ValidateItemFields(f ItemFields) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("item name must be non-empty")
	}
	if strings.TrimSpace(f.Quantity) == "" {
		return fmt.Errorf("item quantity must be non-empty")
	}
	return nil
}

// ValidateIDPresent rejects blank identifiers before they reach an adapter.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s must be non-empty", field)
	}
	return nil
}
