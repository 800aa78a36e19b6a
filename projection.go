package lists

import (
	"sort"
	"strings"
)

// SortKey selects the ordering a projection applies. Unrecognized values
// leave the input order untouched, so a stale selection degrades gracefully.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByDate     SortKey = "date"
)

// ProjectItems filters items by a case-insensitive substring match on name
// or category, then orders them by the sort key: name and category sort
// lexicographically ascending, date sorts newest first. The input slice is
// never modified.
func ProjectItems(items []Item, keyword string, sortBy SortKey) []Item {
	out := make([]Item, 0, len(items))
	needle := strings.ToLower(keyword)
	for _, it := range items {
		if needle == "" ||
			strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Category), needle) {
			out = append(out, it)
		}
	}

	switch sortBy {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortByCategory:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	}
	return out
}

// ProjectLists is the list-level counterpart: the keyword matches titles,
// name sorts by title, date sorts newest first.
func ProjectLists(all []ShoppingList, keyword string, sortBy SortKey) []ShoppingList {
	out := make([]ShoppingList, 0, len(all))
	needle := strings.ToLower(keyword)
	for _, l := range all {
		if needle == "" || strings.Contains(strings.ToLower(l.Title), needle) {
			out = append(out, l)
		}
	}

	switch sortBy {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}
