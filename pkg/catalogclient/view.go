package catalogclient

import (
	"sort"
	"time"
)

// Derived views over a fetched product list. Filtering and sorting happen on
// the client; the service always returns the full collection.

type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPrice     SortKey = "price"
	SortByDateAdded SortKey = "dateAdded"
	SortByCategory  SortKey = "category"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortState tracks the active sort selection. Selecting the active key again
// flips the direction; selecting a new key starts ascending.
type SortState struct {
	Key   SortKey
	Order SortOrder
}

func (s *SortState) Select(key SortKey) {
	if s.Key == key {
		if s.Order == Ascending {
			s.Order = Descending
		} else {
			s.Order = Ascending
		}
		return
	}
	s.Key = key
	s.Order = Ascending
}

// FilterByCategory returns the products in the given category; an empty
// category selects everything.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" {
		return append([]Product(nil), products...)
	}
	out := []Product{}
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

var viewDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	for _, layout := range viewDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortProducts returns a sorted copy. Strings compare lexicographically,
// price numerically and dateAdded by parsed time; ties keep their incoming
// order (the sort is stable).
func SortProducts(products []Product, key SortKey, order SortOrder) []Product {
	out := append([]Product(nil), products...)

	less := func(a, b Product) bool { return a.Name < b.Name }
	switch key {
	case SortByPrice:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortByDateAdded:
		less = func(a, b Product) bool { return parseDate(a.DateAdded).Before(parseDate(b.DateAdded)) }
	case SortByCategory:
		less = func(a, b Product) bool { return a.Category < b.Category }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
