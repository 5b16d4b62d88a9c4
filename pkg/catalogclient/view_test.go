package catalogclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "Monitor", Price: 50, DateAdded: "2024-03-01", Category: "Electronics"},
		{ID: 2, Name: "Apple", Price: 10, DateAdded: "2024-01-15", Category: "Food"},
		{ID: 3, Name: "Jacket", Price: 30, DateAdded: "2024-02-20", Category: "Clothing"},
	}
}

func prices(items []Product) []float64 {
	out := make([]float64, 0, len(items))
	for _, p := range items {
		out = append(out, p.Price)
	}
	return out
}

func names(items []Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestSortProducts_PriceBothDirections(t *testing.T) {
	t.Parallel()

	items := sampleProducts()

	asc := SortProducts(items, SortByPrice, Ascending)
	assert.Equal(t, []float64{10, 30, 50}, prices(asc))

	desc := SortProducts(items, SortByPrice, Descending)
	assert.Equal(t, []float64{50, 30, 10}, prices(desc))

	// The input order is untouched.
	assert.Equal(t, []float64{50, 10, 30}, prices(items))
}

func TestSortProducts_StringAndDateKeys(t *testing.T) {
	t.Parallel()

	items := sampleProducts()

	assert.Equal(t, []string{"Apple", "Jacket", "Monitor"}, names(SortProducts(items, SortByName, Ascending)))
	assert.Equal(t, []string{"Jacket", "Apple", "Monitor"}, names(SortProducts(items, SortByCategory, Ascending)))
	assert.Equal(t, []string{"Apple", "Jacket", "Monitor"}, names(SortProducts(items, SortByDateAdded, Ascending)))
	assert.Equal(t, []string{"Monitor", "Jacket", "Apple"}, names(SortProducts(items, SortByDateAdded, Descending)))
}

func TestSortProducts_StableOnTies(t *testing.T) {
	t.Parallel()

	items := []Product{
		{ID: 1, Name: "A", Price: 10},
		{ID: 2, Name: "B", Price: 10},
		{ID: 3, Name: "C", Price: 10},
	}

	sorted := SortProducts(items, SortByPrice, Ascending)
	assert.Equal(t, []string{"A", "B", "C"}, names(sorted))
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	items := sampleProducts()

	food := FilterByCategory(items, "Food")
	assert.Equal(t, []string{"Apple"}, names(food))

	all := FilterByCategory(items, "")
	assert.Len(t, all, 3)

	none := FilterByCategory(items, "Toys")
	assert.Empty(t, none)
}

func TestSortState_Select(t *testing.T) {
	t.Parallel()

	s := SortState{Key: SortByName, Order: Ascending}

	s.Select(SortByName)
	assert.Equal(t, SortState{Key: SortByName, Order: Descending}, s)

	s.Select(SortByName)
	assert.Equal(t, SortState{Key: SortByName, Order: Ascending}, s)

	s.Select(SortByPrice)
	assert.Equal(t, SortState{Key: SortByPrice, Order: Ascending}, s)
}
