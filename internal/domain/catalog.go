package domain

import "slices"

// Represents an ordered, read-only food catalog built once per load.
// Iteration order is the order rows were loaded in and decides
// tie-breaking during selection, so it is never reordered.
type Catalog struct {
	source  string
	items   []FoodItem
	dropped int
}

// NewCatalog copies items into a new Catalog.
// An empty item list is rejected with EmptyCatalogError.
func NewCatalog(source string, items []FoodItem, dropped int) (*Catalog, error) {
	if len(items) == 0 {
		return nil, &EmptyCatalogError{Source: source, Dropped: dropped}
	}

	return &Catalog{
		source:  source,
		items:   slices.Clone(items),
		dropped: dropped,
	}, nil
}

// Source returns the reference the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at position i in load order.
func (c *Catalog) At(i int) FoodItem { return c.items[i] }

// Dropped returns how many source rows were skipped during coercion.
func (c *Catalog) Dropped() int { return c.dropped }

// Items returns a copy of the catalog contents.
func (c *Catalog) Items() []FoodItem {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// Head returns a copy of at most n leading items.
func (c *Catalog) Head(n int) []FoodItem {
	if c == nil || n <= 0 {
		return []FoodItem{}
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	return slices.Clone(c.items[:n])
}
