package cache

import (
	"diet-menu-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T, source string, items ...domain.FoodItem) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog(source, items, 0)
	require.NoError(t, err)
	return c
}

func TestMemoryCatalogCacheHitRequiresSameFingerprint(t *testing.T) {
	c := NewMemoryCatalogCache()
	cat := mustCatalog(t, "menu.csv", domain.FoodItem{Name: "Nasi", Calories: 200})

	c.Put("menu.csv", "v1", cat)

	got, ok := c.Get("menu.csv", "v1")
	require.True(t, ok)
	assert.Same(t, cat, got)

	_, ok = c.Get("menu.csv", "v2")
	assert.False(t, ok, "stale fingerprint must miss")

	_, ok = c.Get("other.csv", "v1")
	assert.False(t, ok)
}

func TestMemoryCatalogCachePutReplaces(t *testing.T) {
	c := NewMemoryCatalogCache()
	old := mustCatalog(t, "menu.csv", domain.FoodItem{Name: "Nasi", Calories: 200})
	fresh := mustCatalog(t, "menu.csv", domain.FoodItem{Name: "Soto", Calories: 300})

	c.Put("menu.csv", "v1", old)
	c.Put("menu.csv", "v2", fresh)

	got, ok := c.Get("menu.csv", "v2")
	require.True(t, ok)
	assert.Same(t, fresh, got)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCatalogCacheInvalidate(t *testing.T) {
	c := NewMemoryCatalogCache()
	c.Put("menu.csv", "v1", mustCatalog(t, "menu.csv", domain.FoodItem{Name: "Nasi", Calories: 200}))

	c.Invalidate("menu.csv")

	_, ok := c.Get("menu.csv", "v1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCatalogCacheIgnoresNil(t *testing.T) {
	c := NewMemoryCatalogCache()
	c.Put("menu.csv", "v1", nil)
	c.Put("", "v1", mustCatalog(t, "x", domain.FoodItem{Name: "a", Calories: 1}))
	assert.Equal(t, 0, c.Len())
}
