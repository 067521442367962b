package cache

import (
	"diet-menu-planner/internal/domain"
	"sync"
)

type catalogEntry struct {
	fingerprint string
	catalog     *domain.Catalog
}

// MemoryCatalogCache keeps parsed catalogs for the life of the process.
// An entry is only returned while the caller's fingerprint matches the one it
// was stored with, so a changed source is re-parsed instead of served stale.
type MemoryCatalogCache struct {
	mu      sync.RWMutex
	entries map[string]catalogEntry
}

func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{entries: make(map[string]catalogEntry)}
}

// Fetch the cached catalog for key if its fingerprint is still current.
func (c *MemoryCatalogCache) Get(key string, fingerprint string) (*domain.Catalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.fingerprint != fingerprint {
		return nil, false
	}
	return e.catalog, true
}

// Store a catalog, replacing any older version under the same key.
func (c *MemoryCatalogCache) Put(key string, fingerprint string, catalog *domain.Catalog) {
	if key == "" || catalog == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = catalogEntry{fingerprint: fingerprint, catalog: catalog}
}

func (c *MemoryCatalogCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of cached catalogs.
func (c *MemoryCatalogCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
