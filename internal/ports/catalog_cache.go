package ports

import "diet-menu-planner/internal/domain"

// Contract for memoizing parsed catalogs per source reference.
type CatalogCache interface {
	// Return the catalog cached under key if it was stored with the same fingerprint.
	Get(key string, fingerprint string) (*domain.Catalog, bool)
	// Store a catalog under key, replacing any older version.
	Put(key string, fingerprint string, catalog *domain.Catalog)
	// Drop the entry stored under key.
	Invalidate(key string)
}
