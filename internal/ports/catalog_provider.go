package ports

import (
	"context"
	"diet-menu-planner/internal/domain"
)

// Port: anything that can hand out a validated catalog.
type CatalogProvider interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}
