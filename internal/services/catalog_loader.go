package services

import (
	"context"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/platform/obs"
	"diet-menu-planner/internal/ports"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Counts gathered while turning a raw table into a catalog.
type LoadStats struct {
	Rows    int
	Dropped int
}

// BuildCatalog validates a raw table and converts it into a Catalog.
//
// Both required columns must be present in the header, spelled exactly. Rows whose calorie
// cell is missing or not numeric are dropped; in strict mode the first such
// row fails the load instead. Decimal calorie values are truncated toward zero.
func BuildCatalog(source string, table *ports.Table, strict bool) (*domain.Catalog, LoadStats, error) {
	if table == nil {
		return nil, LoadStats{}, fmt.Errorf("build catalog %q: table is nil", source)
	}

	header := slices.Clone(table.Header)

	nameIdx := slices.Index(header, domain.NameColumn)
	calIdx := slices.Index(header, domain.CalorieColumn)

	missing := make([]string, 0, 2)
	if nameIdx < 0 {
		missing = append(missing, domain.NameColumn)
	}
	if calIdx < 0 {
		missing = append(missing, domain.CalorieColumn)
	}
	if len(missing) > 0 {
		return nil, LoadStats{}, &domain.SchemaError{Source: source, Missing: missing, Found: header}
	}

	stats := LoadStats{Rows: len(table.Rows)}
	items := make([]domain.FoodItem, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw := cell(row.Cells, calIdx)
		calories, ok := parseCalories(raw)
		if !ok {
			if strict {
				return nil, stats, &domain.RowError{
					Source: source,
					Line:   row.Line,
					Column: domain.CalorieColumn,
					Value:  raw,
				}
			}
			stats.Dropped++
			continue
		}

		items = append(items, domain.FoodItem{
			Name:     strings.TrimSpace(cell(row.Cells, nameIdx)),
			Calories: calories,
		})
	}

	if len(items) == 0 {
		return nil, stats, &domain.EmptyCatalogError{Source: source, Rows: stats.Rows, Dropped: stats.Dropped}
	}

	catalog, err := domain.NewCatalog(source, items, stats.Dropped)
	if err != nil {
		return nil, stats, fmt.Errorf("build catalog %q: %w", source, err)
	}

	return catalog, stats, nil
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// Largest magnitude a float64 holds without losing integer precision.
const maxExactFloat = 1 << 53

// parseCalories coerces a cell into an integer calorie value.
func parseCalories(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if math.Abs(f) >= maxExactFloat {
		return 0, false
	}

	return int(f), true
}

// CatalogService loads catalogs from a TableSource and memoizes them.
//
// A cached catalog is reused while the source fingerprint is unchanged;
// any change (file size, modification time, DB revision) triggers a re-parse.
type CatalogService struct {
	Source ports.TableSource
	Cache  ports.CatalogCache
	Strict bool
}

func NewCatalogService(source ports.TableSource, cache ports.CatalogCache, strict bool) *CatalogService {
	return &CatalogService{Source: source, Cache: cache, Strict: strict}
}

// Strict and lenient parses of one source are cached separately.
func (s *CatalogService) cacheKey() string {
	if s.Strict {
		return s.Source.Ref() + "#strict"
	}
	return s.Source.Ref()
}

// LoadCatalog returns the validated catalog for the configured source.
func (s *CatalogService) LoadCatalog(ctx context.Context) (_ *domain.Catalog, err error) {
	defer obs.Time(ctx, "catalog.Load")(&err)

	if s.Source == nil {
		return nil, errors.New("load catalog: source is nil")
	}

	ref := s.Source.Ref()
	key := s.cacheKey()

	fingerprint, err := s.Source.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: fingerprint: %w", ref, err)
	}

	if s.Cache != nil {
		if c, ok := s.Cache.Get(key, fingerprint); ok {
			catalogCacheHits.Inc()
			slog.Debug("catalog cache hit", "source", ref, "fingerprint", fingerprint)
			return c, nil
		}
	}
	catalogCacheMisses.Inc()

	table, err := s.Source.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: read table: %w", ref, err)
	}

	catalog, stats, err := BuildCatalog(ref, table, s.Strict)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if stats.Dropped > 0 {
		catalogRowsDropped.Add(float64(stats.Dropped))
		slog.Info("dropped catalog rows with invalid calories",
			"source", ref, "rows", stats.Rows, "dropped", stats.Dropped)
	}

	if s.Cache != nil {
		s.Cache.Put(key, fingerprint, catalog)
	}

	return catalog, nil
}
