package services

import (
	"context"
	"diet-menu-planner/internal/adapters/catalog/catalogtest"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/platform/obs"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (s *stubProvider) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	s.calls++
	return s.catalog, s.err
}

func TestRecommendMenu(t *testing.T) {
	src := catalogtest.NewStaticTableSource("menu", menuHeader,
		[]string{"1", "Nasi Goreng", "300"},
		[]string{"2", "Es Teh", "oops"},
		[]string{"3", "Rendang", "500"},
	)
	provider := NewCatalogService(src, nil, false)

	ctx := obs.WithRunID(context.Background(), "run-1")
	report, err := RecommendMenu(ctx, RecommendRequest{Target: 650, Trials: 3}, provider)
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "menu", report.Source)
	assert.Equal(t, 2, report.CatalogSize)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 650, report.Target)
	assert.Equal(t, 3, report.Trials)

	for _, vr := range []domain.VariantReport{report.Iterative, report.Recursive} {
		assert.Equal(t, []int{500, 300}, caloriesOf(vr.Items))
		assert.Equal(t, domain.Summary{Total: 800, Diff: 150, Count: 2, Status: "Exceeded by 150"}, vr.Summary)
	}
	assert.Equal(t, domain.VariantIterative, report.Iterative.Variant)
	assert.Equal(t, domain.VariantRecursive, report.Recursive.Variant)
	assert.True(t, report.Comparison.SameTotal)
	assert.Contains(t, []string{"Iterative", "Recursive", FasterBalanced}, report.Comparison.Faster)
}

func TestRecommendMenuGeneratesRunID(t *testing.T) {
	provider := &stubProvider{catalog: catalogOf(t, 100)}

	report, err := RecommendMenu(context.Background(), RecommendRequest{Target: 100, Trials: 1}, provider)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
}

func TestRecommendMenuValidatesBeforeLoading(t *testing.T) {
	provider := &stubProvider{catalog: catalogOf(t, 100)}
	ctx := context.Background()

	_, err := RecommendMenu(ctx, RecommendRequest{Target: 0, Trials: 1}, provider)
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = RecommendMenu(ctx, RecommendRequest{Target: 100, Trials: 0}, provider)
	assert.ErrorIs(t, err, domain.ErrInvalidTrials)

	assert.Equal(t, 0, provider.calls)

	_, err = RecommendMenu(ctx, RecommendRequest{Target: 100, Trials: 1}, nil)
	assert.Error(t, err)
}

func TestRecommendMenuPropagatesLoadErrors(t *testing.T) {
	loadErr := &domain.SchemaError{Source: "menu", Missing: []string{domain.CalorieColumn}}
	provider := &stubProvider{err: loadErr}

	_, err := RecommendMenu(context.Background(), RecommendRequest{Target: 100, Trials: 1}, provider)

	var schemaErr *domain.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}
