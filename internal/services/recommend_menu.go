package services

import (
	"context"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/platform/obs"
	"diet-menu-planner/internal/ports"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type RecommendRequest struct {
	Target  int
	Trials  int
	Options SelectOptions
}

// RecommendMenu loads the catalog, benchmarks both selector variants on the
// same input and assembles the report shown to the user.
// Variants run one after the other on the calling goroutine.
func RecommendMenu(
	ctx context.Context,
	req RecommendRequest,
	provider ports.CatalogProvider,
) (_ *domain.Report, err error) {
	if provider == nil {
		return nil, errors.New("recommend menu: catalog provider is nil")
	}
	if req.Target <= 0 {
		return nil, fmt.Errorf("recommend menu: target=%d: %w", req.Target, domain.ErrInvalidTarget)
	}
	if req.Trials < 1 {
		return nil, fmt.Errorf("recommend menu: trials=%d: %w", req.Trials, domain.ErrInvalidTrials)
	}

	runID := obs.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = obs.WithRunID(ctx, runID)
	}
	defer obs.Time(ctx, "recommend")(&err)

	catalog, err := provider.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommend menu: %w", err)
	}

	results := make(map[domain.Variant]*domain.BenchmarkResult, 2)
	for _, v := range domain.Variants() {
		res, err := MeasureSelection(ctx, BenchmarkRequest{
			Variant: v,
			Target:  req.Target,
			Trials:  req.Trials,
			Options: req.Options,
		}, catalog)
		if err != nil {
			return nil, fmt.Errorf("recommend menu: %w", err)
		}
		results[v] = res
	}

	iter := results[domain.VariantIterative]
	rec := results[domain.VariantRecursive]

	report := &domain.Report{
		RunID:       runID,
		Source:      catalog.Source(),
		CatalogSize: catalog.Len(),
		Dropped:     catalog.Dropped(),
		Target:      req.Target,
		Trials:      req.Trials,
		Iterative:   variantReport(req.Target, iter),
		Recursive:   variantReport(req.Target, rec),
		Comparison:  CompareRuns(iter, rec),
	}

	slog.Info("menu recommended",
		"run_id", runID,
		"target", req.Target,
		"trials", req.Trials,
		"catalog_size", report.CatalogSize,
		"iterative_us", iter.MeanMicros,
		"recursive_us", rec.MeanMicros,
		"faster", report.Comparison.Faster)

	return report, nil
}

func variantReport(target int, res *domain.BenchmarkResult) domain.VariantReport {
	return domain.VariantReport{
		Variant:    res.Variant,
		Items:      res.Items,
		Summary:    Summarize(target, res.Items),
		MeanMicros: res.MeanMicros,
		MinMicros:  res.MinMicros,
		MaxMicros:  res.MaxMicros,
	}
}
