package services

import (
	"context"
	"diet-menu-planner/internal/domain"
	"diet-menu-planner/internal/platform/obs"
	"fmt"
	"time"
)

type BenchmarkRequest struct {
	Variant domain.Variant
	Target  int
	Trials  int
	Options SelectOptions
}

// MeasureSelection runs one selector variant Trials times and reports the
// mean wall-clock time in microseconds.
//
// Every trial recomputes the selection from scratch; the returned items come
// from the last trial. The catalog is only read. The call blocks for the full
// duration of all trials.
func MeasureSelection(
	ctx context.Context,
	req BenchmarkRequest,
	catalog *domain.Catalog,
) (_ *domain.BenchmarkResult, err error) {
	defer obs.Time(ctx, "benchmark."+req.Variant.String())(&err)

	if req.Trials < 1 {
		return nil, fmt.Errorf("measure selection: trials=%d: %w", req.Trials, domain.ErrInvalidTrials)
	}

	selectFn, err := SelectorFor(req.Variant)
	if err != nil {
		return nil, fmt.Errorf("measure selection: %w", err)
	}

	samples := make([]time.Duration, 0, req.Trials)
	var items []domain.FoodItem

	for trial := 0; trial < req.Trials; trial++ {
		start := time.Now()
		picked, err := selectFn(req.Target, catalog, req.Options)
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("measure selection: %s trial %d: %w", req.Variant, trial+1, err)
		}

		if elapsed < 0 {
			elapsed = 0
		}
		samples = append(samples, elapsed)
		items = picked

		selectionTrialDuration.WithLabelValues(req.Variant.String()).Observe(elapsed.Seconds())
	}

	selectionItems.WithLabelValues(req.Variant.String()).Set(float64(len(items)))

	var total, lo, hi time.Duration
	for i, d := range samples {
		total += d
		if i == 0 || d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}

	return &domain.BenchmarkResult{
		Variant:    req.Variant,
		Items:      items,
		Samples:    samples,
		MeanMicros: micros(total) / float64(len(samples)),
		MinMicros:  micros(lo),
		MaxMicros:  micros(hi),
	}, nil
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}
