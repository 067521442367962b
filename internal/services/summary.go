package services

import (
	"diet-menu-planner/internal/domain"
	"fmt"
	"math"
)

const (
	StatusExact = "Exact"

	FasterBalanced = "Balanced"
)

// Summarize totals the picked items and labels the result against target.
// The difference is signed as total - target.
func Summarize(target int, items []domain.FoodItem) domain.Summary {
	total := totalCalories(items)
	diff := total - target

	return domain.Summary{
		Total:  total,
		Diff:   diff,
		Count:  len(items),
		Status: StatusLabel(diff),
	}
}

// StatusLabel renders the signed calorie difference for display.
func StatusLabel(diff int) string {
	switch {
	case diff == 0:
		return StatusExact
	case diff > 0:
		return fmt.Sprintf("Exceeded by %d", diff)
	default:
		return fmt.Sprintf("Short by %d", diff)
	}
}

// CompareRuns derives the faster variant and whether both picked the same total.
// Equal mean times are reported as balanced.
func CompareRuns(iterative, recursive *domain.BenchmarkResult) domain.Comparison {
	faster := FasterBalanced
	switch {
	case iterative.MeanMicros < recursive.MeanMicros:
		faster = domain.VariantIterative.Label()
	case recursive.MeanMicros < iterative.MeanMicros:
		faster = domain.VariantRecursive.Label()
	}

	return domain.Comparison{
		Faster:          faster,
		SameTotal:       totalCalories(iterative.Items) == totalCalories(recursive.Items),
		TimeDeltaMicros: math.Abs(iterative.MeanMicros - recursive.MeanMicros),
	}
}

func totalCalories(items []domain.FoodItem) int {
	total := 0
	for _, it := range items {
		total += it.Calories
	}
	return total
}
