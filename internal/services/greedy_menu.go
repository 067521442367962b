package services

import (
	"diet-menu-planner/internal/domain"
	"fmt"
	"math"
)

// DefaultMaxPicks bounds a single selection when no cap is configured.
const DefaultMaxPicks = 10_000

// Bounds for one selection run.
type SelectOptions struct {
	// MaxPicks caps the number of items picked; zero or negative means DefaultMaxPicks.
	MaxPicks int
}

func (o SelectOptions) maxPicks() int {
	if o.MaxPicks <= 0 {
		return DefaultMaxPicks
	}
	return o.MaxPicks
}

// Signature shared by both greedy formulations.
type SelectFunc func(target int, catalog *domain.Catalog, opts SelectOptions) ([]domain.FoodItem, error)

// SelectorFor returns the selector implementing variant v.
func SelectorFor(v domain.Variant) (SelectFunc, error) {
	switch v {
	case domain.VariantIterative:
		return GreedyMenuIterative, nil
	case domain.VariantRecursive:
		return GreedyMenuRecursive, nil
	default:
		return nil, fmt.Errorf("selector for %q: %w", v, domain.ErrUnknownVariant)
	}
}

// Pick a menu with the closest-remaining-calories greedy heuristic (loop form).
//
// Each step scans the catalog in order and takes the item whose calories are
// nearest to the remaining budget; the earliest item wins ties. Selection stops
// as soon as the budget reaches zero or below, so the last pick may overshoot.
// The result is not optimal and earlier picks are never revisited.
func GreedyMenuIterative(target int, catalog *domain.Catalog, opts SelectOptions) ([]domain.FoodItem, error) {
	if err := validateSelection(target, catalog); err != nil {
		return nil, err
	}

	maxPicks := opts.maxPicks()
	remaining := target
	picked := make([]domain.FoodItem, 0, 8)

	for remaining > 0 {
		idx := closestItem(catalog, remaining)
		if idx < 0 {
			break
		}
		item := catalog.At(idx)

		if err := checkProgress(target, remaining, len(picked), maxPicks, item); err != nil {
			return nil, err
		}

		picked = append(picked, item)
		remaining -= item.Calories
	}

	return picked, nil
}

// Pick a menu with the closest-remaining-calories greedy heuristic (recursive form).
//
// Produces exactly the same items in the same order as GreedyMenuIterative,
// one call per pick. Recursion depth is bounded by SelectOptions.MaxPicks.
func GreedyMenuRecursive(target int, catalog *domain.Catalog, opts SelectOptions) ([]domain.FoodItem, error) {
	if err := validateSelection(target, catalog); err != nil {
		return nil, err
	}

	return greedyStep(target, target, catalog, opts.maxPicks(), make([]domain.FoodItem, 0, 8))
}

func greedyStep(
	target int,
	remaining int,
	catalog *domain.Catalog,
	maxPicks int,
	picked []domain.FoodItem,
) ([]domain.FoodItem, error) {
	if remaining <= 0 {
		return picked, nil
	}

	idx := closestItem(catalog, remaining)
	if idx < 0 {
		return picked, nil
	}
	item := catalog.At(idx)

	if err := checkProgress(target, remaining, len(picked), maxPicks, item); err != nil {
		return nil, err
	}

	return greedyStep(target, remaining-item.Calories, catalog, maxPicks, append(picked, item))
}

func validateSelection(target int, catalog *domain.Catalog) error {
	if target <= 0 {
		return fmt.Errorf("select menu: target=%d: %w", target, domain.ErrInvalidTarget)
	}
	if catalog.Len() == 0 {
		return &domain.EmptyCatalogError{Source: catalogSource(catalog)}
	}
	return nil
}

func catalogSource(catalog *domain.Catalog) string {
	if catalog == nil {
		return ""
	}
	return catalog.Source()
}

// closestItem returns the index of the item nearest to remaining, or -1.
// Only a strictly smaller difference replaces the current best.
func closestItem(catalog *domain.Catalog, remaining int) int {
	best := -1
	minDiff := math.MaxInt

	for i := 0; i < catalog.Len(); i++ {
		diff := catalog.At(i).Calories - remaining
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			best = i
		}
	}

	return best
}

// checkProgress guards against selections that can never finish.
// A zero-calorie pick leaves the budget unchanged, so the same item would be
// chosen forever. A negative pick that would overflow the budget is rejected
// before it wraps around. Any other runaway sequence is stopped by the pick cap.
func checkProgress(target, remaining, picks, maxPicks int, item domain.FoodItem) error {
	if item.Calories == 0 {
		return &domain.NonTerminatingInputError{
			Target:    target,
			Remaining: remaining,
			Picks:     picks,
			Item:      item,
			Reason:    "zero-calorie pick",
		}
	}
	if item.Calories < 0 && remaining > math.MaxInt+item.Calories {
		return &domain.NonTerminatingInputError{
			Target:    target,
			Remaining: remaining,
			Picks:     picks,
			Item:      item,
			Reason:    "calorie budget overflow",
		}
	}
	if picks >= maxPicks {
		return &domain.NonTerminatingInputError{
			Target:    target,
			Remaining: remaining,
			Picks:     picks,
			Item:      item,
			Reason:    fmt.Sprintf("selection cap of %d picks reached", maxPicks),
		}
	}
	return nil
}
