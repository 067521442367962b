package domain

import "time"

// Outcome of a benchmark run for one selector variant.
// Items come from the final trial; all trials select the same items.
type BenchmarkResult struct {
	Variant    Variant
	Items      []FoodItem
	Samples    []time.Duration
	MeanMicros float64
	MinMicros  float64
	MaxMicros  float64
}

// Derived totals for one selection against its target.
type Summary struct {
	Total  int    `json:"total_kcal" yaml:"total_kcal"`
	Diff   int    `json:"diff_kcal" yaml:"diff_kcal"`
	Count  int    `json:"item_count" yaml:"item_count"`
	Status string `json:"status" yaml:"status"`
}

// Cross-variant verdict between the iterative and recursive runs.
type Comparison struct {
	Faster          string  `json:"faster" yaml:"faster"`
	SameTotal       bool    `json:"same_total" yaml:"same_total"`
	TimeDeltaMicros float64 `json:"time_delta_us" yaml:"time_delta_us"`
}

// VariantReport is the presentation-ready view of one variant.
type VariantReport struct {
	Variant    Variant    `json:"variant" yaml:"variant"`
	Items      []FoodItem `json:"items" yaml:"items"`
	Summary    Summary    `json:"summary" yaml:"summary"`
	MeanMicros float64    `json:"mean_us" yaml:"mean_us"`
	MinMicros  float64    `json:"min_us" yaml:"min_us"`
	MaxMicros  float64    `json:"max_us" yaml:"max_us"`
}

// Report is the full result of one recommendation run.
// It is derived data and is never persisted.
type Report struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	Source      string        `json:"source" yaml:"source"`
	CatalogSize int           `json:"catalog_size" yaml:"catalog_size"`
	Dropped     int           `json:"dropped_rows" yaml:"dropped_rows"`
	Target      int           `json:"target_kcal" yaml:"target_kcal"`
	Trials      int           `json:"trials" yaml:"trials"`
	Iterative   VariantReport `json:"iterative" yaml:"iterative"`
	Recursive   VariantReport `json:"recursive" yaml:"recursive"`
	Comparison  Comparison    `json:"comparison" yaml:"comparison"`
}
