package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTarget  = errors.New("target calories must be positive")
	ErrInvalidTrials  = errors.New("trials must be at least 1")
	ErrUnknownVariant = errors.New("unknown selector variant")
)

// SchemaError reports required columns missing from a tabular source.
type SchemaError struct {
	Source  string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"catalog %q: missing required columns [%s] (found [%s])",
		e.Source, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "),
	)
}

// EmptyCatalogError reports a source that produced no usable items.
type EmptyCatalogError struct {
	Source  string
	Rows    int
	Dropped int
}

func (e *EmptyCatalogError) Error() string {
	if e.Rows == 0 && e.Dropped == 0 {
		return fmt.Sprintf("catalog %q: no food items", e.Source)
	}
	return fmt.Sprintf(
		"catalog %q: no food items left after dropping %d of %d rows with invalid %s",
		e.Source, e.Dropped, e.Rows, CalorieColumn,
	)
}

// RowError reports an uncoercible row when the catalog is loaded in strict mode.
type RowError struct {
	Source string
	Line   int
	Column string
	Value  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("catalog %q line %d: column %s: cannot use %q as calories", e.Source, e.Line, e.Column, e.Value)
}

// NonTerminatingInputError reports a selection that cannot reach the target.
type NonTerminatingInputError struct {
	Target    int
	Remaining int
	Picks     int
	Item      FoodItem
	Reason    string
}

func (e *NonTerminatingInputError) Error() string {
	return fmt.Sprintf(
		"selection for target %d does not terminate: %s (picks=%d remaining=%d last=%q/%d)",
		e.Target, e.Reason, e.Picks, e.Remaining, e.Item.Name, e.Item.Calories,
	)
}
