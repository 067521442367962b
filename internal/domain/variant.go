package domain

import "fmt"

// Variant names one formulation of the greedy selector.
type Variant string

const (
	VariantIterative Variant = "iterative"
	VariantRecursive Variant = "recursive"
)

// Variants returns all selector variants in report order.
func Variants() []Variant {
	return []Variant{VariantIterative, VariantRecursive}
}

func (v Variant) IsValid() bool {
	switch v {
	case VariantIterative, VariantRecursive:
		return true
	default:
		return false
	}
}

// Label returns the display name used in reports.
func (v Variant) Label() string {
	switch v {
	case VariantIterative:
		return "Iterative"
	case VariantRecursive:
		return "Recursive"
	default:
		return fmt.Sprintf("Unknown(%s)", string(v))
	}
}

func (v Variant) String() string { return string(v) }
