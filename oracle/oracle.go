// Package oracle wraps a caller-supplied pairwise similarity function and
// enforces its output contract on every call.
//
// Contract:
//   - A similarity is a real number in [0, +Inf); higher means more alike.
//   - NaN (the Go rendition of "not a number") and negative values are rejected
//     with ErrInvalidMetricResult. +Inf is accepted.
//   - The check runs on every pair, since a metric may be context-dependent.
package oracle

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMetricResult indicates the similarity function produced NaN or a negative value.
var ErrInvalidMetricResult = errors.New("oracle: similarity is not a number in [0, +Inf)")

// Func is the pluggable similarity capability: it scores two opaque items.
type Func func(a, b any) float64

// Similarity is the interface form of Func for metrics that carry state.
type Similarity interface {
	Similarity(a, b any) float64
}

// FromSimilarity adapts a Similarity implementation to a Func.
func FromSimilarity(s Similarity) Func {
	return s.Similarity
}

// Checked is a validated similarity: it returns the score of fn or
// ErrInvalidMetricResult when fn breaks its contract.
type Checked func(a, b any) (float64, error)

// Check wraps fn so that every call validates its result.
//
// Complexity: O(1) on top of fn.
func Check(fn Func) Checked {
	return func(a, b any) (float64, error) {
		s := fn(a, b)
		if err := Validate(s); err != nil {
			return 0, fmt.Errorf("%w: comparing %v to %v", err, a, b)
		}

		return s, nil
	}
}

// Validate reports whether s satisfies the similarity contract.
func Validate(s float64) error {
	if math.IsNaN(s) {
		return fmt.Errorf("%w: got NaN", ErrInvalidMetricResult)
	}
	if s < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidMetricResult, s)
	}

	return nil
}
