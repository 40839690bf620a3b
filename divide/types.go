// Package divide searches threshold space for a partitioning with a target
// number of connected components, and derives representatives from it.
package divide

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/simcluster/core"
)

// DefaultSearchDepth bounds the bisection probes after the two bound probes.
const DefaultSearchDepth = 1000

// Sentinel errors for division.
var (
	// ErrGraphNil indicates a nil graph was passed.
	ErrGraphNil = errors.New("divide: graph is nil")

	// ErrBadTarget indicates a target component count below 1.
	ErrBadTarget = errors.New("divide: target count must be at least 1")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("divide: invalid option supplied")
)

// Option configures Divide.
type Option func(*Options)

// Options holds the search parameters.
type Options struct {
	// SearchDepth is the maximum number of bisection probes.
	SearchDepth int

	err error
}

// DefaultOptions returns Options with SearchDepth = DefaultSearchDepth.
func DefaultOptions() Options {
	return Options{SearchDepth: DefaultSearchDepth}
}

// WithSearchDepth overrides the probe budget.
//
//	d > 0:  use d
//	d == 0: keep DefaultSearchDepth
//	d < 0:  invalid option → ErrOptionViolation
func WithSearchDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: SearchDepth cannot be negative (%d)", ErrOptionViolation, d)
		case d == 0:
			o.SearchDepth = DefaultSearchDepth
		default:
			o.SearchDepth = d
		}
	}
}

// Result is the outcome of a threshold search.
type Result struct {
	// Subgraphs are the components of the chosen partitioning, in discovery order.
	Subgraphs []*core.Graph

	// Threshold is the probe value that produced Subgraphs.
	Threshold float64

	// Probes counts ThresholdPartitioner runs, bound probes included.
	Probes int

	// Exact reports len(Subgraphs) == target.
	Exact bool
}
