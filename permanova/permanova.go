// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package permanova implements permutational multivariate analysis
// of variance over a precomputed distance matrix.
//
// PERMANOVA tests whether the distances between groups of
// observations are larger than the distances within groups. The test
// statistic is a pseudo-F ratio computed directly from sums of squared
// distances, and its significance is estimated by recomputing it under
// random relabelings of the observations. The method is due to
// Anderson, "A new method for non-parametric multivariate analysis of
// variance", Austral Ecology 26 (2001).
//
// OneWay tests a single grouping factor. TwoWay tests the two main
// effects and the interaction of a two-factor crossed design. Both
// require a balanced design: every group (or cell) must contain the
// same number of observations.
//
// Degenerate designs are not rejected. A design with a single level,
// or with no residual degrees of freedom, produces NaN or infinite
// statistics, and these propagate to the results unchanged.
//
// Results carry a list of warnings, captured as an []error value.
// These don't prevent analysis, but should be presented to the user
// along with the results.
package permanova

import (
	"errors"
	"math/rand"
	"time"
)

var (
	// ErrUnbalanced is returned (wrapped) when the groups of an
	// analysis don't all have the same number of observations.
	//
	// The pseudo-F formulas assume integer group sizes. Unbalanced
	// labels are rejected rather than analyzed with fractional group
	// sizes, which yields numerically meaningless statistics.
	ErrUnbalanced = errors.New("unbalanced design")

	// ErrPermutations is returned (wrapped) when Options requests
	// a negative number of permutations.
	ErrPermutations = errors.New("invalid permutation count")
)

// Options configures a permutation test.
//
// This should be initialized from DefaultOptions because it may be
// extended with other fields in the future.
type Options struct {
	// Permutations is the number of random relabelings used to
	// estimate each p-value.
	//
	// If this is 0, no trials are run and p-values are NaN.
	Permutations int

	// Rand is the source of random shuffles. If nil, a source
	// seeded from the current time is used.
	//
	// A *rand.Rand is not safe for concurrent use, so concurrent
	// tests must not share one.
	Rand *rand.Rand
}

// DefaultOptions contains a reasonable set of defaults for Options.
var DefaultOptions = Options{
	Permutations: 200,
}

func (o *Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// A Cell is the level assignment of one observation in a two-way
// design: its level of factor A and its level of factor B.
type Cell[FA, FB comparable] struct {
	A FA
	B FB
}

// Cells pairs up the factor A and factor B levels of each
// observation. as and bs must have the same length.
func Cells[FA, FB comparable](as []FA, bs []FB) []Cell[FA, FB] {
	if len(as) != len(bs) {
		panic("permanova: factor level sequences have different lengths")
	}
	cells := make([]Cell[FA, FB], len(as))
	for i := range cells {
		cells[i] = Cell[FA, FB]{as[i], bs[i]}
	}
	return cells
}
