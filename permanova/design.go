// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permanova

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"
)

// A design records the dimensions of a balanced experimental design.
//
// Relabeling observations by shuffling preserves the multiset of
// labels, so every permutation trial has the same design as the
// observed labeling.
type design struct {
	n int // observations
	a int // levels of factor A
	b int // levels of factor B; 1 for a one-way design

	// perCell is the number of observations in each combination of
	// levels. For a one-way design, this is the group size.
	perCell int
}

func oneWayDesign[L comparable](levels []L) (design, error) {
	counts := make(map[L]int)
	for _, l := range levels {
		counts[l]++
	}
	d := design{n: len(levels), a: len(counts), b: 1}
	d.perCell = d.n / d.a
	for l, c := range counts {
		if c != d.perCell {
			return design{}, fmt.Errorf("%w: level %v has %d observations, want %d (%d observations in %d levels)", ErrUnbalanced, l, c, d.perCell, d.n, d.a)
		}
	}
	return d, nil
}

func twoWayDesign[FA, FB comparable](levels []Cell[FA, FB]) (design, error) {
	as := make(map[FA]struct{})
	bs := make(map[FB]struct{})
	counts := make(map[Cell[FA, FB]]int)
	for _, l := range levels {
		as[l.A] = struct{}{}
		bs[l.B] = struct{}{}
		counts[l]++
	}
	d := design{n: len(levels), a: len(as), b: len(bs)}
	cells := d.a * d.b
	if len(counts) != cells {
		return design{}, fmt.Errorf("%w: %d of %d×%d level combinations have observations", ErrUnbalanced, len(counts), d.a, d.b)
	}
	d.perCell = d.n / cells
	for l, c := range counts {
		if c != d.perCell {
			return design{}, fmt.Errorf("%w: cell (%v, %v) has %d observations, want %d (%d observations in %d cells)", ErrUnbalanced, l.A, l.B, c, d.perCell, d.n, cells)
		}
	}
	return d, nil
}

// lrelabelings returns the log of the number of distinct ways to
// split n observations into the given number of equal-sized groups.
func lrelabelings(n, groups int) float64 {
	size := n / groups
	var l float64
	for k := 0; k < groups-1; k++ {
		l += mathx.Lchoose(n-k*size, size)
	}
	return l
}

// checkRelabelings returns a warning if fewer than trials distinct
// relabelings of n observations into groups exist, so the trials must
// repeat relabelings.
func checkRelabelings(what string, n, groups, trials int) error {
	if trials == 0 {
		return nil
	}
	l := lrelabelings(n, groups)
	if l >= math.Log(float64(trials)) {
		return nil
	}
	return fmt.Errorf("%s: only %.0f distinct relabelings exist, so %d permutations repeat some", what, math.Round(math.Exp(l)), trials)
}
