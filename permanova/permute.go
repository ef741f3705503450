// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permanova

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/stats/distmat"
	"gonum.org/v1/gonum/mat"
)

// A Test is the result of a permutation test of one pseudo-F
// statistic.
type Test struct {
	// F is the observed pseudo-F statistic.
	F float64

	// P is the fraction of permutation trials whose statistic
	// exceeded F. If P is less than a threshold alpha (typically
	// 0.05), then we reject the null hypothesis that the factor has
	// no effect.
	//
	// P is NaN if no trials were run.
	P float64

	// Permutations is the number of trials P was estimated from.
	Permutations int

	// Null summarizes the statistics of the permutation trials.
	Null NullSummary
}

// String summarizes the test. The general form of this string is
// "F=F.FFF p=0.PPP n=N", where N is the number of permutations.
func (t Test) String() string {
	return fmt.Sprintf("F=%.3f p=%.3f n=%d", t.F, t.P, t.Permutations)
}

// A NullSummary summarizes the distribution of a statistic under
// random relabeling.
type NullSummary struct {
	Mean, StdDev float64

	// Lo and Hi are the smallest and largest trial statistics.
	Lo, Hi float64

	// Q95 is the 95th percentile of the trial statistics.
	Q95 float64
}

func summarizeNull(xs []float64) NullSummary {
	if len(xs) == 0 {
		nan := math.NaN()
		return NullSummary{nan, nan, nan, nan, nan}
	}
	s := stats.Sample{Xs: xs}
	s.Sort()
	lo, hi := s.Bounds()
	return NullSummary{
		Mean:   s.Mean(),
		StdDev: s.StdDev(),
		Lo:     lo,
		Hi:     hi,
		Q95:    s.Quantile(0.95),
	}
}

// A OneWayResult is the result of a one-way PERMANOVA.
type OneWayResult struct {
	Test

	// Table is the decomposition of the observed labeling.
	Table Table

	// Warnings is a list of warnings about this result.
	Warnings []error
}

// A TwoWayResult is the result of a two-way PERMANOVA.
type TwoWayResult struct {
	// Interaction, A, and B are the tests of the A×B
	// interaction and of the two main effects.
	Interaction, A, B Test

	// Table is the decomposition of the observed labeling.
	Table Table

	// Warnings is a list of warnings about this result.
	Warnings []error
}

// permute runs trials permutation trials. Each trial calls shuffle to
// relabel the observations and then stat to compute the statistic of
// the relabeling. It returns the number of trials for which exceeds
// reports true, and the trial statistics.
func permute(trials int, shuffle func(), stat func() float64, exceeds func(f float64) bool) (int, []float64) {
	above := 0
	null := make([]float64, 0, trials)
	for i := 0; i < trials; i++ {
		shuffle()
		f := stat()
		if exceeds(f) {
			above++
		}
		null = append(null, f)
	}
	return above, null
}

func newTest(f float64, above int, null []float64) Test {
	return Test{
		F:            f,
		P:            float64(above) / float64(len(null)),
		Permutations: len(null),
		Null:         summarizeNull(null),
	}
}

func shuffle[T any](r *rand.Rand, xs []T) {
	r.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}

func prepare(opts *Options) (*Options, *rand.Rand, error) {
	if opts == nil {
		opts = &DefaultOptions
	}
	if opts.Permutations < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrPermutations, opts.Permutations)
	}
	return opts, opts.rng(), nil
}

// OneWay performs a one-way PERMANOVA of the distance matrix dm
// grouped by levels, where levels[i] is the group of the observation
// in row and column i of dm.
//
// dm must be a len(levels)×len(levels) matrix. Only its upper triangle
// is read. Each group must have the same number of observations.
//
// The p-value is the fraction of trials, each an independent uniform
// shuffle of levels, whose pseudo-F statistic is at least the
// observed statistic. If opts is nil, DefaultOptions is used.
func OneWay[L comparable](dm [][]float64, levels []L, opts *Options) (*OneWayResult, error) {
	m, err := distmat.New(dm, len(levels))
	if err != nil {
		return nil, err
	}
	return oneWay(m, levels, opts, distmat.Check(dm))
}

// OneWaySym is like OneWay, but takes the distance matrix as a
// mat.Symmetric.
func OneWaySym[L comparable](dm mat.Symmetric, levels []L, opts *Options) (*OneWayResult, error) {
	if err := distmat.CheckDim(dm, len(levels)); err != nil {
		return nil, err
	}
	return oneWay(dm, levels, opts, distmat.CheckSym(dm))
}

func oneWay[L comparable](dm mat.Symmetric, levels []L, opts *Options, warnings []error) (*OneWayResult, error) {
	opts, r, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	d, err := oneWayDesign(levels)
	if err != nil {
		return nil, err
	}
	if w := checkRelabelings("groups", d.n, d.a, opts.Permutations); w != nil {
		warnings = append(warnings, w)
	}

	k := newKernel(dm)
	obs := oneWayTable(k, d, levels)
	f0 := obs.FA()

	trial := append([]L(nil), levels...)
	above, null := permute(opts.Permutations,
		func() { shuffle(r, trial) },
		func() float64 { return oneWayTable(k, d, trial).FA() },
		func(f float64) bool { return f >= f0 })

	return &OneWayResult{
		Test:     newTest(f0, above, null),
		Table:    obs,
		Warnings: warnings,
	}, nil
}

// TwoWay performs a two-way crossed PERMANOVA of the distance matrix
// dm for the design given by levels, where levels[i] gives the factor
// A and factor B levels of the observation in row and column i of dm.
//
// dm must be a len(levels)×len(levels) matrix. Only its upper triangle
// is read. Every combination of factor levels must have the same
// number of observations.
//
// Each of the three statistics is tested with its own sequence of
// trials. The interaction test shuffles the (A, B) level pairs
// jointly and counts trials whose statistic is at least the observed
// one. The factor A test shuffles only the A levels, holding the B
// levels in place, and counts trials whose statistic strictly
// exceeds the observed one; the factor B test does the same with the
// roles of A and B exchanged. If opts is nil, DefaultOptions is used.
func TwoWay[FA, FB comparable](dm [][]float64, levels []Cell[FA, FB], opts *Options) (*TwoWayResult, error) {
	m, err := distmat.New(dm, len(levels))
	if err != nil {
		return nil, err
	}
	return twoWay(m, levels, opts, distmat.Check(dm))
}

// TwoWaySym is like TwoWay, but takes the distance matrix as a
// mat.Symmetric.
func TwoWaySym[FA, FB comparable](dm mat.Symmetric, levels []Cell[FA, FB], opts *Options) (*TwoWayResult, error) {
	if err := distmat.CheckDim(dm, len(levels)); err != nil {
		return nil, err
	}
	return twoWay(dm, levels, opts, distmat.CheckSym(dm))
}

func twoWay[FA, FB comparable](dm mat.Symmetric, levels []Cell[FA, FB], opts *Options, warnings []error) (*TwoWayResult, error) {
	opts, r, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	d, err := twoWayDesign(levels)
	if err != nil {
		return nil, err
	}
	for _, c := range []struct {
		what   string
		groups int
	}{{"cells", d.a * d.b}, {"factor A", d.a}, {"factor B", d.b}} {
		if w := checkRelabelings(c.what, d.n, c.groups, opts.Permutations); w != nil {
			warnings = append(warnings, w)
		}
	}

	k := newKernel(dm)
	obs := twoWayTable(k, d, levels)
	fi0, fa0, fb0 := obs.FInteraction(), obs.FA(), obs.FB()
	res := &TwoWayResult{Table: obs, Warnings: warnings}

	// Interaction: relabel whole cells.
	trial := append([]Cell[FA, FB](nil), levels...)
	above, null := permute(opts.Permutations,
		func() { shuffle(r, trial) },
		func() float64 { return twoWayTable(k, d, trial).FInteraction() },
		func(f float64) bool { return f >= fi0 })
	res.Interaction = newTest(fi0, above, null)

	// Factor A: relabel A, holding B in its original order.
	as := make([]FA, len(levels))
	for i, l := range levels {
		as[i] = l.A
	}
	copy(trial, levels)
	above, null = permute(opts.Permutations,
		func() {
			shuffle(r, as)
			for i := range trial {
				trial[i].A = as[i]
			}
		},
		func() float64 { return twoWayTable(k, d, trial).FA() },
		func(f float64) bool { return f > fa0 })
	res.A = newTest(fa0, above, null)

	// Factor B: relabel B, holding A in its original order.
	bs := make([]FB, len(levels))
	for i, l := range levels {
		bs[i] = l.B
	}
	copy(trial, levels)
	above, null = permute(opts.Permutations,
		func() {
			shuffle(r, bs)
			for i := range trial {
				trial[i].B = bs[i]
			}
		},
		func() float64 { return twoWayTable(k, d, trial).FB() },
		func(f float64) bool { return f > fb0 })
	res.B = newTest(fb0, above, null)

	return res, nil
}
