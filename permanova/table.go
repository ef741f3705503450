// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permanova

import (
	"golang.org/x/stats/distmat"
	"gonum.org/v1/gonum/mat"
)

// A Table is the partition of the total sum of squared distances of a
// design into the contributions of each source of variation.
//
// For a one-way design, LevelsB is 1 and B and Interaction are 0.
//
// Total == A + B + Interaction + Residual holds by construction, up
// to floating-point rounding. The individual sums are not clamped:
// rounding can make Interaction slightly negative, and a non-Euclidean
// dissimilarity can make it substantially negative.
type Table struct {
	// N is the number of observations.
	N int

	// LevelsA and LevelsB are the number of distinct levels of
	// each factor.
	LevelsA, LevelsB int

	// Total is the total sum of squares, SST.
	Total float64

	// A and B are the sums of squares of the main effects.
	A, B float64

	// Interaction is the A×B interaction sum of squares.
	Interaction float64

	// Residual is the within-group (one-way) or within-cell
	// (two-way) sum of squares.
	Residual float64
}

// DFA returns the degrees of freedom of factor A.
func (t Table) DFA() int { return t.LevelsA - 1 }

// DFB returns the degrees of freedom of factor B.
func (t Table) DFB() int { return t.LevelsB - 1 }

// DFInteraction returns the degrees of freedom of the interaction.
func (t Table) DFInteraction() int { return (t.LevelsA - 1) * (t.LevelsB - 1) }

// DFResidual returns the residual degrees of freedom.
func (t Table) DFResidual() int { return t.N - t.LevelsA*t.LevelsB }

func (t Table) pseudoF(ss float64, df int) float64 {
	return (ss / float64(df)) / (t.Residual / float64(t.DFResidual()))
}

// FA returns the pseudo-F statistic of factor A. For a one-way design,
// this is the statistic of the grouping factor.
func (t Table) FA() float64 { return t.pseudoF(t.A, t.DFA()) }

// FB returns the pseudo-F statistic of factor B.
func (t Table) FB() float64 { return t.pseudoF(t.B, t.DFB()) }

// FInteraction returns the pseudo-F statistic of the interaction.
func (t Table) FInteraction() float64 { return t.pseudoF(t.Interaction, t.DFInteraction()) }

func oneWayTable[L comparable](k *kernel, d design, levels []L) Table {
	t := Table{N: d.n, LevelsA: d.a, LevelsB: 1}
	t.Total = k.sum(allPairs, float64(d.n))
	t.Residual = k.sum(func(i, j int) bool {
		return levels[i] == levels[j]
	}, float64(d.perCell))
	t.A = t.Total - t.Residual
	return t
}

func twoWayTable[FA, FB comparable](k *kernel, d design, levels []Cell[FA, FB]) Table {
	t := Table{N: d.n, LevelsA: d.a, LevelsB: d.b}
	t.Total = k.sum(allPairs, float64(d.n))
	t.Residual = k.sum(func(i, j int) bool {
		return levels[i] == levels[j]
	}, float64(d.perCell))
	withinA := k.sum(func(i, j int) bool {
		return levels[i].A == levels[j].A
	}, float64(d.b*d.perCell))
	withinB := k.sum(func(i, j int) bool {
		return levels[i].B == levels[j].B
	}, float64(d.a*d.perCell))
	t.A = t.Total - withinA
	t.B = t.Total - withinB
	t.Interaction = t.Total - t.A - t.B - t.Residual
	return t
}

// DecomposeOneWay partitions the sum of squared distances of dm by the
// grouping given by levels. levels[i] is the group of observation i,
// which is row and column i of dm.
//
// It returns an error wrapping distmat.ErrShape if dm is not
// len(levels)×len(levels), or wrapping ErrUnbalanced if the groups
// don't all have the same size.
func DecomposeOneWay[L comparable](dm mat.Symmetric, levels []L) (Table, error) {
	if err := distmat.CheckDim(dm, len(levels)); err != nil {
		return Table{}, err
	}
	d, err := oneWayDesign(levels)
	if err != nil {
		return Table{}, err
	}
	return oneWayTable(newKernel(dm), d, levels), nil
}

// DecomposeTwoWay partitions the sum of squared distances of dm by
// the two-factor design given by levels.
//
// It returns an error wrapping distmat.ErrShape if dm is not
// len(levels)×len(levels), or wrapping ErrUnbalanced if not every
// combination of factor levels has the same number of observations.
func DecomposeTwoWay[FA, FB comparable](dm mat.Symmetric, levels []Cell[FA, FB]) (Table, error) {
	if err := distmat.CheckDim(dm, len(levels)); err != nil {
		return Table{}, err
	}
	d, err := twoWayDesign(levels)
	if err != nil {
		return Table{}, err
	}
	return twoWayTable(newKernel(dm), d, levels), nil
}

// FOneWay returns the one-way pseudo-F statistic of dm grouped by
// levels. See DecomposeOneWay.
func FOneWay[L comparable](dm mat.Symmetric, levels []L) (float64, error) {
	t, err := DecomposeOneWay(dm, levels)
	if err != nil {
		return 0, err
	}
	return t.FA(), nil
}

// FTwoWay returns the interaction, factor A, and factor B pseudo-F
// statistics of dm for the design given by levels. See
// DecomposeTwoWay.
func FTwoWay[FA, FB comparable](dm mat.Symmetric, levels []Cell[FA, FB]) (fi, fa, fb float64, err error) {
	t, err := DecomposeTwoWay(dm, levels)
	if err != nil {
		return 0, 0, 0, err
	}
	return t.FInteraction(), t.FA(), t.FB(), nil
}
