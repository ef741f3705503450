// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package distmat adapts precomputed distance matrices for analysis.
//
// A distance matrix is an n×n matrix of non-negative dissimilarities
// that is symmetric and has a zero diagonal. This package does not
// construct distance matrices from raw observations; it only checks
// their shape and converts them to a gonum mat.Symmetric.
//
// Shape violations are errors. Other precondition violations (an
// asymmetric matrix, a nonzero diagonal, negative distances) don't
// prevent analysis and are reported as warnings, captured as an
// []error value, which should be presented to the user along with
// analysis results.
package distmat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned (wrapped) when a distance matrix is not square
// or its dimension disagrees with the number of observations.
var ErrShape = errors.New("distance matrix shape mismatch")

// New returns a copy of the n×n matrix rows as a symmetric matrix.
//
// Only the upper triangle of rows (including the diagonal) is used.
// rows is not modified and is not retained.
func New(rows [][]float64, n int) (*mat.SymDense, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrShape)
	}
	if len(rows) != n {
		return nil, fmt.Errorf("%w: have %d rows, want %d", ErrShape, len(rows), n)
	}
	data := make([]float64, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(row), n)
		}
		copy(data[i*n:], row)
	}
	return mat.NewSymDense(n, data), nil
}

// CheckDim returns an error wrapping ErrShape if m is not n×n.
func CheckDim(m mat.Symmetric, n int) error {
	if n == 0 {
		return fmt.Errorf("%w: no observations", ErrShape)
	}
	if d := m.SymmetricDim(); d != n {
		return fmt.Errorf("%w: matrix is %d×%d, want %d×%d", ErrShape, d, d, n, n)
	}
	return nil
}

// Check returns warnings for the square matrix rows if it is not
// symmetric, has a nonzero diagonal, or contains negative distances.
// It returns nil if rows is a valid distance matrix.
//
// rows must already have passed New.
func Check(rows [][]float64) []error {
	var warnings []error

	asym, ai, aj := 0, 0, 0
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if rows[i][j] != rows[j][i] {
				if asym == 0 {
					ai, aj = i, j
				}
				asym++
			}
		}
	}
	if asym > 0 {
		warnings = append(warnings, fmt.Errorf("distance matrix is not symmetric at %d entries, first at (%d,%d): %v != %v; only the upper triangle is used", asym, ai, aj, rows[ai][aj], rows[aj][ai]))
	}

	warnings = appendDiag(warnings, len(rows), func(i int) float64 { return rows[i][i] })

	for i, row := range rows {
		if floats.Min(row) < 0 {
			warnings = append(warnings, fmt.Errorf("distance matrix has negative distances in row %d", i))
			break
		}
	}
	return warnings
}

// CheckSym is like Check for a matrix that is symmetric by
// construction. It reports a nonzero diagonal and negative distances.
func CheckSym(m mat.Symmetric) []error {
	n := m.SymmetricDim()
	warnings := appendDiag(nil, n, func(i int) float64 { return m.At(i, i) })

	row := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := range row {
			row[j] = m.At(i, j)
		}
		if floats.Min(row) < 0 {
			warnings = append(warnings, fmt.Errorf("distance matrix has negative distances in row %d", i))
			break
		}
	}
	return warnings
}

func appendDiag(warnings []error, n int, diag func(i int) float64) []error {
	for i := 0; i < n; i++ {
		if v := diag(i); v != 0 {
			return append(warnings, fmt.Errorf("distance matrix has nonzero diagonal at (%d,%d): %v", i, i, v))
		}
	}
	return warnings
}
