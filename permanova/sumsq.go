// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permanova

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// sumOfSquares returns the sum of x*x over xs.
func sumOfSquares(xs []float64) float64 {
	return floats.Dot(xs, xs)
}

// A kernel sums squared distances over subsets of the pairs of
// observations of a distance matrix.
type kernel struct {
	dm mat.Symmetric
	n  int

	// buf holds the selected distances. It is reused across sums.
	buf []float64
}

func newKernel(dm mat.Symmetric) *kernel {
	n := dm.SymmetricDim()
	return &kernel{dm: dm, n: n, buf: make([]float64, 0, n*(n-1)/2)}
}

// sum returns the sum of dm[i][j]² over all pairs i < j for which
// pair(i, j) is true, divided by div.
//
// Only the upper triangle of dm is read, so each unordered pair
// contributes once. div is not checked; dividing by zero yields NaN
// or ±Inf.
func (k *kernel) sum(pair func(i, j int) bool, div float64) float64 {
	xs := k.buf[:0]
	for i := 0; i < k.n; i++ {
		for j := i + 1; j < k.n; j++ {
			if pair(i, j) {
				xs = append(xs, k.dm.At(i, j))
			}
		}
	}
	k.buf = xs
	return sumOfSquares(xs) / div
}

func allPairs(i, j int) bool { return true }
