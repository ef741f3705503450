// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distmat

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	rows := [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	}
	m, err := New(rows, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rows {
		for j := range rows[i] {
			if got := m.At(i, j); got != rows[i][j] {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got, rows[i][j])
			}
		}
	}

	// The result must not alias rows.
	rows[0][1] = 100
	if got := m.At(0, 1); got != 1 {
		t.Errorf("matrix aliases input: At(0,1) = %v after modifying input", got)
	}
}

func TestNewUpperTriangle(t *testing.T) {
	rows := [][]float64{
		{0, 1},
		{5, 0},
	}
	m, err := New(rows, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.At(1, 0); got != 1 {
		t.Errorf("At(1,0) = %v, want upper-triangle value 1", got)
	}
}

func TestNewShape(t *testing.T) {
	check := func(name string, rows [][]float64, n int) {
		t.Helper()
		_, err := New(rows, n)
		if !errors.Is(err, ErrShape) {
			t.Errorf("%s: got error %v, want ErrShape", name, err)
		}
	}
	check("empty", nil, 0)
	check("too few rows", [][]float64{{0, 1}, {1, 0}}, 3)
	check("too many rows", [][]float64{{0, 1}, {1, 0}}, 1)
	check("ragged", [][]float64{{0, 1}, {1}}, 2)
	check("wide", [][]float64{{0, 1, 2}, {1, 0, 2}}, 2)
}

func TestCheckDim(t *testing.T) {
	m := mat.NewSymDense(3, nil)
	if err := CheckDim(m, 3); err != nil {
		t.Errorf("CheckDim(3×3, 3) = %v, want nil", err)
	}
	if err := CheckDim(m, 4); !errors.Is(err, ErrShape) {
		t.Errorf("CheckDim(3×3, 4) = %v, want ErrShape", err)
	}
	if err := CheckDim(m, 0); !errors.Is(err, ErrShape) {
		t.Errorf("CheckDim(3×3, 0) = %v, want ErrShape", err)
	}
}

func TestCheck(t *testing.T) {
	check := func(rows [][]float64, want ...string) {
		t.Helper()
		got := Check(rows)
		if len(got) != len(want) {
			t.Errorf("for %v, got warnings %v, want %v", rows, got, want)
			return
		}
		for i := range got {
			if got[i].Error() != want[i] {
				t.Errorf("for %v, got warning %q, want %q", rows, got[i], want[i])
			}
		}
	}

	check([][]float64{{0, 1}, {1, 0}})
	check([][]float64{{0, 1, 2}, {1, 0, 3}, {2, 4, 0}},
		"distance matrix is not symmetric at 1 entries, first at (1,2): 3 != 4; only the upper triangle is used")
	check([][]float64{{0, 1}, {1, 2}},
		"distance matrix has nonzero diagonal at (1,1): 2")
	check([][]float64{{0, -1}, {-1, 0}},
		"distance matrix has negative distances in row 0")
}

func TestCheckSym(t *testing.T) {
	m := mat.NewSymDense(2, []float64{0, 1, 1, 0})
	if w := CheckSym(m); w != nil {
		t.Errorf("got warnings %v, want none", w)
	}

	m = mat.NewSymDense(2, []float64{1, -1, -1, 0})
	w := CheckSym(m)
	want := []string{
		"distance matrix has nonzero diagonal at (0,0): 1",
		"distance matrix has negative distances in row 0",
	}
	if len(w) != len(want) {
		t.Fatalf("got warnings %v, want %v", w, want)
	}
	for i := range w {
		if w[i].Error() != want[i] {
			t.Errorf("got warning %q, want %q", w[i], want[i])
		}
	}
}
