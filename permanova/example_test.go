// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permanova_test

import (
	"fmt"
	"math/rand"

	"golang.org/x/stats/permanova"
)

func ExampleOneWay() {
	// Two groups of three observations. Observations in the same
	// group are at distance 1 and observations in different groups
	// are at distance 10.
	levels := []string{"control", "control", "control", "treated", "treated", "treated"}
	dm := make([][]float64, len(levels))
	for i := range dm {
		dm[i] = make([]float64, len(levels))
		for j := range dm[i] {
			switch {
			case i == j:
			case levels[i] == levels[j]:
				dm[i][j] = 1
			default:
				dm[i][j] = 10
			}
		}
	}

	opts := permanova.DefaultOptions
	opts.Rand = rand.New(rand.NewSource(1))
	res, err := permanova.OneWay(dm, levels, &opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("SST=%.0f SSA=%.0f SSW=%.0f\n", res.Table.Total, res.Table.A, res.Table.Residual)
	fmt.Printf("F=%.0f\n", res.F)
	// Output:
	// SST=151 SSA=149 SSW=2
	// F=298
}

func ExampleTwoWay() {
	// Observations on a line, two levels of each factor, two
	// observations per cell.
	xs := []float64{1, 3, 4, 6, 5, 7, 8, 10}
	levels := permanova.Cells(
		[]string{"a0", "a0", "a0", "a0", "a1", "a1", "a1", "a1"},
		[]string{"b0", "b0", "b1", "b1", "b0", "b0", "b1", "b1"})
	dm := make([][]float64, len(xs))
	for i := range dm {
		dm[i] = make([]float64, len(xs))
		for j := range dm[i] {
			if xs[i] > xs[j] {
				dm[i][j] = xs[i] - xs[j]
			} else {
				dm[i][j] = xs[j] - xs[i]
			}
		}
	}

	opts := permanova.DefaultOptions
	opts.Rand = rand.New(rand.NewSource(1))
	res, err := permanova.TwoWay(dm, levels, &opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("F(A)=%.0f F(B)=%.0f F(A:B)=%.0f\n", res.A.F, res.B.F, res.Interaction.F)
	// Output:
	// F(A)=16 F(B)=9 F(A:B)=0
}
