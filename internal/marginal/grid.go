// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultResolution is the number of grid points of a 1-D marginal.
	DefaultResolution = 100

	// DefaultPairResolution is the per-axis number of grid points of a
	// pairwise surface.
	DefaultPairResolution = 20
)

// Bounds is a closed interval in normalized parameter space.
type Bounds struct {
	Lower float64
	Upper float64
}

// UnitBounds covers the whole normalized domain.
var UnitBounds = Bounds{Lower: 0, Upper: 1}

func (b Bounds) orUnit() Bounds {
	if b == (Bounds{}) {
		return UnitBounds
	}
	return b
}

// Linspace returns n evenly spaced points from lower to upper inclusive.
// The last point is exactly upper. A single point grid is [lower].
func Linspace(lower, upper float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one point, got %d", ErrInvalidResolution, n)
	}
	if n == 1 {
		return []float64{lower}, nil
	}
	points := floats.Span(make([]float64, n), lower, upper)
	points[n-1] = upper
	return points, nil
}

// GridPoint is one cell of a two-axis grid.
type GridPoint struct {
	Row, Col int
	X1, X2   float64
}

// CartesianGrid combines two axes into len(grid1)*len(grid2) points. Axis 2
// is the outer (row) index and axis 1 the inner (column) index.
func CartesianGrid(grid1, grid2 []float64) []GridPoint {
	points := make([]GridPoint, 0, len(grid1)*len(grid2))
	for i, x2 := range grid2 {
		for j, x1 := range grid1 {
			points = append(points, GridPoint{Row: i, Col: j, X1: x1, X2: x2})
		}
	}
	return points
}
