// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import "fmt"

// DisplayGrid denormalizes every grid point through the parameter space.
// Points are neither clamped nor cached.
func DisplayGrid(ps ParameterSpace, name string, grid []float64) ([]float64, error) {
	display := make([]float64, len(grid))
	for i, x := range grid {
		v, err := ps.Denormalize(name, x)
		if err != nil {
			return nil, fmt.Errorf("denormalize %s at %g: %w", name, x, err)
		}
		display[i] = v
	}
	return display, nil
}
