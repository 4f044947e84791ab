// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"github.com/specialistvlad/fanoviz/internal/space"
	"gonum.org/v1/gonum/stat"
)

// Scale is the x-axis scale of a 1-D curve.
type Scale int

const (
	// Linear plots display values as they are.
	Linear Scale = iota
	// Log plots display values on a base-10 logarithmic axis.
	Log
)

func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}

// LogThreshold is the spacing spread above which a continuous display grid
// is treated as log-scaled.
const LogThreshold = 1e-6

// ChooseScale decides the x-axis scale of a curve. An explicit request for
// log scale wins. Otherwise a continuous parameter whose display grid is not
// evenly spaced is assumed to come from a log-scaled domain.
func ChooseScale(requestLog bool, display []float64, kind space.Kind) Scale {
	if requestLog {
		return Log
	}
	if kind == space.Continuous && SpacingSpread(display) > LogThreshold {
		return Log
	}
	return Linear
}

// SpacingSpread is the population standard deviation of the first
// differences of xs. It is zero for fewer than three points.
func SpacingSpread(xs []float64) float64 {
	if len(xs) < 3 {
		return 0
	}
	diffs := make([]float64, len(xs)-1)
	for i := range diffs {
		diffs[i] = xs[i+1] - xs[i]
	}
	_, std := stat.PopMeanStdDev(diffs, nil)
	return std
}
