// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package render

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceTicks generates up to n tick marks inside [lo, hi] on 1-2-2.5-5 steps.
func niceTicks(lo, hi float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(lo) || math.IsNaN(hi) || hi <= lo {
		return nil
	}
	mag := math.Pow(10, math.Floor(math.Log10((hi-lo)/float64(n-1))))
	step := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		count := math.Max(math.Ceil((hi-lo)/(c*mag)), 2)
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			step = c * mag
		}
	}

	var ticks []chart.Tick
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	if len(ticks) < 2 {
		return []chart.Tick{{Value: lo, Label: formatTick(lo)}, {Value: hi, Label: formatTick(hi)}}
	}
	return ticks
}

// logTicks places one tick per decade inside [lo, hi], where the bounds are
// log10 values. Labels are in display units.
func logTicks(lo, hi float64) []chart.Tick {
	var ticks []chart.Tick
	for e := math.Ceil(lo); e <= math.Floor(hi); e++ {
		ticks = append(ticks, chart.Tick{Value: e, Label: formatTick(math.Pow(10, e))})
	}
	if len(ticks) < 2 {
		ticks = []chart.Tick{
			{Value: lo, Label: formatTick(math.Pow(10, lo))},
			{Value: hi, Label: formatTick(math.Pow(10, hi))},
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
