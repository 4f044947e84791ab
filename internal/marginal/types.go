// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

// PerformanceLabel is the axis label of every predicted-performance axis.
const PerformanceLabel = "Performance"

// CurvePoint is one sample of a 1-D marginal.
type CurvePoint struct {
	Normalized float64
	X          float64 // display units
	Mean       float64
	Std        float64
}

// Curve1D is the sampled marginal of one continuous or integer parameter.
type Curve1D struct {
	Parameter string
	Dimension int
	Points    []CurvePoint
	Scale     Scale
	XLabel    string
	YLabel    string
}

// XValues returns the display x of every point.
func (c *Curve1D) XValues() []float64 {
	return c.collect(func(p CurvePoint) float64 { return p.X })
}

// Means returns the marginal mean of every point.
func (c *Curve1D) Means() []float64 {
	return c.collect(func(p CurvePoint) float64 { return p.Mean })
}

// Lower returns mean - std for every point.
func (c *Curve1D) Lower() []float64 {
	return c.collect(func(p CurvePoint) float64 { return p.Mean - p.Std })
}

// Upper returns mean + std for every point.
func (c *Curve1D) Upper() []float64 {
	return c.collect(func(p CurvePoint) float64 { return p.Mean + p.Std })
}

func (c *Curve1D) collect(f func(CurvePoint) float64) []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = f(p)
	}
	return out
}

// Surface2D is the joint marginal of two parameters. Mean[i][j] and
// Std[i][j] belong to (Grid2[i], Grid1[j]).
type Surface2D struct {
	Param1, Param2 string
	Dim1, Dim2     int
	Grid1, Grid2   []float64 // display units
	Mean           [][]float64
	Std            [][]float64
	ZLabel         string
}

// Extent returns the smallest and largest mean on the surface.
func (s *Surface2D) Extent() (lo, hi float64) {
	first := true
	for _, row := range s.Mean {
		for _, v := range row {
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

// LevelBox is the box of one categorical level. The median sits at Mean
// and the box spans [Lower, Upper]; whiskers collapse onto the median.
type LevelBox struct {
	Label    string
	Position int
	Mean     float64
	Std      float64
	Lower    float64
	Upper    float64
}

// CategoricalBand is the box-per-level marginal of a categorical parameter.
type CategoricalBand struct {
	Parameter string
	Dimension int
	Levels    []LevelBox
	MinY      float64
	MaxY      float64
	XLabel    string
	YLabel    string
}
