// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/specialistvlad/fanoviz/internal/marginal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	// boxHalfWidth is half the width of a categorical box in level units.
	boxHalfWidth = 0.25
)

var (
	meanColor   = drawing.ColorFromHex("1f4fd1")
	bandColor   = drawing.ColorFromHex("d62728")
	boxColor    = drawing.ColorFromHex("222222")
	medianColor = drawing.ColorFromHex("ff7f0e")
)

// PNG renders plots as PNG images of a fixed size.
type PNG struct {
	Width  int
	Height int
}

// New returns a PNG renderer. Non-positive sizes select the defaults.
func New(width, height int) *PNG {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &PNG{Width: width, Height: height}
}

func (p *PNG) size() (int, int) {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// RenderCurve draws the marginal mean with its mean ± std envelope. On a
// log scale the x values are plotted as log10 with ticks labelled in
// display units.
func (p *PNG) RenderCurve(w io.Writer, c *marginal.Curve1D) error {
	if len(c.Points) == 0 {
		return errors.New("curve has no points")
	}

	xs := c.XValues()
	logScale := c.Scale == marginal.Log && allPositive(xs)
	if logScale {
		for i, x := range xs {
			xs[i] = math.Log10(x)
		}
	}
	lower, upper := c.Lower(), c.Upper()

	xMin, xMax := padRange(minOf(xs), maxOf(xs))
	yMin, yMax := padRange(minOf(lower), maxOf(upper))

	var xTicks []chart.Tick
	if logScale {
		xTicks = logTicks(xMin, xMax)
	} else {
		xTicks = niceTicks(xMin, xMax, 6)
	}

	width, height := p.size()
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 20, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: niceTicks(yMin, yMax, 6),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "mean + std", XValues: xs, YValues: upper, Style: lineStyle(bandColor, 1)},
			chart.ContinuousSeries{Name: "mean - std", XValues: xs, YValues: lower, Style: lineStyle(bandColor, 1)},
			chart.ContinuousSeries{Name: "mean", XValues: xs, YValues: c.Means(), Style: lineStyle(meanColor, 2)},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render curve of %s: %w", c.Parameter, err)
	}
	return nil
}

// RenderBand draws one box per level at its ordinal position, with the
// median line at the level's mean.
func (p *PNG) RenderBand(w io.Writer, b *marginal.CategoricalBand) error {
	width, height := p.size()
	if len(b.Levels) == 0 {
		return encodeMessage(w, width, height, fmt.Sprintf("%s: no levels", b.Parameter))
	}

	series := make([]chart.Series, 0, 2*len(b.Levels))
	ticks := make([]chart.Tick, 0, len(b.Levels))
	for _, lvl := range b.Levels {
		x := float64(lvl.Position)
		left, right := x-boxHalfWidth, x+boxHalfWidth
		series = append(series,
			chart.ContinuousSeries{
				Name:    lvl.Label,
				XValues: []float64{left, right, right, left, left},
				YValues: []float64{lvl.Lower, lvl.Lower, lvl.Upper, lvl.Upper, lvl.Lower},
				Style:   lineStyle(boxColor, 1.5),
			},
			chart.ContinuousSeries{
				Name:    lvl.Label + " median",
				XValues: []float64{left, right},
				YValues: []float64{lvl.Mean, lvl.Mean},
				Style:   lineStyle(medianColor, 2),
			},
		)
		ticks = append(ticks, chart.Tick{Value: x, Label: lvl.Label})
	}
	xMin, xMax := -0.5, float64(len(b.Levels))-0.5
	if len(ticks) < 2 {
		// go-chart needs at least two ticks to span the axis.
		ticks = append([]chart.Tick{{Value: xMin}}, append(ticks, chart.Tick{Value: xMax})...)
	}

	yMin, yMax := padRange(b.MinY, b.MaxY)
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 20, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  b.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  b.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: niceTicks(yMin, yMax, 6),
		},
		Series: series,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render categorical plot of %s: %w", b.Parameter, err)
	}
	return nil
}

func lineStyle(c drawing.Color, width float64) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: width}
}

func allPositive(xs []float64) bool {
	for _, x := range xs {
		if x <= 0 {
			return false
		}
	}
	return true
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		m = min(m, x)
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		m = max(m, x)
	}
	return m
}

// padRange widens a degenerate range so axes always have a span.
func padRange(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}
