// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/specialistvlad/fanoviz/internal/marginal"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ink        = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// heatmapLayout places the plot area and colour bar inside the image.
type heatmapLayout struct {
	plot image.Rectangle
	bar  image.Rectangle
}

const (
	marginLeft, marginRight, marginTop, marginBottom = 80, 110, 36, 56
	barWidth, barGap                                 = 18, 24

	// MinWidth and MinHeight are the smallest image sizes that leave a
	// plot area of at least 50x50 pixels inside the surface margins.
	MinWidth  = marginLeft + marginRight + 50
	MinHeight = marginTop + marginBottom + 50
)

func newHeatmapLayout(width, height int) heatmapLayout {
	left, right, top, bottom := marginLeft, marginRight, marginTop, marginBottom
	plot := image.Rect(left, top, width-right, height-bottom)
	bar := image.Rect(plot.Max.X+barGap, top, plot.Max.X+barGap+barWidth, height-bottom)
	return heatmapLayout{plot: plot, bar: bar}
}

// cell returns the pixel rectangle of Mean[row][col]. Row 0 is at the
// bottom so axis 2 grows upwards.
func (l heatmapLayout) cell(row, col, rows, cols int) image.Rectangle {
	pw, ph := l.plot.Dx(), l.plot.Dy()
	x0 := l.plot.Min.X + col*pw/cols
	x1 := l.plot.Min.X + (col+1)*pw/cols
	y1 := l.plot.Max.Y - row*ph/rows
	y0 := l.plot.Max.Y - (row+1)*ph/rows
	return image.Rect(x0, y0, x1, y1)
}

// RenderSurface draws the surface as a heatmap: axis 1 horizontal, axis 2
// vertical, colour from the jet map scaled to the surface's mean extent.
func (p *PNG) RenderSurface(w io.Writer, s *marginal.Surface2D) error {
	rows := len(s.Mean)
	if rows == 0 || len(s.Mean[0]) == 0 {
		return errors.New("surface has no cells")
	}
	cols := len(s.Mean[0])

	width, height := p.size()
	if width < MinWidth || height < MinHeight {
		return fmt.Errorf("image size %dx%d is below the %dx%d surface minimum", width, height, MinWidth, MinHeight)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	layout := newHeatmapLayout(width, height)

	lo, hi := s.Extent()
	for i, row := range s.Mean {
		for j, v := range row {
			c := jet(normalize(v, lo, hi))
			draw.Draw(img, layout.cell(i, j, rows, cols), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	for k := 0; k < layout.bar.Dy(); k++ {
		t := 1 - float64(k)/float64(max(layout.bar.Dy()-1, 1))
		line := image.Rect(layout.bar.Min.X, layout.bar.Min.Y+k, layout.bar.Max.X, layout.bar.Min.Y+k+1)
		draw.Draw(img, line, image.NewUniform(jet(t)), image.Point{}, draw.Src)
	}

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	drawText(img, fmt.Sprintf("%s x %s", s.Param1, s.Param2), layout.plot.Min.X, layout.plot.Min.Y-12)

	// axis 1 along the bottom
	drawText(img, formatTick(first(s.Grid1)), layout.plot.Min.X, layout.plot.Max.Y+ascent+6)
	lastX := formatTick(last(s.Grid1))
	drawText(img, lastX, layout.plot.Max.X-textWidth(lastX), layout.plot.Max.Y+ascent+6)
	drawText(img, s.Param1, layout.plot.Min.X+(layout.plot.Dx()-textWidth(s.Param1))/2, layout.plot.Max.Y+2*ascent+16)

	// axis 2 along the left edge
	bottomY := formatTick(first(s.Grid2))
	drawText(img, bottomY, layout.plot.Min.X-textWidth(bottomY)-6, layout.plot.Max.Y)
	topY := formatTick(last(s.Grid2))
	drawText(img, topY, layout.plot.Min.X-textWidth(topY)-6, layout.plot.Min.Y+ascent)
	drawText(img, s.Param2, 6, layout.plot.Min.Y+layout.plot.Dy()/2)

	// colour bar extent and label
	drawText(img, formatTick(hi), layout.bar.Max.X+4, layout.bar.Min.Y+ascent)
	drawText(img, formatTick(lo), layout.bar.Max.X+4, layout.bar.Max.Y)
	drawText(img, s.ZLabel, layout.bar.Min.X, layout.bar.Max.Y+ascent+6)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode surface %s x %s: %w", s.Param1, s.Param2, err)
	}
	return nil
}

// encodeMessage writes a blank image carrying a single line of text.
func encodeMessage(w io.Writer, width, height int, msg string) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	drawText(img, msg, (width-textWidth(msg))/2, height/2)
	return png.Encode(w, img)
}

func drawText(img draw.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func textWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// jet maps t in [0,1] to the classic jet colormap, dark blue to dark red.
func jet(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	channel := func(offset float64) uint8 {
		v := 1.5 - math.Abs(4*t-offset)
		return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
	}
	return color.RGBA{R: channel(3), G: channel(2), B: channel(1), A: 255}
}

func first(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[0]
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[len(xs)-1]
}
