// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
)

// Options1D controls the sampling of a 1-D marginal. Zero values select the
// unit bounds and DefaultResolution.
type Options1D struct {
	Bounds     Bounds
	Resolution int

	// LogScale forces a logarithmic x-axis.
	LogScale bool

	// DeclaredScale takes the x-axis scale from the parameter space's log
	// flag instead of inferring it from the display grid spacing.
	DeclaredScale bool
}

func (o Options1D) withDefaults() Options1D {
	o.Bounds = o.Bounds.orUnit()
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	return o
}

// Marginal samples the main-effect marginal of a continuous or integer
// parameter.
func Marginal(ctx context.Context, ps ParameterSpace, o oracle.Oracle, ref Ref, opts Options1D) (*Curve1D, error) {
	logger := ctxlog.FromContext(ctx)
	opts = opts.withDefaults()

	p, err := Resolve(ctx, ps, ref)
	if err != nil {
		return nil, err
	}
	kind := kindOf(ps, p.Name)
	if kind != space.Continuous && kind != space.Integer {
		return nil, &WrongKindError{Name: p.Name, Kind: kind, Want: "a continuous or integer parameter"}
	}

	grid, err := Linspace(opts.Bounds.Lower, opts.Bounds.Upper, opts.Resolution)
	if err != nil {
		return nil, err
	}
	display, err := DisplayGrid(ps, p.Name, grid)
	if err != nil {
		return nil, err
	}

	points := make([]CurvePoint, len(grid))
	for i, x := range grid {
		est, err := o.MarginalAt(ctx, p.Dimension, x)
		if err != nil {
			return nil, fmt.Errorf("marginal of %s at %g: %w", p.Name, x, err)
		}
		points[i] = CurvePoint{Normalized: x, X: display[i], Mean: est.Mean, Std: est.Std}
	}

	var scale Scale
	if opts.DeclaredScale {
		scale = Linear
		if opts.LogScale || ps.IsLog(p.Name) {
			scale = Log
		}
	} else {
		scale = ChooseScale(opts.LogScale, display, kind)
	}
	logger.Debug("Sampled 1-D marginal.", "param", p.Name, "points", len(points), "scale", scale.String())

	return &Curve1D{
		Parameter: p.Name,
		Dimension: p.Dimension,
		Points:    points,
		Scale:     scale,
		XLabel:    p.Name,
		YLabel:    PerformanceLabel,
	}, nil
}
