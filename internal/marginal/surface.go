// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
	"golang.org/x/sync/errgroup"
)

// Options2D controls the sampling of a pairwise surface. Zero values select
// unit bounds, DefaultPairResolution per axis and sequential queries.
type Options2D struct {
	Bounds1, Bounds2         Bounds
	Resolution1, Resolution2 int

	// Workers bounds the number of concurrent oracle queries.
	Workers int
}

func (o Options2D) withDefaults() Options2D {
	o.Bounds1 = o.Bounds1.orUnit()
	o.Bounds2 = o.Bounds2.orUnit()
	if o.Resolution1 == 0 {
		o.Resolution1 = DefaultPairResolution
	}
	if o.Resolution2 == 0 {
		o.Resolution2 = DefaultPairResolution
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Pairwise samples the joint marginal of two continuous or integer
// parameters. Unknown references are always an error here.
func Pairwise(ctx context.Context, ps ParameterSpace, o oracle.Oracle, ref1, ref2 Ref, opts Options2D) (*Surface2D, error) {
	logger := ctxlog.FromContext(ctx)
	opts = opts.withDefaults()

	p1, err := Resolve(ctx, ps, ref1)
	if err != nil {
		return nil, err
	}
	p2, err := Resolve(ctx, ps, ref2)
	if err != nil {
		return nil, err
	}
	for _, p := range []Resolved{p1, p2} {
		if kind := kindOf(ps, p.Name); kind == space.Categorical {
			return nil, &WrongKindError{Name: p.Name, Kind: kind, Want: "a continuous or integer parameter"}
		}
	}

	grid1, err := Linspace(opts.Bounds1.Lower, opts.Bounds1.Upper, opts.Resolution1)
	if err != nil {
		return nil, err
	}
	grid2, err := Linspace(opts.Bounds2.Lower, opts.Bounds2.Upper, opts.Resolution2)
	if err != nil {
		return nil, err
	}

	mean := make([][]float64, len(grid2))
	std := make([][]float64, len(grid2))
	for i := range grid2 {
		mean[i] = make([]float64, len(grid1))
		std[i] = make([]float64, len(grid1))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, pt := range CartesianGrid(grid1, grid2) {
		pt := pt
		g.Go(func() error {
			est, err := o.PairwiseMarginalAt(gctx, p1.Dimension, p2.Dimension, pt.X1, pt.X2)
			if err != nil {
				return fmt.Errorf("pairwise marginal of %s x %s at (%g, %g): %w", p1.Name, p2.Name, pt.X1, pt.X2, err)
			}
			mean[pt.Row][pt.Col] = est.Mean
			std[pt.Row][pt.Col] = est.Std
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	display1, err := DisplayGrid(ps, p1.Name, grid1)
	if err != nil {
		return nil, err
	}
	display2, err := DisplayGrid(ps, p2.Name, grid2)
	if err != nil {
		return nil, err
	}
	logger.Debug("Sampled pairwise surface.", "param1", p1.Name, "param2", p2.Name,
		"rows", len(grid2), "cols", len(grid1), "workers", opts.Workers)

	return &Surface2D{
		Param1: p1.Name,
		Param2: p2.Name,
		Dim1:   p1.Dimension,
		Dim2:   p2.Dimension,
		Grid1:  display1,
		Grid2:  display2,
		Mean:   mean,
		Std:    std,
		ZLabel: PerformanceLabel,
	}, nil
}
