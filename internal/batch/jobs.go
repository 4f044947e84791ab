// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package batch

import (
	"context"
	"io"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/fsutil"
	"github.com/specialistvlad/fanoviz/internal/marginal"
	"github.com/specialistvlad/fanoviz/internal/oracle"
)

// job is one unit of work for the pool. run returns the written record, or
// an error; skippable errors become skip records.
type job struct {
	params []string
	run    func(ctx context.Context, dir string) (*PlotRecord, error)
}

type outcome struct {
	plot *PlotRecord
	skip *SkipRecord
	err  error
}

func skipJob(params []string, reason string) job {
	return job{
		params: params,
		run: func(ctx context.Context, _ string) (*PlotRecord, error) {
			return nil, &skipError{reason: reason}
		},
	}
}

type skipError struct{ reason string }

func (e *skipError) Error() string { return e.reason }

func (b *Orchestrator) bandJob(ref marginal.Ref, name string) job {
	return job{
		params: []string{name},
		run: func(ctx context.Context, dir string) (*PlotRecord, error) {
			band, err := marginal.Categorical(ctx, b.space, b.oracle, ref)
			if err != nil {
				return nil, err
			}
			file := fsutil.PlotFileName(band.Parameter)
			if err := writePlot(dir, file, func(w io.Writer) error { return b.renderer.RenderBand(w, band) }); err != nil {
				return nil, err
			}
			return &PlotRecord{
				Kind:       KindCategorical,
				Parameters: []string{band.Parameter},
				File:       file,
				Importance: b.mainImportance(ctx, band.Parameter),
			}, nil
		},
	}
}

func (b *Orchestrator) curveJob(ref marginal.Ref, name string) job {
	return job{
		params: []string{name},
		run: func(ctx context.Context, dir string) (*PlotRecord, error) {
			curve, err := marginal.Marginal(ctx, b.space, b.oracle, ref, b.opts.Curve)
			if err != nil {
				return nil, err
			}
			file := fsutil.PlotFileName(curve.Parameter)
			if err := writePlot(dir, file, func(w io.Writer) error { return b.renderer.RenderCurve(w, curve) }); err != nil {
				return nil, err
			}
			return &PlotRecord{
				Kind:       KindCurve,
				Parameters: []string{curve.Parameter},
				File:       file,
				Scale:      curve.Scale.String(),
				Importance: b.mainImportance(ctx, curve.Parameter),
			}, nil
		},
	}
}

func (b *Orchestrator) surfaceJob(ref1, ref2 marginal.Ref, name1, name2 string, importance *float64) job {
	return job{
		params: []string{name1, name2},
		run: func(ctx context.Context, dir string) (*PlotRecord, error) {
			surface, err := marginal.Pairwise(ctx, b.space, b.oracle, ref1, ref2, b.opts.Surface)
			if err != nil {
				return nil, err
			}
			file := fsutil.PairPlotFileName(surface.Param1, surface.Param2)
			if err := writePlot(dir, file, func(w io.Writer) error { return b.renderer.RenderSurface(w, surface) }); err != nil {
				return nil, err
			}
			return &PlotRecord{
				Kind:       KindSurface,
				Parameters: []string{surface.Param1, surface.Param2},
				File:       file,
				Importance: importance,
			}, nil
		},
	}
}

func (b *Orchestrator) mainImportance(ctx context.Context, name string) *float64 {
	src, ok := b.oracle.(oracle.ImportanceSource)
	if !ok {
		return nil
	}
	v, err := src.MainEffectImportance(ctx, name)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Main effect importance unavailable.", "param", name, "error", err)
		return nil
	}
	return &v
}
