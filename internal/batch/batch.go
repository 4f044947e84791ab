// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/fsutil"
	"github.com/specialistvlad/fanoviz/internal/marginal"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
)

// ErrMissingOutputDirectory is returned before any plotting when the output
// directory does not exist or is not a directory.
var ErrMissingOutputDirectory = errors.New("missing output directory")

// Renderer turns plot data into an encoded image.
type Renderer interface {
	RenderCurve(w io.Writer, c *marginal.Curve1D) error
	RenderBand(w io.Writer, b *marginal.CategoricalBand) error
	RenderSurface(w io.Writer, s *marginal.Surface2D) error
}

// Space is the parameter space view the orchestrator needs.
// *space.Space implements it.
type Space interface {
	marginal.ParameterSpace
	CategoricalParameters() []string
	ContinuousParameters() []string
	IntegerParameters() []string
}

// Options configures an Orchestrator. Zero values select defaults.
type Options struct {
	// Workers is the number of plots rendered concurrently.
	Workers int

	Curve   marginal.Options1D
	Surface marginal.Options2D

	// WriteManifest stores the run report as manifest.yaml in the output
	// directory.
	WriteManifest bool

	// OnPlot and OnSkip observe the outcome of every job in job order,
	// after the pool has drained.
	OnPlot func(dir string, rec PlotRecord)
	OnSkip func(rec SkipRecord)
}

// Orchestrator renders batches of marginal plots.
type Orchestrator struct {
	space    Space
	oracle   oracle.Oracle
	renderer Renderer
	opts     Options
}

// New creates an orchestrator. The space and oracle are only read.
func New(ps Space, o oracle.Oracle, r Renderer, opts Options) *Orchestrator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Orchestrator{space: ps, oracle: o, renderer: r, opts: opts}
}

// PlotAll renders the main effect of every parameter: categorical ones as
// bands, then continuous and integer ones as curves.
func (b *Orchestrator) PlotAll(ctx context.Context, dir string) (*Report, error) {
	if err := requireOutputDir(dir); err != nil {
		return nil, err
	}

	var jobs []job
	for _, name := range b.space.CategoricalParameters() {
		jobs = append(jobs, b.bandJob(marginal.ByName(name), name))
	}
	for _, name := range b.space.ContinuousParameters() {
		jobs = append(jobs, b.curveJob(marginal.ByName(name), name))
	}
	for _, name := range b.space.IntegerParameters() {
		jobs = append(jobs, b.curveJob(marginal.ByName(name), name))
	}

	return b.execute(ctx, "all", dir, jobs)
}

// TopPairs renders the surfaces of the n most important parameter pairs.
// Pairs with a categorical member are skipped, so fewer than n plots may
// be produced. A pair naming an unknown parameter aborts the batch.
func (b *Orchestrator) TopPairs(ctx context.Context, dir string, n int) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	if err := requireOutputDir(dir); err != nil {
		return nil, err
	}

	pairs, err := b.oracle.TopPairwiseImportance(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to rank parameter pairs: %w", err)
	}
	logger.Debug("Ranked parameter pairs.", "requested", n, "returned", len(pairs))

	var jobs []job
	for _, pair := range pairs {
		kindA, okA := b.space.Kind(pair.ParamA)
		kindB, okB := b.space.Kind(pair.ParamB)
		switch {
		case !okA:
			return nil, &marginal.UnknownParameterError{Name: pair.ParamA}
		case !okB:
			return nil, &marginal.UnknownParameterError{Name: pair.ParamB}
		case kindA == space.Categorical || kindB == space.Categorical:
			jobs = append(jobs, skipJob([]string{pair.ParamA, pair.ParamB},
				fmt.Sprintf("skipping pairwise marginal plot %s x %s, because one of them is categorical", pair.ParamA, pair.ParamB)))
		default:
			score := pair.Score
			jobs = append(jobs, b.surfaceJob(marginal.ByName(pair.ParamA), marginal.ByName(pair.ParamB), pair.ParamA, pair.ParamB, &score))
		}
	}

	return b.execute(ctx, "pairs", dir, jobs)
}

// PlotMarginal renders one continuous or integer parameter. An unknown
// reference is an error; a parameter of the wrong kind is skipped.
func (b *Orchestrator) PlotMarginal(ctx context.Context, dir string, ref marginal.Ref) (*Report, error) {
	if err := requireOutputDir(dir); err != nil {
		return nil, err
	}
	p, err := marginal.Resolve(ctx, b.space, ref)
	if err != nil {
		return nil, err
	}
	return b.execute(ctx, "marginal", dir, []job{b.curveJob(ref, p.Name)})
}

// PlotCategorical renders one categorical parameter. Unknown references and
// parameters of the wrong kind are skipped with a diagnostic.
func (b *Orchestrator) PlotCategorical(ctx context.Context, dir string, ref marginal.Ref) (*Report, error) {
	if err := requireOutputDir(dir); err != nil {
		return nil, err
	}
	p, err := marginal.Resolve(ctx, b.space, ref)
	if err != nil {
		if !marginal.IsSkippable(err) {
			return nil, err
		}
		return b.execute(ctx, "categorical", dir, []job{skipJob([]string{ref.String()}, err.Error())})
	}
	return b.execute(ctx, "categorical", dir, []job{b.bandJob(ref, p.Name)})
}

// PlotPair renders the surface of one parameter pair. Unknown references
// are an error; a categorical member skips the plot.
func (b *Orchestrator) PlotPair(ctx context.Context, dir string, ref1, ref2 marginal.Ref) (*Report, error) {
	if err := requireOutputDir(dir); err != nil {
		return nil, err
	}
	p1, err := marginal.Resolve(ctx, b.space, ref1)
	if err != nil {
		return nil, err
	}
	p2, err := marginal.Resolve(ctx, b.space, ref2)
	if err != nil {
		return nil, err
	}
	return b.execute(ctx, "pair", dir, []job{b.surfaceJob(ref1, ref2, p1.Name, p2.Name, nil)})
}

func requireOutputDir(dir string) error {
	if err := fsutil.RequireDir(dir); err != nil {
		return fmt.Errorf("%w: directory %s doesn't exist: %v", ErrMissingOutputDirectory, dir, err)
	}
	return nil
}

func (b *Orchestrator) execute(ctx context.Context, operation, dir string, jobs []job) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Operation: operation,
		Directory: dir,
		Plots:     []PlotRecord{},
	}
	ctx, logger := ctxlog.With(ctx, "operation", operation, "run_id", report.RunID)
	logger.Info("Starting plot batch.", "jobs", len(jobs), "workers", b.opts.Workers, "dir", dir)

	outcomes, err := b.runPool(ctx, dir, jobs)
	if err != nil {
		return nil, err
	}

	for _, out := range outcomes {
		switch {
		case out.plot != nil:
			report.Plots = append(report.Plots, *out.plot)
			if b.opts.OnPlot != nil {
				b.opts.OnPlot(dir, *out.plot)
			}
		case out.skip != nil:
			report.Skipped = append(report.Skipped, *out.skip)
			if b.opts.OnSkip != nil {
				b.opts.OnSkip(*out.skip)
			}
		}
	}

	if b.opts.WriteManifest {
		path, err := report.WriteManifest()
		if err != nil {
			return nil, err
		}
		logger.Debug("Run manifest written.", "path", path)
	}
	logger.Info("Plot batch finished.", "plots", len(report.Plots), "skipped", len(report.Skipped))
	return report, nil
}

// writePlot renders into dir/file, removing the partial file on failure.
func writePlot(dir, file string, render func(io.Writer) error) (err error) {
	path := filepath.Join(dir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	if err := render(f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
