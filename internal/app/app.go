// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/fanoviz/internal/batch"
	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/marginal"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/render"
	"github.com/specialistvlad/fanoviz/internal/space"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	space    *space.Space
	oracle   *oracle.Table
	orch     *batch.Orchestrator
	progress *progress
	report   *batch.Report
}

// NewApp is the constructor for the main application. It loads the
// parameter space and opens the oracle; a failure to do either is a fatal
// startup error and panics.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	ps, err := loadSpace(ctx, cfg.SpacePath)
	if err != nil {
		panic(err)
	}
	tbl, err := openOracle(ctx, cfg.OraclePath)
	if err != nil {
		panic(err)
	}

	bounds := marginal.Bounds{Lower: cfg.Lower, Upper: cfg.Upper}
	prog := newProgress(outW)
	orch := batch.New(ps, tbl, render.New(cfg.Width, cfg.Height), batch.Options{
		Workers: cfg.Workers,
		Curve: marginal.Options1D{
			Bounds:        bounds,
			Resolution:    cfg.Resolution,
			LogScale:      cfg.LogScale,
			DeclaredScale: cfg.DeclaredScale,
		},
		Surface: marginal.Options2D{
			Bounds1:     bounds,
			Bounds2:     bounds,
			Resolution1: cfg.PairResolution,
			Resolution2: cfg.PairResolution,
			Workers:     cfg.QueryWorkers,
		},
		WriteManifest: cfg.Manifest,
		OnPlot:        prog.plot,
		OnSkip:        prog.skip,
	})
	logger.Debug("Plot orchestrator configured.", "workers", cfg.Workers, "query_workers", cfg.QueryWorkers)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		space:    ps,
		oracle:   tbl,
		orch:     orch,
		progress: prog,
	}
}

// Space returns the loaded parameter space. This is primarily for testing.
func (a *App) Space() *space.Space {
	return a.space
}

// Report returns the report of the last successful Run.
func (a *App) Report() *batch.Report {
	return a.report
}

// Close releases the oracle.
func (a *App) Close() error {
	if err := a.oracle.Close(); err != nil {
		return fmt.Errorf("failed to close marginal oracle: %w", err)
	}
	return nil
}
