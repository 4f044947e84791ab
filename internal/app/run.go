// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fanoviz/internal/batch"
	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/marginal"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	refs := make([]marginal.Ref, len(a.config.Refs))
	for i, s := range a.config.Refs {
		ref, err := marginal.ParseRef(s)
		if err != nil {
			return err
		}
		refs[i] = ref
	}

	var (
		report *batch.Report
		err    error
	)
	dir := a.config.OutputDir
	switch a.config.Command {
	case CommandAll:
		report, err = a.orch.PlotAll(ctx, dir)
	case CommandPairs:
		report, err = a.orch.TopPairs(ctx, dir, a.config.TopN)
	case CommandMarginal:
		report, err = a.orch.PlotMarginal(ctx, dir, refs[0])
	case CommandCategorical:
		report, err = a.orch.PlotCategorical(ctx, dir, refs[0])
	case CommandPair:
		report, err = a.orch.PlotPair(ctx, dir, refs[0], refs[1])
	default:
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", a.config.Command, err)
	}

	a.report = report
	a.progress.done(report)
	a.logger.Debug("App.Run method finished.", "run_id", report.RunID)
	return nil
}
