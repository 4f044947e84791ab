// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/specialistvlad/fanoviz/internal/batch"
)

// progress prints the human-facing "creating"/"skipping" lines.
type progress struct {
	w       io.Writer
	created *color.Color
	skipped *color.Color
	summary *color.Color
}

func newProgress(w io.Writer) *progress {
	return &progress{
		w:       w,
		created: color.New(color.FgGreen),
		skipped: color.New(color.FgYellow),
		summary: color.New(color.Bold),
	}
}

func (p *progress) plot(dir string, rec batch.PlotRecord) {
	p.created.Fprintf(p.w, "creating %s\n", filepath.Join(dir, rec.File))
}

func (p *progress) skip(rec batch.SkipRecord) {
	if strings.HasPrefix(rec.Reason, "skipping") {
		p.skipped.Fprintln(p.w, rec.Reason)
		return
	}
	p.skipped.Fprintf(p.w, "skipping %s: %s\n", strings.Join(rec.Parameters, " x "), rec.Reason)
}

func (p *progress) done(r *batch.Report) {
	p.summary.Fprintf(p.w, "%d plot(s) written, %d skipped\n", len(r.Plots), len(r.Skipped))
}
