// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the run manifest written next to the plots.
const ManifestFile = "manifest.yaml"

// PlotKind names the shape of a rendered plot.
type PlotKind string

const (
	KindCategorical PlotKind = "categorical"
	KindCurve       PlotKind = "curve"
	KindSurface     PlotKind = "surface"
)

// PlotRecord describes one file written by a run.
type PlotRecord struct {
	Kind       PlotKind `yaml:"kind"`
	Parameters []string `yaml:"parameters,flow"`
	File       string   `yaml:"file"`
	Scale      string   `yaml:"scale,omitempty"`

	// Importance is the fraction of variance explained by the plotted main
	// effect, or the pair's importance score. Nil when the oracle cannot
	// report it.
	Importance *float64 `yaml:"importance,omitempty"`
}

// SkipRecord describes a plot that was not produced.
type SkipRecord struct {
	Parameters []string `yaml:"parameters,flow"`
	Reason     string   `yaml:"reason"`
}

// Report summarizes one run.
type Report struct {
	RunID     string       `yaml:"run_id"`
	Operation string       `yaml:"operation"`
	Directory string       `yaml:"directory"`
	Plots     []PlotRecord `yaml:"plots"`
	Skipped   []SkipRecord `yaml:"skipped,omitempty"`
}

// Files returns the paths of every written plot, relative to the output
// directory, in job order.
func (r *Report) Files() []string {
	files := make([]string, len(r.Plots))
	for i, p := range r.Plots {
		files[i] = p.File
	}
	return files
}

// WriteManifest stores the report as YAML in the output directory.
func (r *Report) WriteManifest() (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(r.Directory, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return &r, nil
}
