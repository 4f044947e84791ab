// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
)

func loadSpace(ctx context.Context, path string) (*space.Space, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading parameter space...", "space_path", path)

	s, err := space.LoadFiles(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load parameter space: %w", err)
	}
	logger.Info("Parameter space loaded.", "parameters", s.Len())
	return s, nil
}

// openOracle opens an existing marginal table read-only. A missing file is
// an error rather than a fresh empty database.
func openOracle(ctx context.Context, path string) (*oracle.Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Opening marginal oracle...", "oracle_path", path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open marginal oracle: %w", err)
	}
	t, err := oracle.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open marginal oracle %s: %w", path, err)
	}
	return t, nil
}
