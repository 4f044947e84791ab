// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/testutil"
	"github.com/stretchr/testify/require"
)

// FixtureSpaceHCL declares one parameter of each kind.
const FixtureSpaceHCL = `
parameter "optimizer" {
  type   = "categorical"
  values = ["sgd", "adam"]
}

parameter "lr" {
  type  = "continuous"
  lower = 0.001
  upper = 1
  log   = true
}

parameter "layers" {
  type  = "integer"
  lower = 1
  upper = 8
}
`

// WriteFixtures writes FixtureSpaceHCL and a matching SQLite oracle into
// dir and returns their paths. The oracle answers mean = x for 1-D queries,
// mean = x1 + x2 for 2-D queries, and ranks optimizer x lr above lr x layers.
func WriteFixtures(t *testing.T, dir string) (spacePath, oraclePath string) {
	t.Helper()
	ctx := context.Background()

	spacePath = filepath.Join(dir, "space.hcl")
	require.NoError(t, os.WriteFile(spacePath, []byte(FixtureSpaceHCL), 0o644))

	oraclePath = filepath.Join(dir, "oracle.db")
	tbl, err := oracle.Open(oraclePath)
	require.NoError(t, err)
	defer tbl.Close()

	for _, dim := range []int{1, 2} {
		for _, x := range []float64{0, 1} {
			require.NoError(t, tbl.PutMarginal(ctx, dim, x, oracle.Estimate{Mean: x, Std: 0.1}))
		}
	}
	require.NoError(t, tbl.PutCategoricalMarginal(ctx, "optimizer", 0, oracle.Estimate{Mean: 1, Std: 0.2}))
	require.NoError(t, tbl.PutCategoricalMarginal(ctx, "optimizer", 1, oracle.Estimate{Mean: 2, Std: 0.1}))
	for _, x1 := range []float64{0, 0.5, 1} {
		for _, x2 := range []float64{0, 0.5, 1} {
			require.NoError(t, tbl.PutPairwiseMarginal(ctx, 1, 2, x1, x2, oracle.Estimate{Mean: x1 + x2}))
		}
	}
	require.NoError(t, tbl.PutPairImportance(ctx, oracle.PairImportance{ParamA: "optimizer", ParamB: "lr", Score: 0.6}))
	require.NoError(t, tbl.PutPairImportance(ctx, oracle.PairImportance{ParamA: "lr", ParamB: "layers", Score: 0.3}))
	require.NoError(t, tbl.PutMainImportance(ctx, "lr", 0.5))
	return spacePath, oraclePath
}

// SetupAppTest creates a new app instance over the fixtures for system testing.
func SetupAppTest(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()

	dir := t.TempDir()
	cfg.SpacePath, cfg.OraclePath = WriteFixtures(t, dir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(dir, "out")
		require.NoError(t, os.Mkdir(cfg.OutputDir, 0o755))
	}
	cfg.LogLevel = "debug"

	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := NewApp(logBuffer, validated)
	t.Cleanup(func() {
		_ = testApp.Close()
		if os.Getenv("FANOVIZ_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
