package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/fanoviz/internal/app"
	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL file with a syntax error makes app.NewApp panic while loading
	// the parameter space.
	invalidHCL := `
		parameter "lr" {
			type = "continuous"
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "space.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{"all", "--space", filePath, "--oracle", filepath.Join(tempDir, "oracle.db"), "--out", tempDir}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	spacePath, oraclePath := app.WriteFixtures(t, tempDir)
	outDir := filepath.Join(tempDir, "plots")
	require.NoError(t, os.Mkdir(outDir, 0o755))
	args := []string{"all", "--space", spacePath, "--oracle", oraclePath, "--out", outDir, "--resolution", "5"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err)
	for _, f := range []string{"optimizer.png", "lr.png", "layers.png", "manifest.yaml"} {
		require.FileExists(t, filepath.Join(outDir, f))
	}
	require.Contains(t, out.String(), "creating "+filepath.Join(outDir, "lr.png"))
}

func TestRun_MissingOutputDirectory(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	spacePath, oraclePath := app.WriteFixtures(t, tempDir)
	args := []string{"all", "--space", spacePath, "--oracle", oraclePath, "--out", filepath.Join(tempDir, "nope")}

	err := run(&bytes.Buffer{}, args)

	require.Error(t, err)
	require.Contains(t, err.Error(), "missing output directory")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
