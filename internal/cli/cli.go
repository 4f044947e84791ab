// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package cli

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/fanoviz/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments against the process environment.
// It returns a populated Config, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return ParseWithEnv(args, output, nil)
}

// ParseWithEnv is Parse with an explicit FANOVIZ_* environment. Flags win
// over the environment, which wins over defaults.
func ParseWithEnv(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg, environ); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	var selected *app.Config
	root := newRootCommand(&cfg, &selected)
	root.SetOut(output)
	root.SetErr(output)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if selected == nil {
		slog.Debug("No command selected, help was printed.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "command", selected.Command)
	return selected, false, nil
}

func newRootCommand(cfg *app.Config, selected **app.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "fanoviz",
		Short: "Plot functional ANOVA marginals of a parameter space.",
		Long: `fanoviz renders the effect of single parameters and parameter pairs on
predicted performance, from precomputed functional ANOVA marginals.

The parameter space is read from HCL files with "parameter" blocks and the
marginals from a SQLite oracle database. Every setting can also be given as a
FANOVIZ_<NAME> environment variable, e.g. FANOVIZ_SPACE or FANOVIZ_WORKERS.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.SpacePath, "space", cfg.SpacePath, "Path to the parameter space .hcl file or directory.")
	pf.StringVar(&cfg.OraclePath, "oracle", cfg.OraclePath, "Path to the SQLite marginal oracle.")
	pf.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "Existing directory the plots are written to.")
	pf.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "Grid points of a 1-D marginal.")
	pf.IntVar(&cfg.PairResolution, "pair-resolution", cfg.PairResolution, "Grid points per axis of a pairwise surface.")
	pf.Float64Var(&cfg.Lower, "lower", cfg.Lower, "Lower bound of the normalized sampling range.")
	pf.Float64Var(&cfg.Upper, "upper", cfg.Upper, "Upper bound of the normalized sampling range.")
	pf.BoolVar(&cfg.LogScale, "log-scale", cfg.LogScale, "Force a logarithmic x-axis on 1-D marginals.")
	pf.BoolVar(&cfg.DeclaredScale, "declared-scale", cfg.DeclaredScale, "Take the x-axis scale from the space's log flag instead of inferring it.")
	pf.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of plots rendered concurrently.")
	pf.IntVar(&cfg.QueryWorkers, "query-workers", cfg.QueryWorkers, "Concurrent oracle queries per pairwise surface.")
	pf.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels.")
	pf.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels.")
	pf.BoolVar(&cfg.Manifest, "manifest", cfg.Manifest, "Write manifest.yaml describing the run.")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	pairs := command(cfg, selected, app.CommandPairs, "pairs", "Plot the surfaces of the most important parameter pairs.", cobra.NoArgs)
	pairs.Flags().IntVarP(&cfg.TopN, "top", "n", cfg.TopN, "Number of top-ranked pairs to consider.")

	root.AddCommand(
		command(cfg, selected, app.CommandAll, "all", "Plot the main effect of every parameter.", cobra.NoArgs),
		pairs,
		command(cfg, selected, app.CommandMarginal, "marginal <param>", "Plot the marginal of one continuous or integer parameter.", cobra.ExactArgs(1)),
		command(cfg, selected, app.CommandCategorical, "categorical <param>", "Plot the marginal of one categorical parameter.", cobra.ExactArgs(1)),
		command(cfg, selected, app.CommandPair, "pair <param> <param>", "Plot the joint marginal of two parameters.", cobra.ExactArgs(2)),
	)
	return root
}

// command builds a subcommand that validates cfg into *selected. Parameters
// are given by name or as #<index>.
func command(cfg *app.Config, selected **app.Config, cmd app.Command, use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, refs []string) error {
			c := *cfg
			c.Command = cmd
			c.Refs = refs
			validated, err := app.NewConfig(c)
			if err != nil {
				return err
			}
			*selected = validated
			return nil
		},
	}
}
