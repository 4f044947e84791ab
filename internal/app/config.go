// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/fanoviz/internal/render"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "FANOVIZ_"

// Command selects what a run plots.
type Command string

const (
	CommandAll         Command = "all"
	CommandPairs       Command = "pairs"
	CommandMarginal    Command = "marginal"
	CommandCategorical Command = "categorical"
	CommandPair        Command = "pair"
)

// refCount is the number of parameter references each command takes.
var refCount = map[Command]int{
	CommandAll:         0,
	CommandPairs:       0,
	CommandMarginal:    1,
	CommandCategorical: 1,
	CommandPair:        2,
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SpacePath  string `env:"SPACE"`  // hcl files
	OraclePath string `env:"ORACLE"` // sqlite marginal tables
	OutputDir  string `env:"OUT"`

	Command Command
	Refs    []string

	Resolution     int     `env:"RESOLUTION"`
	PairResolution int     `env:"PAIR_RESOLUTION"`
	Lower          float64 `env:"LOWER"`
	Upper          float64 `env:"UPPER"`
	TopN           int     `env:"TOP_N"`
	LogScale       bool    `env:"LOG_SCALE"`
	DeclaredScale  bool    `env:"DECLARED_SCALE"`

	Workers      int  `env:"WORKERS"`
	QueryWorkers int  `env:"QUERY_WORKERS"`
	Width        int  `env:"WIDTH"`
	Height       int  `env:"HEIGHT"`
	Manifest     bool `env:"MANIFEST"`

	LogFormat string `env:"LOG_FORMAT"`
	LogLevel  string `env:"LOG_LEVEL"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		OutputDir:      ".",
		Command:        CommandAll,
		Resolution:     100,
		PairResolution: 20,
		Lower:          0,
		Upper:          1,
		TopN:           20,
		Workers:        4,
		QueryWorkers:   1,
		Width:          800,
		Height:         600,
		Manifest:       true,
		LogFormat:      "text",
		LogLevel:       "info",
	}
}

// LoadEnv overrides cfg from FANOVIZ_* variables. A nil environ reads the
// process environment.
func LoadEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error
	if cfg.SpacePath == "" {
		errs = append(errs, errors.New("SpacePath is a required configuration field and cannot be empty"))
	}
	if cfg.OraclePath == "" {
		errs = append(errs, errors.New("OraclePath is a required configuration field and cannot be empty"))
	}
	if cfg.OutputDir == "" {
		errs = append(errs, errors.New("OutputDir is a required configuration field and cannot be empty"))
	}

	if want, ok := refCount[cfg.Command]; !ok {
		errs = append(errs, fmt.Errorf("unknown command %q", cfg.Command))
	} else if len(cfg.Refs) != want {
		errs = append(errs, fmt.Errorf("command %s takes %d parameter reference(s), got %d", cfg.Command, want, len(cfg.Refs)))
	}

	if cfg.Resolution < 2 {
		errs = append(errs, fmt.Errorf("resolution must be at least 2, got %d", cfg.Resolution))
	}
	if cfg.PairResolution < 2 {
		errs = append(errs, fmt.Errorf("pair resolution must be at least 2, got %d", cfg.PairResolution))
	}
	if cfg.Lower >= cfg.Upper {
		errs = append(errs, fmt.Errorf("lower bound %g must be below upper bound %g", cfg.Lower, cfg.Upper))
	}
	if cfg.TopN < 1 {
		errs = append(errs, fmt.Errorf("top must be at least 1, got %d", cfg.TopN))
	}
	if cfg.Workers < 1 || cfg.QueryWorkers < 1 {
		errs = append(errs, errors.New("workers and query workers must be at least 1"))
	}

	if cfg.Width < render.MinWidth || cfg.Height < render.MinHeight {
		errs = append(errs, fmt.Errorf("image size must be at least %dx%d, got %dx%d",
			render.MinWidth, render.MinHeight, cfg.Width, cfg.Height))
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, errors.New("invalid log-format: must be 'text' or 'json'"))
	}
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		errs = append(errs, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
