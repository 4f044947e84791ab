// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package space

import "fmt"

// Kind classifies a parameter.
type Kind int

const (
	Categorical Kind = iota
	Continuous
	Integer
)

// String returns the lowercase kind name used in configuration files.
func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "categorical":
		return Categorical, nil
	case "continuous", "float", "real":
		return Continuous, nil
	case "integer", "int":
		return Integer, nil
	default:
		return 0, fmt.Errorf("unknown parameter type %q: must be 'categorical', 'continuous' or 'integer'", s)
	}
}

// Descriptor is the read-only description of one parameter.
type Descriptor struct {
	Name string
	Kind Kind

	// Levels holds the ordered display labels of a categorical parameter.
	Levels []string

	// Lower and Upper bound the display domain of continuous and integer
	// parameters. Normalized 0 maps to Lower and 1 to Upper.
	Lower float64
	Upper float64

	// Log marks a parameter whose normalized axis is uniform in log space.
	Log bool
}

// Validate checks the descriptor for internal consistency.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("parameter name must not be empty")
	}
	switch d.Kind {
	case Categorical:
		if len(d.Levels) == 0 {
			return fmt.Errorf("categorical parameter '%s' must declare at least one value", d.Name)
		}
	case Continuous, Integer:
		if !(d.Lower < d.Upper) {
			return fmt.Errorf("parameter '%s': lower bound %g must be below upper bound %g", d.Name, d.Lower, d.Upper)
		}
		if d.Log && d.Lower <= 0 {
			return fmt.Errorf("parameter '%s': log scale requires a positive lower bound, got %g", d.Name, d.Lower)
		}
	default:
		return fmt.Errorf("parameter '%s' has unsupported kind %s", d.Name, d.Kind)
	}
	return nil
}
