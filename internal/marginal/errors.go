// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/fanoviz/internal/space"
)

var (
	// ErrUnknownParameter marks a reference to a name that is not in the space.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrWrongParameterKind marks a plot request that does not fit the
	// parameter's kind.
	ErrWrongParameterKind = errors.New("wrong parameter kind")

	// ErrInvalidResolution marks a grid request with fewer than one point.
	ErrInvalidResolution = errors.New("invalid resolution")
)

// UnknownParameterError reports a name missing from the parameter space.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("parameter %s not known", e.Name)
}

// Is makes errors.Is(err, ErrUnknownParameter) match.
func (e *UnknownParameterError) Is(target error) bool {
	return target == ErrUnknownParameter
}

// WrongKindError reports a parameter whose kind does not fit the requested plot.
type WrongKindError struct {
	Name string
	Kind space.Kind
	Want string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("parameter %s is a %s parameter, not %s", e.Name, e.Kind, e.Want)
}

// Is makes errors.Is(err, ErrWrongParameterKind) match.
func (e *WrongKindError) Is(target error) bool {
	return target == ErrWrongParameterKind
}

// IsSkippable reports whether err should skip a single plot in a batch
// rather than abort it.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrUnknownParameter) || errors.Is(err, ErrWrongParameterKind)
}
