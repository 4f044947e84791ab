// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/space"
)

// ParameterSpace is the read-only view of the parameter registry the engine
// needs. *space.Space implements it.
type ParameterSpace interface {
	NameAt(i int) (string, error)
	Dimension(name string) (int, bool)
	Kind(name string) (space.Kind, bool)
	CategoricalValues(name string) []string
	Denormalize(name string, x float64) (float64, error)
	IsLog(name string) bool
}

// Ref refers to a parameter either by zero-based dimension index or by name.
type Ref struct {
	index   int
	name    string
	byIndex bool
}

// ByIndex refers to the parameter at dimension index i.
func ByIndex(i int) Ref { return Ref{index: i, byIndex: true} }

// ByName refers to a parameter by name.
func ByName(name string) Ref { return Ref{name: name} }

// IsIndex reports whether the reference is positional.
func (r Ref) IsIndex() bool { return r.byIndex }

func (r Ref) String() string {
	if r.byIndex {
		return "#" + strconv.Itoa(r.index)
	}
	return r.name
}

// ParseRef reads "#<n>" as a dimension index and anything else as a name.
func ParseRef(s string) (Ref, error) {
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 {
			return Ref{}, fmt.Errorf("invalid dimension reference %q", s)
		}
		return ByIndex(i), nil
	}
	if s == "" {
		return Ref{}, fmt.Errorf("empty parameter reference")
	}
	return ByName(s), nil
}

// Resolved is the canonical form of a Ref.
type Resolved struct {
	Dimension int
	Name      string
}

// Resolve maps a reference to its dimension index and canonical name.
// Index references are looked up positionally without an existence check
// beyond what the space itself enforces; name references must exist.
func Resolve(ctx context.Context, ps ParameterSpace, ref Ref) (Resolved, error) {
	if ref.byIndex {
		name, err := ps.NameAt(ref.index)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Dimension: ref.index, Name: name}, nil
	}

	dim, ok := ps.Dimension(ref.name)
	if !ok {
		return Resolved{}, &UnknownParameterError{Name: ref.name}
	}
	ctxlog.FromContext(ctx).Debug("Resolved parameter reference.", "ref", ref.String(), "dim", dim)
	return Resolved{Dimension: dim, Name: ref.name}, nil
}

func kindOf(ps ParameterSpace, name string) space.Kind {
	kind, _ := ps.Kind(name)
	return kind
}
