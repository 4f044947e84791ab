// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package oracle defines the Marginal Oracle contract consumed by the
// plotting engine, and a SQLite-backed implementation that answers queries
// from precomputed functional ANOVA marginals.
package oracle

import (
	"context"
	"errors"
)

// ErrNoData is returned when the oracle holds no estimate for a query.
var ErrNoData = errors.New("no marginal data")

// Estimate is a marginal prediction with its uncertainty.
type Estimate struct {
	Mean float64
	Std  float64
}

// PairImportance ranks a parameter pair by the variance its interaction explains.
type PairImportance struct {
	ParamA string
	ParamB string
	Score  float64
}

// Oracle answers marginal-effect queries. Implementations must be safe for
// concurrent use; queries are deterministic and side-effect free.
type Oracle interface {
	// MarginalAt returns the main-effect marginal of dimension dim at
	// normalized value x.
	MarginalAt(ctx context.Context, dim int, x float64) (Estimate, error)

	// CategoricalMarginalAt returns the marginal of a categorical parameter at
	// a level index.
	CategoricalMarginalAt(ctx context.Context, name string, level int) (Estimate, error)

	// PairwiseMarginalAt returns the joint marginal of two dimensions at
	// normalized values (x1, x2).
	PairwiseMarginalAt(ctx context.Context, dim1, dim2 int, x1, x2 float64) (Estimate, error)

	// TopPairwiseImportance returns up to n pairs, most important first.
	TopPairwiseImportance(ctx context.Context, n int) ([]PairImportance, error)
}

// ImportanceSource is implemented by oracles that can report the fraction of
// total variance explained by a single parameter's main effect.
type ImportanceSource interface {
	MainEffectImportance(ctx context.Context, name string) (float64, error)
}
