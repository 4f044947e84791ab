// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/fanoviz/internal/oracle"
)

// FakeOracle is an in-memory oracle.Oracle driven by plain functions. Unset
// functions answer with a zero estimate. Every query is recorded.
type FakeOracle struct {
	Marginal    func(dim int, x float64) oracle.Estimate
	Categorical map[string][]oracle.Estimate
	Pairwise    func(dim1, dim2 int, x1, x2 float64) oracle.Estimate
	Pairs       []oracle.PairImportance
	Importance  map[string]float64

	// Fail makes every query return this error when set.
	Fail error

	mu    sync.Mutex
	calls []string
}

var (
	_ oracle.Oracle           = (*FakeOracle)(nil)
	_ oracle.ImportanceSource = (*FakeOracle)(nil)
)

func (f *FakeOracle) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded queries in call order.
func (f *FakeOracle) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeOracle) MarginalAt(_ context.Context, dim int, x float64) (oracle.Estimate, error) {
	f.record("marginal(%d,%g)", dim, x)
	if f.Fail != nil {
		return oracle.Estimate{}, f.Fail
	}
	if f.Marginal == nil {
		return oracle.Estimate{}, nil
	}
	return f.Marginal(dim, x), nil
}

func (f *FakeOracle) CategoricalMarginalAt(_ context.Context, name string, level int) (oracle.Estimate, error) {
	f.record("categorical(%s,%d)", name, level)
	if f.Fail != nil {
		return oracle.Estimate{}, f.Fail
	}
	levels := f.Categorical[name]
	if level < 0 || level >= len(levels) {
		return oracle.Estimate{}, fmt.Errorf("%w: %s level %d", oracle.ErrNoData, name, level)
	}
	return levels[level], nil
}

func (f *FakeOracle) PairwiseMarginalAt(_ context.Context, dim1, dim2 int, x1, x2 float64) (oracle.Estimate, error) {
	f.record("pairwise(%d,%d,%g,%g)", dim1, dim2, x1, x2)
	if f.Fail != nil {
		return oracle.Estimate{}, f.Fail
	}
	if f.Pairwise == nil {
		return oracle.Estimate{}, nil
	}
	return f.Pairwise(dim1, dim2, x1, x2), nil
}

func (f *FakeOracle) TopPairwiseImportance(_ context.Context, n int) ([]oracle.PairImportance, error) {
	f.record("top(%d)", n)
	if f.Fail != nil {
		return nil, f.Fail
	}
	if n <= 0 {
		return nil, nil
	}
	return f.Pairs[:min(n, len(f.Pairs))], nil
}

func (f *FakeOracle) MainEffectImportance(_ context.Context, name string) (float64, error) {
	v, ok := f.Importance[name]
	if !ok {
		return 0, fmt.Errorf("%w: importance of %s", oracle.ErrNoData, name)
	}
	return v, nil
}
