// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package marginal turns parameter metadata and Marginal Oracle queries into
// plot-ready data for three parameter shapes:
//
//   - Categorical parameters become a CategoricalBand: one box per level,
//     spanning mean ± std, plus y-axis limits covering every box.
//   - Continuous and integer parameters become a Curve1D: the marginal mean
//     and std sampled on an evenly spaced normalized grid, with x values in
//     display units and a linear or logarithmic scale tag.
//   - Pairs of continuous/integer parameters become a Surface2D: a matrix of
//     joint marginal means over two independently denormalized axes.
//
// Every operation first resolves its parameter reference through Resolve,
// so an unknown name is reported the same way everywhere. The package does
// no rendering and no file I/O; results are immutable values.
package marginal
