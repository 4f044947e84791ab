// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package batch drives the marginal engine over whole parameter spaces and
// writes one image per plot into an output directory.
//
// Two batch operations exist. PlotAll renders every main effect: categorical
// parameters first, then continuous, then integer. TopPairs renders the
// surfaces of the n most important parameter pairs reported by the oracle,
// skipping any pair with a categorical member without backfilling.
//
// Plots are independent of one another, so they are rendered by a fixed
// pool of workers. The report always lists plots in job order.
package batch
