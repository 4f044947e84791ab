// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package render encodes marginal plot data as PNG images. Curves and
// categorical bands are drawn with go-chart; pairwise surfaces are drawn as
// jet-coloured heatmaps with a colour bar.
package render
