// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package space provides the Parameter Space: the ordered registry of
// parameter names, their kinds and domains, and the conversion from
// normalized [0,1] values to real-world display units.
//
// A Space is built once, from descriptors or from HCL files, and is
// read-only afterwards. The marginal engine only reads from it, so a single
// Space may be shared by concurrent plotting workers without locking.
//
// Dimension indices follow declaration order. When loading from several
// files, files are visited in lexical order and parameters keep the order in
// which they appear inside each file.
package space
