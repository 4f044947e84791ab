// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package testutil

import (
	"testing"

	"github.com/specialistvlad/fanoviz/internal/space"
	"github.com/stretchr/testify/require"
)

// NewSpace builds a parameter space or fails the test.
func NewSpace(t *testing.T, descriptors ...space.Descriptor) *space.Space {
	t.Helper()
	s, err := space.New(descriptors...)
	require.NoError(t, err)
	return s
}

// FixtureSpace is a small mixed space: one categorical, two continuous (one
// log-scaled) and one integer parameter, in that dimension order.
func FixtureSpace(t *testing.T) *space.Space {
	t.Helper()
	return NewSpace(t,
		space.Descriptor{Name: "optimizer", Kind: space.Categorical, Levels: []string{"sgd", "adam"}},
		space.Descriptor{Name: "lr", Kind: space.Continuous, Lower: 0.001, Upper: 1, Log: true},
		space.Descriptor{Name: "momentum", Kind: space.Continuous, Lower: 0, Upper: 0.9},
		space.Descriptor{Name: "layers", Kind: space.Integer, Lower: 1, Upper: 8},
	)
}
