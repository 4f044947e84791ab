package space

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpace(t *testing.T) *Space {
	t.Helper()
	s, err := New(
		Descriptor{Name: "optimizer", Kind: Categorical, Levels: []string{"sgd", "adam"}},
		Descriptor{Name: "lr", Kind: Continuous, Lower: 0.001, Upper: 1, Log: true},
		Descriptor{Name: "layers", Kind: Integer, Lower: 1, Upper: 8},
		Descriptor{Name: "momentum", Kind: Continuous, Lower: 0, Upper: 0.9},
	)
	require.NoError(t, err)
	return s
}

func TestSpace_Lookups(t *testing.T) {
	s := newTestSpace(t)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"optimizer", "lr", "layers", "momentum"}, s.ParameterNames())
	assert.Equal(t, []string{"optimizer"}, s.CategoricalParameters())
	assert.Equal(t, []string{"lr", "momentum"}, s.ContinuousParameters())
	assert.Equal(t, []string{"layers"}, s.IntegerParameters())

	dim, ok := s.Dimension("layers")
	require.True(t, ok)
	assert.Equal(t, 2, dim)
	_, ok = s.Dimension("missing")
	assert.False(t, ok)

	name, err := s.NameAt(1)
	require.NoError(t, err)
	assert.Equal(t, "lr", name)
	_, err = s.NameAt(4)
	assert.ErrorContains(t, err, "out of range")

	assert.Equal(t, []string{"sgd", "adam"}, s.CategoricalValues("optimizer"))
	assert.Equal(t, 2, s.CategoricalSize("optimizer"))
	assert.Equal(t, 0, s.CategoricalSize("lr"))
	assert.True(t, s.IsLog("lr"))
	assert.False(t, s.IsLog("momentum"))
}

func TestSpace_Denormalize(t *testing.T) {
	s := newTestSpace(t)

	testCases := []struct {
		name     string
		param    string
		x        float64
		expected float64
	}{
		{name: "linear lower", param: "momentum", x: 0, expected: 0},
		{name: "linear mid", param: "momentum", x: 0.5, expected: 0.45},
		{name: "linear extrapolated", param: "momentum", x: 2, expected: 1.8},
		{name: "log lower", param: "lr", x: 0, expected: 0.001},
		{name: "log mid", param: "lr", x: 0.5, expected: math.Sqrt(0.001)},
		{name: "log upper", param: "lr", x: 1, expected: 1},
		{name: "integer rounds", param: "layers", x: 0.5, expected: 5},
		{name: "integer upper", param: "layers", x: 1, expected: 8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Denormalize(tc.param, tc.x)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}

	_, err := s.Denormalize("optimizer", 0.5)
	assert.ErrorContains(t, err, "categorical")
	_, err = s.Denormalize("missing", 0.5)
	assert.ErrorContains(t, err, "not known")
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		descriptors []Descriptor
		errContains string
	}{
		{
			name:        "duplicate name",
			descriptors: []Descriptor{{Name: "a", Kind: Continuous, Upper: 1}, {Name: "a", Kind: Continuous, Upper: 1}},
			errContains: "more than once",
		},
		{
			name:        "empty categorical",
			descriptors: []Descriptor{{Name: "c", Kind: Categorical}},
			errContains: "at least one value",
		},
		{
			name:        "inverted bounds",
			descriptors: []Descriptor{{Name: "x", Kind: Continuous, Lower: 1, Upper: 0}},
			errContains: "must be below",
		},
		{
			name:        "log with non-positive lower",
			descriptors: []Descriptor{{Name: "x", Kind: Continuous, Lower: 0, Upper: 1, Log: true}},
			errContains: "positive lower bound",
		},
		{
			name:        "empty name",
			descriptors: []Descriptor{{Kind: Continuous, Upper: 1}},
			errContains: "must not be empty",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.descriptors...)
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestDescriptor_IsCopied(t *testing.T) {
	levels := []string{"a", "b"}
	s, err := New(Descriptor{Name: "c", Kind: Categorical, Levels: levels})
	require.NoError(t, err)

	levels[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.CategoricalValues("c"))

	d, ok := s.Descriptor("c")
	require.True(t, ok)
	d.Levels[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.CategoricalValues("c"))
}
