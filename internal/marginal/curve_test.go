package marginal

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
	"github.com/specialistvlad/fanoviz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityOracle() *testutil.FakeOracle {
	return &testutil.FakeOracle{
		Marginal: func(_ int, x float64) oracle.Estimate { return oracle.Estimate{Mean: x, Std: 0.1} },
	}
}

func TestMarginal_LinearScenario(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.NewSpace(t, space.Descriptor{Name: "lr", Kind: space.Continuous, Lower: 0, Upper: 1})
	o := identityOracle()

	// --- Act ---
	curve, err := Marginal(ctx, s, o, ByName("lr"), Options1D{Resolution: 5})

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, curve.Points, 5)
	approx := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff([]float64{0, 0.25, 0.5, 0.75, 1}, curve.Means(), approx); diff != "" {
		t.Errorf("means mismatch (-want +got):\n%s", diff)
	}
	for _, p := range curve.Points {
		assert.Equal(t, 0.1, p.Std)
	}
	assert.Equal(t, Linear, curve.Scale)
	assert.Equal(t, "lr", curve.XLabel)
	assert.Equal(t, "Performance", curve.YLabel)
	assert.Equal(t, 0, curve.Dimension)
}

func TestMarginal_OracleProvenance(t *testing.T) {
	ctx := context.Background()
	s := testutil.FixtureSpace(t)
	o := identityOracle()

	curve, err := Marginal(ctx, s, o, ByIndex(2), Options1D{Bounds: Bounds{Lower: 0.25, Upper: 0.75}, Resolution: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"marginal(2,0.25)", "marginal(2,0.5)", "marginal(2,0.75)"}, o.Calls())
	for i, p := range curve.Points {
		assert.InDelta(t, p.Normalized, p.Mean, 1e-12, "point %d", i)
		assert.InDelta(t, 0.9*p.Normalized, p.X, 1e-12, "point %d display", i)
	}
}

func TestMarginal_Defaults(t *testing.T) {
	curve, err := Marginal(context.Background(), testutil.FixtureSpace(t), identityOracle(), ByName("momentum"), Options1D{})
	require.NoError(t, err)
	require.Len(t, curve.Points, DefaultResolution)
	assert.Equal(t, 0.0, curve.Points[0].Normalized)
	assert.Equal(t, 1.0, curve.Points[DefaultResolution-1].Normalized)
}

func TestMarginal_Scale(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSpace(t,
		space.Descriptor{Name: "lr", Kind: space.Continuous, Lower: 1, Upper: 2, Log: true},
		space.Descriptor{Name: "layers", Kind: space.Integer, Lower: 1, Upper: 64, Log: true},
		space.Descriptor{Name: "wd", Kind: space.Continuous, Lower: 0, Upper: 5},
	)

	testCases := []struct {
		name string
		ref  string
		opts Options1D
		want Scale
	}{
		{name: "exponential display grid is detected", ref: "lr", want: Log},
		{name: "integer never inferred", ref: "layers", want: Linear},
		{name: "declared log flag", ref: "layers", opts: Options1D{DeclaredScale: true}, want: Log},
		{name: "declared linear", ref: "wd", opts: Options1D{DeclaredScale: true}, want: Linear},
		{name: "forced log", ref: "wd", opts: Options1D{LogScale: true}, want: Log},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.Resolution = 10
			curve, err := Marginal(ctx, s, identityOracle(), ByName(tc.ref), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, curve.Scale)
		})
	}

	t.Run("display follows 2^x", func(t *testing.T) {
		curve, err := Marginal(ctx, s, identityOracle(), ByName("lr"), Options1D{Resolution: 3})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1, math.Sqrt2, 2}, curve.XValues(), 1e-9)
	})
}

func TestMarginal_Errors(t *testing.T) {
	ctx := context.Background()
	s := testutil.FixtureSpace(t)

	t.Run("unknown parameter", func(t *testing.T) {
		_, err := Marginal(ctx, s, identityOracle(), ByName("dropout"), Options1D{})
		assert.True(t, errors.Is(err, ErrUnknownParameter))
	})

	t.Run("categorical parameter", func(t *testing.T) {
		o := identityOracle()
		_, err := Marginal(ctx, s, o, ByName("optimizer"), Options1D{})
		assert.True(t, errors.Is(err, ErrWrongParameterKind))
		assert.Empty(t, o.Calls(), "no oracle query for a wrong-kind request")
	})

	t.Run("invalid resolution", func(t *testing.T) {
		_, err := Marginal(ctx, s, identityOracle(), ByName("lr"), Options1D{Resolution: -3})
		assert.True(t, errors.Is(err, ErrInvalidResolution))
	})

	t.Run("oracle failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Marginal(ctx, s, &testutil.FakeOracle{Fail: boom}, ByName("lr"), Options1D{Resolution: 2})
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "marginal of lr")
	})
}
