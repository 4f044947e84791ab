package marginal

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
	"github.com/specialistvlad/fanoviz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorical_OptimizerScenario(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.NewSpace(t, space.Descriptor{Name: "optimizer", Kind: space.Categorical, Levels: []string{"sgd", "adam"}})
	o := &testutil.FakeOracle{Categorical: map[string][]oracle.Estimate{
		"optimizer": {{Mean: 1.0, Std: 0.2}, {Mean: 2.0, Std: 0.1}},
	}}

	// --- Act ---
	band, err := Categorical(ctx, s, o, ByName("optimizer"))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, band.Levels, 2)
	assert.Equal(t, "sgd", band.Levels[0].Label)
	assert.Equal(t, "adam", band.Levels[1].Label)
	assert.Equal(t, 1, band.Levels[1].Position)
	assert.InDelta(t, 0.8, band.Levels[0].Lower, 1e-12)
	assert.InDelta(t, 1.9, band.Levels[1].Lower, 1e-12)
	assert.InDelta(t, 1.2, band.Levels[0].Upper, 1e-12)
	assert.InDelta(t, 2.1, band.Levels[1].Upper, 1e-12)
	assert.InDelta(t, 0.8, band.MinY, 1e-12)
	assert.InDelta(t, 2.1, band.MaxY, 1e-12)
	assert.Equal(t, "optimizer", band.XLabel)
	assert.Equal(t, PerformanceLabel, band.YLabel)
}

func TestCategorical_ExtentsCoverEveryLevel(t *testing.T) {
	ctx := context.Background()
	estimates := []oracle.Estimate{
		{Mean: 5, Std: 0}, {Mean: -1, Std: 3}, {Mean: 2, Std: 0.5}, {Mean: 9, Std: 1.5},
	}
	s := testutil.NewSpace(t, space.Descriptor{Name: "act", Kind: space.Categorical, Levels: []string{"a", "b", "c", "d"}})
	o := &testutil.FakeOracle{Categorical: map[string][]oracle.Estimate{"act": estimates}}

	band, err := Categorical(ctx, s, o, ByIndex(0))
	require.NoError(t, err)

	for i, lvl := range band.Levels {
		assert.Equal(t, estimates[i].Mean-estimates[i].Std, lvl.Lower)
		assert.Equal(t, estimates[i].Mean+estimates[i].Std, lvl.Upper)
		assert.LessOrEqual(t, lvl.Lower, lvl.Mean)
		assert.LessOrEqual(t, lvl.Mean, lvl.Upper)
		assert.LessOrEqual(t, band.MinY, lvl.Lower)
		assert.GreaterOrEqual(t, band.MaxY, lvl.Upper)
	}
	assert.Equal(t, -4.0, band.MinY)
	assert.Equal(t, 10.5, band.MaxY)
	assert.Equal(t, []string{"categorical(act,0)", "categorical(act,1)", "categorical(act,2)", "categorical(act,3)"}, o.Calls())
}

func TestCategorical_Errors(t *testing.T) {
	ctx := context.Background()
	s := testutil.FixtureSpace(t)

	_, err := Categorical(ctx, s, &testutil.FakeOracle{}, ByName("lr"))
	assert.True(t, errors.Is(err, ErrWrongParameterKind))
	var wrong *WrongKindError
	require.ErrorAs(t, err, &wrong)
	assert.Equal(t, space.Continuous, wrong.Kind)

	_, err = Categorical(ctx, s, &testutil.FakeOracle{}, ByName("dropout"))
	assert.True(t, errors.Is(err, ErrUnknownParameter))

	_, err = Categorical(ctx, s, &testutil.FakeOracle{}, ByName("optimizer"))
	assert.ErrorIs(t, err, oracle.ErrNoData)
}
