package oracle

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := Open(filepath.Join(t.TempDir(), "marginals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

func TestTable_MarginalAt(t *testing.T) {
	ctx := context.Background()
	tbl := openTestTable(t)
	require.NoError(t, tbl.PutMarginal(ctx, 0, 0.0, Estimate{Mean: 1, Std: 0.1}))
	require.NoError(t, tbl.PutMarginal(ctx, 0, 0.5, Estimate{Mean: 2, Std: 0.3}))
	require.NoError(t, tbl.PutMarginal(ctx, 0, 1.0, Estimate{Mean: 4, Std: 0.1}))

	testCases := []struct {
		name     string
		x        float64
		expected Estimate
	}{
		{name: "exact stored point", x: 0.5, expected: Estimate{Mean: 2, Std: 0.3}},
		{name: "interpolated", x: 0.25, expected: Estimate{Mean: 1.5, Std: 0.2}},
		{name: "upper half", x: 0.75, expected: Estimate{Mean: 3, Std: 0.2}},
		{name: "clamped below", x: -1, expected: Estimate{Mean: 1, Std: 0.1}},
		{name: "clamped above", x: 2, expected: Estimate{Mean: 4, Std: 0.1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tbl.MarginalAt(ctx, 0, tc.x)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected.Mean, got.Mean, 1e-12)
			assert.InDelta(t, tc.expected.Std, got.Std, 1e-12)
		})
	}

	_, err := tbl.MarginalAt(ctx, 7, 0.5)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTable_CategoricalMarginalAt(t *testing.T) {
	ctx := context.Background()
	tbl := openTestTable(t)
	require.NoError(t, tbl.PutCategoricalMarginal(ctx, "optimizer", 1, Estimate{Mean: 2, Std: 0.1}))

	got, err := tbl.CategoricalMarginalAt(ctx, "optimizer", 1)
	require.NoError(t, err)
	assert.Equal(t, Estimate{Mean: 2, Std: 0.1}, got)

	_, err = tbl.CategoricalMarginalAt(ctx, "optimizer", 0)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTable_PairwiseMarginalAt(t *testing.T) {
	ctx := context.Background()
	tbl := openTestTable(t)
	require.NoError(t, tbl.PutPairwiseMarginal(ctx, 0, 2, 0, 0, Estimate{Mean: 1}))
	require.NoError(t, tbl.PutPairwiseMarginal(ctx, 0, 2, 1, 0, Estimate{Mean: 2}))
	require.NoError(t, tbl.PutPairwiseMarginal(ctx, 0, 2, 0, 1, Estimate{Mean: 3}))
	require.NoError(t, tbl.PutPairwiseMarginal(ctx, 0, 2, 1, 1, Estimate{Mean: 4}))

	got, err := tbl.PairwiseMarginalAt(ctx, 0, 2, 0.9, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Mean, "nearest cell is (1, 0)")

	got, err = tbl.PairwiseMarginalAt(ctx, 2, 0, 0.2, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Mean, "transposed query uses the stored (0, 2) table")

	_, err = tbl.PairwiseMarginalAt(ctx, 1, 3, 0, 0)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTable_TopPairwiseImportance(t *testing.T) {
	ctx := context.Background()
	tbl := openTestTable(t)
	require.NoError(t, tbl.PutPairImportance(ctx, PairImportance{ParamA: "a", ParamB: "b", Score: 0.1}))
	require.NoError(t, tbl.PutPairImportance(ctx, PairImportance{ParamA: "a", ParamB: "c", Score: 0.5}))
	require.NoError(t, tbl.PutPairImportance(ctx, PairImportance{ParamA: "b", ParamB: "c", Score: 0.3}))

	pairs, err := tbl.TopPairwiseImportance(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []PairImportance{
		{ParamA: "a", ParamB: "c", Score: 0.5},
		{ParamA: "b", ParamB: "c", Score: 0.3},
	}, pairs)

	pairs, err = tbl.TopPairwiseImportance(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestTable_MainEffectImportance(t *testing.T) {
	ctx := context.Background()
	tbl := openTestTable(t)
	require.NoError(t, tbl.PutMainImportance(ctx, "lr", 0.42))

	got, err := tbl.MainEffectImportance(ctx, "lr")
	require.NoError(t, err)
	assert.Equal(t, 0.42, got)

	_, err = tbl.MainEffectImportance(ctx, "momentum")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestOpenReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "marginals.db")
	tbl, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, tbl.PutMarginal(ctx, 0, 0, Estimate{Mean: 1, Std: 0.1}))
	require.NoError(t, tbl.Close())

	ro, err := OpenReadOnly(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { ro.Close() })

	got, err := ro.MarginalAt(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Estimate{Mean: 1, Std: 0.1}, got)
	assert.Error(t, ro.PutMarginal(ctx, 0, 1, Estimate{}), "writes are rejected")
}

func TestOpenReadOnly_LeavesSchemaAlone(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "partial.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE marginal (dim INTEGER, x REAL, mean REAL, std REAL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := OpenReadOnly(ctx, path)
	require.NoError(t, err)
	_, err = ro.MainEffectImportance(ctx, "lr")
	assert.Error(t, err)
	require.NoError(t, ro.Close())

	db, err = sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var tables int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table'`).Scan(&tables))
	assert.Equal(t, 1, tables)
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := OpenReadOnly(context.Background(), path)

	assert.Error(t, err)
	assert.NoFileExists(t, path)
}
