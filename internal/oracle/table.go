// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS marginal (
	dim   INTEGER NOT NULL,
	x     REAL    NOT NULL,
	mean  REAL    NOT NULL,
	std   REAL    NOT NULL,
	PRIMARY KEY (dim, x)
);

CREATE TABLE IF NOT EXISTS categorical_marginal (
	param TEXT    NOT NULL,
	level INTEGER NOT NULL,
	mean  REAL    NOT NULL,
	std   REAL    NOT NULL,
	PRIMARY KEY (param, level)
);

CREATE TABLE IF NOT EXISTS pairwise_marginal (
	dim1  INTEGER NOT NULL,
	dim2  INTEGER NOT NULL,
	x1    REAL    NOT NULL,
	x2    REAL    NOT NULL,
	mean  REAL    NOT NULL,
	std   REAL    NOT NULL,
	PRIMARY KEY (dim1, dim2, x1, x2)
);

CREATE TABLE IF NOT EXISTS pairwise_importance (
	param_a TEXT NOT NULL,
	param_b TEXT NOT NULL,
	score   REAL NOT NULL,
	PRIMARY KEY (param_a, param_b)
);

CREATE TABLE IF NOT EXISTS main_importance (
	param    TEXT PRIMARY KEY,
	fraction REAL NOT NULL
);
`

// Table is an Oracle backed by precomputed marginal tables in SQLite.
type Table struct {
	db *sql.DB
}

var (
	_ Oracle           = (*Table)(nil)
	_ ImportanceSource = (*Table)(nil)
)

// Open opens (or creates) a marginal table database and runs migrations.
func Open(dbPath string) (*Table, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Table{db: db}, nil
}

// OpenReadOnly opens an existing marginal table database without creating
// it or touching its schema. Tables that are missing surface as query errors.
func OpenReadOnly(ctx context.Context, dbPath string) (*Table, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	dsn := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &Table{db: db}, nil
}

// Close closes the underlying database connection.
func (t *Table) Close() error {
	return t.db.Close()
}

// PutMarginal stores a main-effect estimate.
func (t *Table) PutMarginal(ctx context.Context, dim int, x float64, e Estimate) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO marginal (dim, x, mean, std) VALUES (?, ?, ?, ?)`,
		dim, x, e.Mean, e.Std)
	if err != nil {
		return fmt.Errorf("put marginal: %w", err)
	}
	return nil
}

// PutCategoricalMarginal stores the estimate of one categorical level.
func (t *Table) PutCategoricalMarginal(ctx context.Context, name string, level int, e Estimate) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO categorical_marginal (param, level, mean, std) VALUES (?, ?, ?, ?)`,
		name, level, e.Mean, e.Std)
	if err != nil {
		return fmt.Errorf("put categorical marginal: %w", err)
	}
	return nil
}

// PutPairwiseMarginal stores a joint estimate of two dimensions.
func (t *Table) PutPairwiseMarginal(ctx context.Context, dim1, dim2 int, x1, x2 float64, e Estimate) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pairwise_marginal (dim1, dim2, x1, x2, mean, std) VALUES (?, ?, ?, ?, ?, ?)`,
		dim1, dim2, x1, x2, e.Mean, e.Std)
	if err != nil {
		return fmt.Errorf("put pairwise marginal: %w", err)
	}
	return nil
}

// PutPairImportance stores the importance score of a parameter pair.
func (t *Table) PutPairImportance(ctx context.Context, p PairImportance) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pairwise_importance (param_a, param_b, score) VALUES (?, ?, ?)`,
		p.ParamA, p.ParamB, p.Score)
	if err != nil {
		return fmt.Errorf("put pair importance: %w", err)
	}
	return nil
}

// PutMainImportance stores the variance fraction explained by a main effect.
func (t *Table) PutMainImportance(ctx context.Context, name string, fraction float64) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO main_importance (param, fraction) VALUES (?, ?)`,
		name, fraction)
	if err != nil {
		return fmt.Errorf("put main importance: %w", err)
	}
	return nil
}

// MarginalAt interpolates linearly between the two stored points that
// bracket x. Queries outside the stored range return the nearest end point.
func (t *Table) MarginalAt(ctx context.Context, dim int, x float64) (Estimate, error) {
	below, belowX, errBelow := t.marginalRow(ctx,
		`SELECT x, mean, std FROM marginal WHERE dim = ? AND x <= ? ORDER BY x DESC LIMIT 1`, dim, x)
	above, aboveX, errAbove := t.marginalRow(ctx,
		`SELECT x, mean, std FROM marginal WHERE dim = ? AND x >= ? ORDER BY x ASC LIMIT 1`, dim, x)

	switch {
	case errBelow != nil && !errors.Is(errBelow, ErrNoData):
		return Estimate{}, errBelow
	case errAbove != nil && !errors.Is(errAbove, ErrNoData):
		return Estimate{}, errAbove
	case errBelow != nil && errAbove != nil:
		return Estimate{}, fmt.Errorf("dimension %d: %w", dim, ErrNoData)
	case errBelow != nil:
		return above, nil
	case errAbove != nil || aboveX == belowX:
		return below, nil
	}

	w := (x - belowX) / (aboveX - belowX)
	return Estimate{
		Mean: below.Mean + w*(above.Mean-below.Mean),
		Std:  below.Std + w*(above.Std-below.Std),
	}, nil
}

func (t *Table) marginalRow(ctx context.Context, query string, args ...any) (Estimate, float64, error) {
	var e Estimate
	var x float64
	err := t.db.QueryRowContext(ctx, query, args...).Scan(&x, &e.Mean, &e.Std)
	if errors.Is(err, sql.ErrNoRows) {
		return Estimate{}, 0, ErrNoData
	}
	if err != nil {
		return Estimate{}, 0, fmt.Errorf("query marginal: %w", err)
	}
	return e, x, nil
}

// CategoricalMarginalAt returns the stored estimate of a level.
func (t *Table) CategoricalMarginalAt(ctx context.Context, name string, level int) (Estimate, error) {
	var e Estimate
	err := t.db.QueryRowContext(ctx,
		`SELECT mean, std FROM categorical_marginal WHERE param = ? AND level = ?`,
		name, level).Scan(&e.Mean, &e.Std)
	if errors.Is(err, sql.ErrNoRows) {
		return Estimate{}, fmt.Errorf("parameter '%s' level %d: %w", name, level, ErrNoData)
	}
	if err != nil {
		return Estimate{}, fmt.Errorf("query categorical marginal: %w", err)
	}
	return e, nil
}

// PairwiseMarginalAt returns the stored cell nearest to (x1, x2). When only
// the transposed pair (dim2, dim1) was stored, it is used instead.
func (t *Table) PairwiseMarginalAt(ctx context.Context, dim1, dim2 int, x1, x2 float64) (Estimate, error) {
	e, err := t.nearestCell(ctx, dim1, dim2, x1, x2)
	if errors.Is(err, ErrNoData) {
		e, err = t.nearestCell(ctx, dim2, dim1, x2, x1)
	}
	if errors.Is(err, ErrNoData) {
		return Estimate{}, fmt.Errorf("dimensions %d x %d: %w", dim1, dim2, ErrNoData)
	}
	return e, err
}

func (t *Table) nearestCell(ctx context.Context, dim1, dim2 int, x1, x2 float64) (Estimate, error) {
	var e Estimate
	err := t.db.QueryRowContext(ctx, `
		SELECT mean, std FROM pairwise_marginal
		WHERE dim1 = ? AND dim2 = ?
		ORDER BY (x1 - ?) * (x1 - ?) + (x2 - ?) * (x2 - ?) ASC
		LIMIT 1`,
		dim1, dim2, x1, x1, x2, x2).Scan(&e.Mean, &e.Std)
	if errors.Is(err, sql.ErrNoRows) {
		return Estimate{}, ErrNoData
	}
	if err != nil {
		return Estimate{}, fmt.Errorf("query pairwise marginal: %w", err)
	}
	return e, nil
}

// TopPairwiseImportance returns the n highest scoring pairs.
func (t *Table) TopPairwiseImportance(ctx context.Context, n int) ([]PairImportance, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := t.db.QueryContext(ctx,
		`SELECT param_a, param_b, score FROM pairwise_importance ORDER BY score DESC, param_a, param_b LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query pairwise importance: %w", err)
	}
	defer rows.Close()

	var pairs []PairImportance
	for rows.Next() {
		var p PairImportance
		if err := rows.Scan(&p.ParamA, &p.ParamB, &p.Score); err != nil {
			return nil, fmt.Errorf("scan pairwise importance: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// MainEffectImportance returns the stored variance fraction of a parameter.
func (t *Table) MainEffectImportance(ctx context.Context, name string) (float64, error) {
	var fraction float64
	err := t.db.QueryRowContext(ctx,
		`SELECT fraction FROM main_importance WHERE param = ?`, name).Scan(&fraction)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("parameter '%s' importance: %w", name, ErrNoData)
	}
	if err != nil {
		return 0, fmt.Errorf("query main importance: %w", err)
	}
	return fraction, nil
}
