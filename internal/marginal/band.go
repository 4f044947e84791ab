// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package marginal

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/oracle"
	"github.com/specialistvlad/fanoviz/internal/space"
)

// Categorical builds one box per level of a categorical parameter. Each box
// spans mean ± std around its median. MinY and MaxY start at the first
// level's mean and widen to cover every box.
func Categorical(ctx context.Context, ps ParameterSpace, o oracle.Oracle, ref Ref) (*CategoricalBand, error) {
	p, err := Resolve(ctx, ps, ref)
	if err != nil {
		return nil, err
	}
	if kind := kindOf(ps, p.Name); kind != space.Categorical {
		return nil, &WrongKindError{Name: p.Name, Kind: kind, Want: "a categorical parameter"}
	}

	labels := ps.CategoricalValues(p.Name)
	band := &CategoricalBand{
		Parameter: p.Name,
		Dimension: p.Dimension,
		Levels:    make([]LevelBox, 0, len(labels)),
		XLabel:    p.Name,
		YLabel:    PerformanceLabel,
	}

	for level, label := range labels {
		est, err := o.CategoricalMarginalAt(ctx, p.Name, level)
		if err != nil {
			return nil, fmt.Errorf("categorical marginal of %s level %d: %w", p.Name, level, err)
		}
		box := LevelBox{
			Label:    label,
			Position: level,
			Mean:     est.Mean,
			Std:      est.Std,
			Lower:    est.Mean - est.Std,
			Upper:    est.Mean + est.Std,
		}
		if level == 0 {
			band.MinY, band.MaxY = est.Mean, est.Mean
		}
		band.MinY = min(band.MinY, box.Lower)
		band.MaxY = max(band.MaxY, box.Upper)
		band.Levels = append(band.Levels, box)
	}

	ctxlog.FromContext(ctx).Debug("Built categorical band.", "param", p.Name, "levels", len(band.Levels),
		"min_y", band.MinY, "max_y", band.MaxY)
	return band, nil
}
