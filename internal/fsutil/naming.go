// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// PlotExtension is appended to every generated plot file.
const PlotExtension = ".png"

// ErrNotDirectory is returned by RequireDir when the path exists but is a file.
var ErrNotDirectory = errors.New("not a directory")

// SafeName replaces the OS path separator in a parameter name with an
// underscore so the name can be used as a single path element.
func SafeName(name string) string {
	return strings.ReplaceAll(name, string(os.PathSeparator), "_")
}

// PlotFileName returns the output file name for a single-parameter plot.
func PlotFileName(name string) string {
	return SafeName(name) + PlotExtension
}

// PairPlotFileName returns the output file name for a pairwise plot,
// "<param1>x<param2>.png".
func PairPlotFileName(name1, name2 string) string {
	return SafeName(name1) + "x" + SafeName(name2) + PlotExtension
}

// RequireDir checks that path exists and is a directory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return nil
}
