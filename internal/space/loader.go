// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package space

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/fanoviz/internal/ctxlog"
	"github.com/specialistvlad/fanoviz/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// hclParameter is the decoding target for a `parameter` block.
type hclParameter struct {
	Name   string         `hcl:"name,label"`
	Type   string         `hcl:"type"`
	Lower  *float64       `hcl:"lower,optional"`
	Upper  *float64       `hcl:"upper,optional"`
	Log    *bool          `hcl:"log,optional"`
	Values hcl.Expression `hcl:"values,optional"`
}

// fileRoot is a struct used to decode all top-level blocks from a space file.
type fileRoot struct {
	Parameters []*hclParameter `hcl:"parameter,block"`
	Remain     hcl.Body        `hcl:",remain"`
}

// LoadFiles parses every .hcl file found under the given paths and builds a
// Space from the `parameter` blocks in them.
func LoadFiles(ctx context.Context, paths ...string) (*Space, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parameter space loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find space files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl parameter space files found in %v", paths)
	}
	logger.Debug("Discovered space files.", "count", len(files))

	parser := hclparse.NewParser()
	var descriptors []Descriptor
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		found, err := decodeParameters(hclFile.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		descriptors = append(descriptors, found...)
	}

	s, err := New(descriptors...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parameter space loaded.",
		"parameters", s.Len(),
		"categorical", len(s.CategoricalParameters()),
		"continuous", len(s.ContinuousParameters()),
		"integer", len(s.IntegerParameters()),
	)
	return s, nil
}

// Parse builds a Space from a single in-memory HCL document.
func Parse(src []byte, filename string) (*Space, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	descriptors, err := decodeParameters(hclFile.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return New(descriptors...)
}

func decodeParameters(body hcl.Body) ([]Descriptor, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	descriptors := make([]Descriptor, 0, len(root.Parameters))
	for _, p := range root.Parameters {
		d, err := translateParameter(p)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// translateParameter converts the HCL schema into a Descriptor.
func translateParameter(p *hclParameter) (Descriptor, error) {
	kind, err := ParseKind(p.Type)
	if err != nil {
		return Descriptor{}, fmt.Errorf("parameter '%s': %w", p.Name, err)
	}
	d := Descriptor{Name: p.Name, Kind: kind}
	if p.Lower != nil {
		d.Lower = *p.Lower
	}
	if p.Upper != nil {
		d.Upper = *p.Upper
	}
	if p.Log != nil {
		d.Log = *p.Log
	}

	if isExprDefined(p.Values) {
		if kind != Categorical {
			return Descriptor{}, fmt.Errorf("parameter '%s': 'values' is only valid for categorical parameters", p.Name)
		}
		levels, err := levelLabels(p.Values)
		if err != nil {
			return Descriptor{}, fmt.Errorf("parameter '%s': %w", p.Name, err)
		}
		d.Levels = levels
	} else if kind != Categorical && (p.Lower == nil || p.Upper == nil) {
		return Descriptor{}, fmt.Errorf("parameter '%s': %s parameters require 'lower' and 'upper'", p.Name, kind)
	}
	return d, nil
}

// isExprDefined reports whether an optional attribute was present in the
// source. Omitted optional expressions decode to a zero-width placeholder.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// levelLabels evaluates a `values` tuple and renders each element as a
// display label.
func levelLabels(expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil, fmt.Errorf("'values' must be a list, got %s", ty.FriendlyName())
	}

	labels := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("'values' must not contain null")
		}
		str, err := convert.Convert(elem, cty.String)
		if err != nil {
			return nil, fmt.Errorf("value of type %s cannot be used as a level label: %w", elem.Type().FriendlyName(), err)
		}
		labels = append(labels, str.AsString())
	}
	return labels, nil
}
