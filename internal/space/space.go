// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package space

import (
	"fmt"
	"math"
)

// Space is an immutable, ordered set of parameter descriptors.
type Space struct {
	descriptors []Descriptor
	dims        map[string]int
}

// New builds a Space from descriptors in dimension order.
func New(descriptors ...Descriptor) (*Space, error) {
	s := &Space{
		descriptors: make([]Descriptor, 0, len(descriptors)),
		dims:        make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.dims[d.Name]; dup {
			return nil, fmt.Errorf("parameter '%s' declared more than once", d.Name)
		}
		d.Levels = append([]string(nil), d.Levels...)
		s.dims[d.Name] = len(s.descriptors)
		s.descriptors = append(s.descriptors, d)
	}
	return s, nil
}

// Len returns the number of dimensions.
func (s *Space) Len() int { return len(s.descriptors) }

// ParameterNames returns all names in dimension order.
func (s *Space) ParameterNames() []string {
	names := make([]string, len(s.descriptors))
	for i, d := range s.descriptors {
		names[i] = d.Name
	}
	return names
}

// NameAt returns the name of the parameter at dimension index i.
func (s *Space) NameAt(i int) (string, error) {
	if i < 0 || i >= len(s.descriptors) {
		return "", fmt.Errorf("dimension index %d out of range [0,%d)", i, len(s.descriptors))
	}
	return s.descriptors[i].Name, nil
}

// Dimension returns the dimension index of a named parameter.
func (s *Space) Dimension(name string) (int, bool) {
	dim, ok := s.dims[name]
	return dim, ok
}

// Descriptor returns a copy of the named parameter's descriptor.
func (s *Space) Descriptor(name string) (Descriptor, bool) {
	dim, ok := s.dims[name]
	if !ok {
		return Descriptor{}, false
	}
	d := s.descriptors[dim]
	d.Levels = append([]string(nil), d.Levels...)
	return d, true
}

// Kind returns the kind of a named parameter.
func (s *Space) Kind(name string) (Kind, bool) {
	dim, ok := s.dims[name]
	if !ok {
		return 0, false
	}
	return s.descriptors[dim].Kind, true
}

// IsLog reports whether the named parameter is declared log-scaled.
func (s *Space) IsLog(name string) bool {
	dim, ok := s.dims[name]
	return ok && s.descriptors[dim].Log
}

// CategoricalParameters returns categorical names in dimension order.
func (s *Space) CategoricalParameters() []string { return s.namesOf(Categorical) }

// ContinuousParameters returns continuous names in dimension order.
func (s *Space) ContinuousParameters() []string { return s.namesOf(Continuous) }

// IntegerParameters returns integer names in dimension order.
func (s *Space) IntegerParameters() []string { return s.namesOf(Integer) }

func (s *Space) namesOf(kind Kind) []string {
	var names []string
	for _, d := range s.descriptors {
		if d.Kind == kind {
			names = append(names, d.Name)
		}
	}
	return names
}

// CategoricalValues returns the ordered level labels of a parameter. It is
// empty for unknown and non-categorical parameters.
func (s *Space) CategoricalValues(name string) []string {
	dim, ok := s.dims[name]
	if !ok {
		return nil
	}
	return append([]string(nil), s.descriptors[dim].Levels...)
}

// CategoricalSize returns the number of levels of a parameter.
func (s *Space) CategoricalSize(name string) int {
	dim, ok := s.dims[name]
	if !ok {
		return 0
	}
	return len(s.descriptors[dim].Levels)
}

// Denormalize maps a normalized value to display units. Values outside
// [0,1] are extrapolated, not clamped.
func (s *Space) Denormalize(name string, x float64) (float64, error) {
	dim, ok := s.dims[name]
	if !ok {
		return 0, fmt.Errorf("parameter '%s' not known", name)
	}
	d := s.descriptors[dim]
	switch d.Kind {
	case Continuous:
		return d.scale(x), nil
	case Integer:
		return math.Round(d.scale(x)), nil
	default:
		return 0, fmt.Errorf("parameter '%s' is %s and has no numeric display value", name, d.Kind)
	}
}

func (d Descriptor) scale(x float64) float64 {
	if d.Log {
		lo, hi := math.Log(d.Lower), math.Log(d.Upper)
		return math.Exp(lo + x*(hi-lo))
	}
	return d.Lower + x*(d.Upper-d.Lower)
}
