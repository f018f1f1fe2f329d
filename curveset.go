// seehuhn.de/go/acv - read, write and apply tone-adjustment curves
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package acv

import (
	"fmt"
	"slices"
)

// CurveSet is an ordered collection of curves, one per image channel.
// The curve at index 0 is the composite curve; indices 1 to 3 are the
// red, green and blue channel curves.
//
// A CurveSet is created either by decoding an ACV file ([Decode],
// [Read], [ReadFile]) or by starting from [NewCurveSet] and adding
// curves with [CurveSet.Add]. A set with no curves cannot be encoded.
type CurveSet struct {
	curves []*Curve
	mode   Interpolation

	name    string // base name of the source file, or ""
	path    string // source path, or ""
	builtin bool   // loaded from a preset catalog
}

// NewCurveSet creates an empty curve set. All curves added to the set
// use the given interpolation mode.
func NewCurveSet(mode Interpolation) *CurveSet {
	return &CurveSet{mode: mode}
}

// Add appends a curve to the set. The curve's interpolation mode is
// switched to the set's mode.
func (s *CurveSet) Add(c *Curve) {
	c.SetMode(s.mode)
	s.curves = append(s.curves, c)
}

// Len returns the number of curves in the set.
func (s *CurveSet) Len() int {
	return len(s.curves)
}

// Curve returns the i-th curve of the set.
func (s *CurveSet) Curve(i int) *Curve {
	return s.curves[i]
}

// Curves returns the curves of the set, in channel order. The returned
// slice is a copy, but the curves themselves are shared.
func (s *CurveSet) Curves() []*Curve {
	return slices.Clone(s.curves)
}

// Mode returns the interpolation mode shared by all curves of the set.
func (s *CurveSet) Mode() Interpolation {
	return s.mode
}

// Name returns the base name of the file the set was read from, or the
// empty string for sets built in memory.
func (s *CurveSet) Name() string {
	return s.name
}

// Path returns the path the set was read from, or the empty string.
func (s *CurveSet) Path() string {
	return s.path
}

// IsBuiltin reports whether the set was loaded from a preset catalog
// rather than from a user-supplied file.
func (s *CurveSet) IsBuiltin() bool {
	return s.builtin
}

func (s *CurveSet) String() string {
	label := s.name
	if s.builtin {
		label = "[builtin] " + label
	} else if label == "" {
		label = "-"
	}
	return fmt.Sprintf("CurveSet(%s, %d, %s)", label, len(s.curves), s.mode)
}
