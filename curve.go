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

// Point is a single control point of a curve. X is the input (domain)
// coordinate and Y the output (range) coordinate. Note that the ACV
// file format stores the two coordinates in the opposite order; the
// codec performs the swap.
type Point struct {
	X, Y int16
}

// Curve is a named, ordered sequence of control points together with an
// interpolation mode. The continuous mapping through the points is
// built lazily on the first call to [Curve.Evaluate] and rebuilt after
// any change to the points or the mode.
//
// A Curve is not safe for concurrent mutation. Once the mapping has
// been built and the curve is no longer modified, [Curve.Evaluate] may
// be called from multiple goroutines concurrently; use [Curve.Clone]
// if one goroutine needs to keep mutating.
type Curve struct {
	name   string
	points []Point
	mode   Interpolation

	eval Evaluator // built on demand, dropped on every mutation
}

// NewCurve creates a curve with the given name, interpolation mode and
// control points.
func NewCurve(name string, mode Interpolation, points ...Point) *Curve {
	return &Curve{
		name:   name,
		points: slices.Clone(points),
		mode:   mode,
	}
}

// Name returns the curve's name, usually a channel label such as
// "composite" or "red".
func (c *Curve) Name() string {
	return c.name
}

// Mode returns the curve's interpolation mode.
func (c *Curve) Mode() Interpolation {
	return c.mode
}

// SetMode changes the curve's interpolation mode.
func (c *Curve) SetMode(mode Interpolation) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	c.eval = nil
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return len(c.points)
}

// Point returns the i-th control point.
func (c *Curve) Point(i int) Point {
	return c.points[i]
}

// Points returns a copy of the control points.
func (c *Curve) Points() []Point {
	return slices.Clone(c.points)
}

// Append adds a control point at the end of the sequence.
func (c *Curve) Append(p Point) {
	c.points = append(c.points, p)
	c.eval = nil
}

// Insert adds a control point at position i, shifting later points up.
func (c *Curve) Insert(i int, p Point) {
	c.points = slices.Insert(c.points, i, p)
	c.eval = nil
}

// Remove deletes the control point at position i and returns it.
func (c *Curve) Remove(i int) Point {
	p := c.points[i]
	c.points = slices.Delete(c.points, i, i+1)
	c.eval = nil
	return p
}

// Clone returns a deep copy of the curve. The copy shares no state
// with the original, so one of the two can be mutated while the other
// is being evaluated.
func (c *Curve) Clone() *Curve {
	return &Curve{
		name:   c.name,
		points: slices.Clone(c.points),
		mode:   c.mode,
	}
}

// Evaluate returns the curve's value at x. On the first call the
// continuous mapping is built from the control points; the result is
// cached until the points or the mode change.
//
// Inputs outside the control-point range do not cause an error; the
// extrapolation behaviour depends on the interpolation mode.
func (c *Curve) Evaluate(x float64) (float64, error) {
	if c.eval == nil {
		if err := c.Rebuild(); err != nil {
			return 0, err
		}
	}
	return c.eval.Evaluate(x), nil
}

// Rebuild builds the curve's continuous mapping eagerly, replacing any
// cached one. This validates the control points for the curve's mode.
func (c *Curve) Rebuild() error {
	eval, err := NewEvaluator(c.points, c.mode)
	if err != nil {
		if e, ok := err.(*InvalidCurveError); ok && e.Name == "" {
			return &InvalidCurveError{Name: c.name, Reason: e.Reason}
		}
		return err
	}
	c.eval = eval
	return nil
}

// InvalidCurveError indicates that a curve's control points cannot
// support the selected interpolation mode, for example because there
// are too few points or the x values are not strictly increasing.
type InvalidCurveError struct {
	Name   string // curve name, if known
	Reason string
}

func invalidCurve(format string, a ...any) error {
	return &InvalidCurveError{Reason: fmt.Sprintf(format, a...)}
}

func (e *InvalidCurveError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("acv: invalid curve %q: %s", e.Name, e.Reason)
	}
	return "acv: invalid curve: " + e.Reason
}
