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
	"sort"
)

// Interpolation selects the algorithm used to turn a curve's control
// points into a continuous mapping.
type Interpolation int

const (
	// Linear connects consecutive control points with straight line
	// segments. Outside the control-point range the end segments are
	// extended.
	Linear Interpolation = iota

	// Nearest returns the y value of the control point whose x is
	// closest to the input. Exact midpoints resolve to the lower
	// point. Inputs outside the range clamp to the end points.
	Nearest

	// ZeroOrderHold holds each control point's y value until the next
	// control point (a step function). Inputs outside the range clamp
	// to the end points.
	ZeroOrderHold

	// SLinear is a first-order spline. Its basis is the same piecewise
	// linear one as [Linear].
	SLinear

	// Quadratic is a second-order spline with a continuous first
	// derivative. Outside the control-point range the boundary
	// parabolas are extended, so extrapolated values need not clamp.
	Quadratic

	// Cubic is a natural cubic spline (second derivative zero at both
	// ends). Outside the control-point range the boundary cubics are
	// extended.
	Cubic

	// Previous returns the y value of the nearest control point at or
	// below the input, clamping below the range.
	Previous

	// Next returns the y value of the nearest control point at or
	// above the input, clamping above the range.
	Next

	// Lagrange fits the unique polynomial of degree n-1 through all n
	// control points. The polynomial passes through every control
	// point exactly, but can swing widely between sparse points and
	// diverges quickly outside their range. This matches the
	// behaviour of the original authoring tool and is intended, not a
	// defect.
	Lagrange
)

// DefaultInterpolation is the mode used by the original authoring tool
// when none is given.
const DefaultInterpolation = Lagrange

var interpolationNames = [...]string{
	Linear:        "linear",
	Nearest:       "nearest",
	ZeroOrderHold: "zero",
	SLinear:       "slinear",
	Quadratic:     "quadratic",
	Cubic:         "cubic",
	Previous:      "previous",
	Next:          "next",
	Lagrange:      "lagrange",
}

func (m Interpolation) String() string {
	if m >= 0 && int(m) < len(interpolationNames) {
		return interpolationNames[m]
	}
	return "unknown"
}

// An Evaluator is a continuous mapping built from a curve's control
// points. Inputs outside the control-point range are valid; the
// out-of-range behaviour depends on the interpolation mode.
//
// An Evaluator is immutable once built and can be used from multiple
// goroutines concurrently.
type Evaluator interface {
	Evaluate(x float64) float64
}

// spline orders for the spline-family modes
var splineOrder = map[Interpolation]int{
	SLinear:   1,
	Quadratic: 2,
	Cubic:     3,
}

// NewEvaluator builds an [Evaluator] for the given control points and
// interpolation mode.
//
// All modes except [Lagrange] require the x values to be strictly
// increasing. [Linear] needs at least two points, the spline modes need
// at least order+1 points, and the remaining modes need at least one
// point. If these conditions are violated, an [InvalidCurveError] is
// returned.
func NewEvaluator(points []Point, mode Interpolation) (Evaluator, error) {
	if len(points) == 0 {
		return nil, invalidCurve("no control points")
	}
	if order, isSpline := splineOrder[mode]; isSpline && len(points) < order+1 {
		return nil, invalidCurve("%s interpolation needs at least %d points, got %d",
			mode, order+1, len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}

	if mode == Lagrange {
		return newLagrange(xs, ys)
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, invalidCurve("x values not strictly increasing")
		}
	}

	switch mode {
	case Linear, SLinear:
		if len(xs) < 2 {
			return nil, invalidCurve("linear interpolation needs at least 2 points")
		}
		return &linearEval{xs: xs, ys: ys}, nil
	case Nearest:
		return &stepEval{xs: xs, ys: ys, rule: stepNearest}, nil
	case ZeroOrderHold, Previous:
		return &stepEval{xs: xs, ys: ys, rule: stepPrevious}, nil
	case Next:
		return &stepEval{xs: xs, ys: ys, rule: stepNext}, nil
	case Quadratic:
		return newQuadSpline(xs, ys), nil
	case Cubic:
		return newCubicSpline(xs, ys), nil
	}
	return nil, invalidCurve("unknown interpolation mode %d", int(mode))
}

// segment returns the index i such that the interval [xs[i], xs[i+1]]
// brackets x, clamped to the end intervals for out-of-range inputs.
// xs must have at least two elements.
func segment(xs []float64, x float64) int {
	i := sort.Search(len(xs), func(j int) bool { return xs[j] > x }) - 1
	if i < 0 {
		i = 0
	}
	if i > len(xs)-2 {
		i = len(xs) - 2
	}
	return i
}

type stepRule int

const (
	stepNearest stepRule = iota
	stepPrevious
	stepNext
)

type stepEval struct {
	xs, ys []float64
	rule   stepRule
}

func (e *stepEval) Evaluate(x float64) float64 {
	n := len(e.xs)
	if n == 1 {
		return e.ys[0]
	}
	switch e.rule {
	case stepNearest:
		i := segment(e.xs, x)
		if x-e.xs[i] <= e.xs[i+1]-x {
			return e.ys[i]
		}
		return e.ys[i+1]
	case stepNext:
		i := sort.Search(n, func(j int) bool { return e.xs[j] >= x })
		if i >= n {
			i = n - 1
		}
		return e.ys[i]
	default: // stepPrevious
		i := sort.Search(n, func(j int) bool { return e.xs[j] > x }) - 1
		if i < 0 {
			i = 0
		}
		return e.ys[i]
	}
}

type linearEval struct {
	xs, ys []float64
}

func (e *linearEval) Evaluate(x float64) float64 {
	i := segment(e.xs, x)
	t := (x - e.xs[i]) / (e.xs[i+1] - e.xs[i])
	return e.ys[i] + t*(e.ys[i+1]-e.ys[i])
}

// quadSpline is a C¹ piecewise quadratic. z holds the spline's slope at
// each control point; the first segment is linear, and each following
// segment's slopes are then fixed by continuity.
type quadSpline struct {
	xs, ys, z []float64
}

func newQuadSpline(xs, ys []float64) *quadSpline {
	n := len(xs)
	z := make([]float64, n)
	z[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
	for i := 0; i < n-1; i++ {
		z[i+1] = 2*(ys[i+1]-ys[i])/(xs[i+1]-xs[i]) - z[i]
	}
	return &quadSpline{xs: xs, ys: ys, z: z}
}

func (e *quadSpline) Evaluate(x float64) float64 {
	i := segment(e.xs, x)
	h := e.xs[i+1] - e.xs[i]
	d := x - e.xs[i]
	return e.ys[i] + e.z[i]*d + (e.z[i+1]-e.z[i])/(2*h)*d*d
}

// cubicSpline is a natural cubic spline. y2 holds the second derivative
// at each control point, obtained from the tridiagonal system for
// natural boundary conditions.
type cubicSpline struct {
	xs, ys, y2 []float64
}

func newCubicSpline(xs, ys []float64) *cubicSpline {
	n := len(xs)
	y2 := make([]float64, n)
	u := make([]float64, n)
	for i := 1; i < n-1; i++ {
		sig := (xs[i] - xs[i-1]) / (xs[i+1] - xs[i-1])
		p := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / p
		v := (ys[i+1]-ys[i])/(xs[i+1]-xs[i]) - (ys[i]-ys[i-1])/(xs[i]-xs[i-1])
		u[i] = (6*v/(xs[i+1]-xs[i-1]) - sig*u[i-1]) / p
	}
	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return &cubicSpline{xs: xs, ys: ys, y2: y2}
}

func (e *cubicSpline) Evaluate(x float64) float64 {
	i := segment(e.xs, x)
	h := e.xs[i+1] - e.xs[i]
	a := (e.xs[i+1] - x) / h
	b := (x - e.xs[i]) / h
	return a*e.ys[i] + b*e.ys[i+1] +
		((a*a*a-a)*e.y2[i]+(b*b*b-b)*e.y2[i+1])*h*h/6
}

// lagrangeEval evaluates the interpolating polynomial in barycentric
// form. The weights w are precomputed in O(n²); each evaluation is then
// O(n) and numerically stable, unlike expanding the polynomial into
// monomial coefficients.
type lagrangeEval struct {
	xs, ys, w []float64
}

func newLagrange(xs, ys []float64) (*lagrangeEval, error) {
	n := len(xs)
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
		for j := range xs {
			if j == i {
				continue
			}
			if xs[j] == xs[i] {
				return nil, invalidCurve("duplicate x value %g", xs[i])
			}
			w[i] /= xs[i] - xs[j]
		}
	}
	return &lagrangeEval{xs: xs, ys: ys, w: w}, nil
}

func (e *lagrangeEval) Evaluate(x float64) float64 {
	var num, den float64
	for i, xi := range e.xs {
		if x == xi {
			return e.ys[i]
		}
		t := e.w[i] / (x - xi)
		num += t * e.ys[i]
		den += t
	}
	return num / den
}
