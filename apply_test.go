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
	"errors"
	"image"
	"image/color"
	"testing"
)

// shiftCurve maps every 8-bit value v to v+delta, as a two-point
// linear curve.
func shiftCurve(name string, delta int16) *Curve {
	return NewCurve(name, Linear,
		Point{X: 0, Y: delta}, Point{X: 255, Y: 255 + delta})
}

// brokenCurve cannot be evaluated in Linear mode; applying it reports
// an InvalidCurveError, so tests use it to prove a curve is not
// consulted.
func brokenCurve(name string) *Curve {
	return NewCurve(name, Linear, Point{X: 0, Y: 0})
}

func TestApplyGray(t *testing.T) {
	s := NewCurveSet(Linear)
	s.Add(shiftCurve("composite", 72)) // 128 -> 200
	// the channel curves must not matter on the grayscale path
	for i := 1; i <= 3; i++ {
		s.Add(brokenCurve(ChannelName(i)))
	}

	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.Pix[0] = 128

	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("Apply returned %T, want *image.Gray", out)
	}
	if gray.Pix[0] != 200 {
		t.Errorf("pixel = %d, want 200", gray.Pix[0])
	}
	if img.Pix[0] != 128 {
		t.Errorf("input image modified")
	}
}

func TestApplyRGB(t *testing.T) {
	s := NewCurveSet(Linear)
	// the composite curve must not be consulted on the colour path
	s.Add(brokenCurve("composite"))
	s.Add(shiftCurve("red", 40))   // 10 -> 50
	s.Add(shiftCurve("green", 40)) // 20 -> 60
	s.Add(shiftCurve("blue", 40))  // 30 -> 70

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	rgba, ok := out.(*image.RGBA)
	if !ok {
		t.Fatalf("Apply returned %T, want *image.RGBA", out)
	}
	got := rgba.RGBAAt(0, 0)
	want := color.RGBA{R: 50, G: 60, B: 70, A: 255}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestApplyAlphaPassthrough(t *testing.T) {
	s := NewCurveSet(Linear)
	s.Add(brokenCurve("composite"))
	for _, name := range []string{"red", "green", "blue"} {
		s.Add(shiftCurve(name, 40))
	}

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 77})

	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("Apply returned %T, want *image.NRGBA", out)
	}
	got := nrgba.NRGBAAt(0, 0)
	want := color.NRGBA{R: 50, G: 60, B: 70, A: 77}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

// Images that are neither grayscale nor RGB-shaped are converted to
// RGB before the channel curves are applied.
func TestApplyConverts(t *testing.T) {
	s := NewCurveSet(Linear)
	s.Add(brokenCurve("composite"))
	for _, name := range []string{"red", "green", "blue"} {
		s.Add(shiftCurve(name, 0)) // identity
	}

	img := image.NewYCbCr(image.Rect(0, 0, 1, 1), image.YCbCrSubsampleRatio444)
	img.Y[0] = 120
	img.Cb[0] = 140
	img.Cr[0] = 130

	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	rgba, ok := out.(*image.RGBA)
	if !ok {
		t.Fatalf("Apply returned %T, want *image.RGBA", out)
	}
	got := rgba.RGBAAt(0, 0)
	want := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestApplyTooFewCurves(t *testing.T) {
	s := NewCurveSet(Linear)
	s.Add(shiftCurve("composite", 0))
	s.Add(shiftCurve("red", 0))

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	_, err := s.Apply(img)
	var invalid *InvalidCurveError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidCurveError", err)
	}
	if invalid.Name != "green" {
		t.Errorf("error names curve %q, want %q", invalid.Name, "green")
	}

	empty := NewCurveSet(Linear)
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	if _, err := empty.Apply(gray); !errors.As(err, &invalid) {
		t.Fatalf("empty set: got %v, want InvalidCurveError", err)
	}
}

func TestApplyUnknownMode(t *testing.T) {
	s := NewCurveSet(Linear)
	s.Add(shiftCurve("composite", 0))

	_, err := s.Apply(uniformImage{})
	var unknown *UnknownModeError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownModeError", err)
	}
}

func TestApplyClamps(t *testing.T) {
	s := NewCurveSet(Linear)
	s.Add(shiftCurve("composite", 100)) // 200 -> 300, clamped to 255

	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.Pix[0] = 200

	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := out.(*image.Gray).Pix[0]; got != 255 {
		t.Errorf("pixel = %d, want 255", got)
	}
}
