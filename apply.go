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
	"image"
	"math"
)

var _ Processor = (*CurveSet)(nil)

// Apply adjusts an image using the curves of the set and returns the
// result as a new image; the input is not modified.
//
// Single-channel (grayscale) images are mapped through the composite
// curve at index 0. All other images are brought into RGB form if
// necessary and their red, green and blue channels are mapped through
// the curves at indices 1, 2 and 3; the composite curve is not
// consulted, and an alpha channel passes through unchanged.
//
// The set must contain enough curves for the channels the image routes
// through (one for grayscale, four for colour), otherwise an
// [InvalidCurveError] is returned.
func (s *CurveSet) Apply(img image.Image) (image.Image, error) {
	mode, err := ModeOf(img)
	if err != nil {
		return nil, err
	}

	if mode.singleChannel() {
		lut, err := s.lookupTable(0)
		if err != nil {
			return nil, err
		}
		converted, err := ModeGray.Convert(img)
		if err != nil {
			return nil, err
		}
		return mapGray(converted.(*image.Gray), lut), nil
	}

	if !mode.rgbShaped() {
		img, err = ModeRGBA.Convert(img)
		if err != nil {
			return nil, err
		}
		mode = ModeRGBA
	}

	chans, err := mode.Split(img)
	if err != nil {
		return nil, err
	}
	// channels 0..2 are colour, channel 3 is alpha and passes through
	for i := 0; i < 3; i++ {
		lut, err := s.lookupTable(i + 1)
		if err != nil {
			return nil, err
		}
		chans[i] = mapGray(chans[i], lut)
	}
	return mode.Merge(chans)
}

// Process implements the [Processor] interface.
func (s *CurveSet) Process(img image.Image) (image.Image, error) {
	return s.Apply(img)
}

// lookupTable tabulates the curve at the given index over the 8-bit
// pixel range. Curve values are rounded and clamped to [0, 255];
// control points are usually sparser than the pixel range, so this
// relies on the evaluator's extrapolation being total.
func (s *CurveSet) lookupTable(idx int) (*[256]uint8, error) {
	if idx >= len(s.curves) {
		return nil, &InvalidCurveError{
			Name:   ChannelName(idx),
			Reason: "curve missing from set",
		}
	}
	c := s.curves[idx]

	var lut [256]uint8
	for v := 0; v < 256; v++ {
		y, err := c.Evaluate(float64(v))
		if err != nil {
			return nil, err
		}
		y = math.Round(y)
		switch {
		case y < 0:
			lut[v] = 0
		case y > 255:
			lut[v] = 255
		default:
			lut[v] = uint8(y)
		}
	}
	return &lut, nil
}

// mapGray applies a lookup table to every pixel of a grayscale image.
func mapGray(src *image.Gray, lut *[256]uint8) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		in := src.Pix[y*src.Stride : y*src.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range in {
			dst[x] = lut[v]
		}
	}
	return out
}
