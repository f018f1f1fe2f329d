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

// Package acv reads, writes and applies Photoshop-style tone-adjustment
// curve files (ACV).
//
// An ACV file stores one or more per-channel curves, each given by a
// small number of control points. The package rebuilds a continuous
// mapping from the control points using one of several interpolation
// modes and applies it to image pixel values.
//
// # Reading and Writing Curve Files
//
// Use [ReadFile] (or [Decode] for in-memory data) to load a curve set,
// and [CurveSet.WriteFile] to store one:
//
//	s, err := acv.ReadFile("vintage.acv", acv.Lagrange)
//	if err != nil {
//	    // handle error
//	}
//	// inspect s.Len(), s.Curve(0), etc.
//
//	err = s.WriteFile("copy.acv")
//
// # Applying Curves to Images
//
// [CurveSet.Apply] adjusts an image. Grayscale images are mapped through
// the composite curve (index 0); colour images are split into channels,
// each channel is mapped through its own curve, and the channels are
// merged again:
//
//	out, err := s.Apply(img)
//
// [CurveSet] implements [Processor], so curve sets compose into generic
// image pipelines.
package acv

import (
	"fmt"
	"image"
)

// Processor adjusts an image and returns the result. The input image is
// not modified.
type Processor interface {
	Process(img image.Image) (image.Image, error)
}

// channelNames maps curve indices to their conventional channel labels.
// Index 0 is the composite curve, applied to overall luminance.
var channelNames = [...]string{"composite", "red", "green", "blue"}

// ChannelName returns the conventional name of the curve at the given
// index: "composite", "red", "green", "blue", or "channelN" for
// indices past the RGB channels.
func ChannelName(idx int) string {
	if idx >= 0 && idx < len(channelNames) {
		return channelNames[idx]
	}
	return fmt.Sprintf("channel%d", idx)
}
