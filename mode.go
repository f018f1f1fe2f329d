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
	"fmt"
	"image"
	"io/fs"
	"os"

	"golang.org/x/image/draw"

	// image formats for ColorMode.Open
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ColorMode identifies the colour layout of an image. The set of modes
// is closed and corresponds to the concrete image types of the
// standard library's image package.
type ColorMode int

const (
	ModeGray ColorMode = iota
	ModeGray16
	ModeRGBA
	ModeNRGBA
	ModeRGBA64
	ModeNRGBA64
	ModeCMYK
	ModeYCbCr
	ModeNYCbCrA
	ModePaletted
)

type modeFamily int

const (
	famGray  modeFamily = iota // single channel
	famRGB                     // RGB channels plus alpha, 8 bit
	famOther                   // converted to famRGB before use
)

// modeInfo describes one colour mode. newImage is nil for modes that
// cannot be the target of a conversion (subsampled or palette-bound
// layouts).
type modeInfo struct {
	name     string
	bands    int
	family   modeFamily
	newImage func(image.Rectangle) draw.Image
}

var modeTable = [...]modeInfo{
	ModeGray:   {"Gray", 1, famGray, func(r image.Rectangle) draw.Image { return image.NewGray(r) }},
	ModeGray16: {"Gray16", 1, famGray, func(r image.Rectangle) draw.Image { return image.NewGray16(r) }},
	ModeRGBA:   {"RGBA", 4, famRGB, func(r image.Rectangle) draw.Image { return image.NewRGBA(r) }},
	ModeNRGBA:  {"NRGBA", 4, famRGB, func(r image.Rectangle) draw.Image { return image.NewNRGBA(r) }},
	ModeRGBA64: {"RGBA64", 4, famOther, func(r image.Rectangle) draw.Image { return image.NewRGBA64(r) }},
	ModeNRGBA64: {"NRGBA64", 4, famOther,
		func(r image.Rectangle) draw.Image { return image.NewNRGBA64(r) }},
	ModeCMYK:     {"CMYK", 4, famOther, func(r image.Rectangle) draw.Image { return image.NewCMYK(r) }},
	ModeYCbCr:    {"YCbCr", 3, famOther, nil},
	ModeNYCbCrA:  {"NYCbCrA", 4, famOther, nil},
	ModePaletted: {"Paletted", 1, famOther, nil},
}

var (
	errNoConvert  = errors.New("acv: mode cannot be a conversion target")
	errNoSplit    = errors.New("acv: mode cannot be split into channels")
	errBandCount  = errors.New("acv: wrong number of channels for merge")
	errBandBounds = errors.New("acv: channel bounds differ")
)

// ModeOf returns the colour mode of an image. Images whose concrete
// type is not part of the closed mode set yield an [UnknownModeError].
func ModeOf(img image.Image) (ColorMode, error) {
	switch img.(type) {
	case *image.Gray:
		return ModeGray, nil
	case *image.Gray16:
		return ModeGray16, nil
	case *image.RGBA:
		return ModeRGBA, nil
	case *image.NRGBA:
		return ModeNRGBA, nil
	case *image.RGBA64:
		return ModeRGBA64, nil
	case *image.NRGBA64:
		return ModeNRGBA64, nil
	case *image.CMYK:
		return ModeCMYK, nil
	case *image.YCbCr:
		return ModeYCbCr, nil
	case *image.NYCbCrA:
		return ModeNYCbCrA, nil
	case *image.Paletted:
		return ModePaletted, nil
	}
	return 0, &UnknownModeError{Model: fmt.Sprintf("%T", img)}
}

func (m ColorMode) String() string {
	if m >= 0 && int(m) < len(modeTable) {
		return modeTable[m].name
	}
	return "unknown"
}

// Bands returns the number of channels of the mode, counting alpha.
func (m ColorMode) Bands() int {
	return modeTable[m].bands
}

// Convert returns a copy of the image in mode m. If the image is
// already in mode m, it is returned unchanged. Not all modes can be
// conversion targets; YCbCr, NYCbCrA and Paletted cannot.
func (m ColorMode) Convert(img image.Image) (image.Image, error) {
	if cur, err := ModeOf(img); err == nil && cur == m {
		return img, nil
	}
	mk := modeTable[m].newImage
	if mk == nil {
		return nil, errNoConvert
	}
	dst := mk(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst, nil
}

// Split converts the image to mode m and separates it into one
// grayscale image per channel, in channel order. Only [ModeGray],
// [ModeRGBA], [ModeNRGBA] and [ModeCMYK] can be split.
func (m ColorMode) Split(img image.Image) ([]*image.Gray, error) {
	converted, err := m.Convert(img)
	if err != nil {
		return nil, err
	}

	var pix []uint8
	var stride int
	switch t := converted.(type) {
	case *image.Gray:
		dup := image.NewGray(t.Bounds())
		copy(dup.Pix, t.Pix)
		return []*image.Gray{dup}, nil
	case *image.RGBA:
		pix, stride = t.Pix, t.Stride
	case *image.NRGBA:
		pix, stride = t.Pix, t.Stride
	case *image.CMYK:
		pix, stride = t.Pix, t.Stride
	default:
		return nil, errNoSplit
	}

	b := converted.Bounds()
	w, h := b.Dx(), b.Dy()
	chans := make([]*image.Gray, 4)
	for i := range chans {
		chans[i] = image.NewGray(b)
	}
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+4*w]
		for i, ch := range chans {
			out := ch.Pix[y*ch.Stride : y*ch.Stride+w]
			for x := 0; x < w; x++ {
				out[x] = row[4*x+i]
			}
		}
	}
	return chans, nil
}

// Merge assembles channel images into a single image of mode m. The
// channel count must match the mode, except that the alpha channel of
// [ModeRGBA] and [ModeNRGBA] may be omitted, in which case the result
// is fully opaque. All channels must share the same bounds.
func (m ColorMode) Merge(channels []*image.Gray) (image.Image, error) {
	if len(channels) == 0 {
		return nil, errBandCount
	}
	b := channels[0].Bounds()
	for _, ch := range channels[1:] {
		if ch.Bounds() != b {
			return nil, errBandBounds
		}
	}

	var pix []uint8
	var stride int
	var out image.Image
	opaque := false
	switch m {
	case ModeGray:
		if len(channels) != 1 {
			return nil, errBandCount
		}
		dup := image.NewGray(b)
		copy(dup.Pix, channels[0].Pix)
		return dup, nil
	case ModeRGBA:
		if len(channels) != 3 && len(channels) != 4 {
			return nil, errBandCount
		}
		opaque = len(channels) == 3
		t := image.NewRGBA(b)
		pix, stride, out = t.Pix, t.Stride, t
	case ModeNRGBA:
		if len(channels) != 3 && len(channels) != 4 {
			return nil, errBandCount
		}
		opaque = len(channels) == 3
		t := image.NewNRGBA(b)
		pix, stride, out = t.Pix, t.Stride, t
	case ModeCMYK:
		if len(channels) != 4 {
			return nil, errBandCount
		}
		t := image.NewCMYK(b)
		pix, stride, out = t.Pix, t.Stride, t
	default:
		return nil, errNoSplit
	}

	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+4*w]
		for i, ch := range channels {
			in := ch.Pix[y*ch.Stride : y*ch.Stride+w]
			for x := 0; x < w; x++ {
				row[4*x+i] = in[x]
			}
		}
		if opaque {
			for x := 0; x < w; x++ {
				row[4*x+3] = 0xff
			}
		}
	}
	return out, nil
}

// Open reads the image file at the given path and converts it to mode
// m. The usual image formats (PNG, JPEG, GIF) are understood. If the
// file does not exist, a [NotFoundError] is returned.
func (m ColorMode) Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return m.Convert(img)
}

func (m ColorMode) singleChannel() bool {
	return modeTable[m].family == famGray
}

func (m ColorMode) rgbShaped() bool {
	return modeTable[m].family == famRGB
}

// UnknownModeError indicates an image whose colour layout is not part
// of the supported mode set.
type UnknownModeError struct {
	Model string // Go type of the image
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("acv: unknown image mode %s", e.Model)
}
