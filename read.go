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
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// The ACV layout uses big-endian int16 throughout:
//
//	int16  reserved (0)
//	int16  curve count
//	per curve:
//	    int16  point count
//	    point count × { int16 y, int16 x }
//
// The on-disk coordinate order is (y, x), the reverse of the in-memory
// [Point] order. This quirk comes from the original authoring tool and
// is kept for file compatibility.

// Decode decodes an ACV curve set from binary data. The curves of the
// resulting set use the given interpolation mode and are named after
// their channels ([ChannelName]).
//
// If the data ends before the declared curve and point counts are
// satisfied, a [TruncatedFileError] is returned and no partial result.
func Decode(data []byte, mode Interpolation) (*CurveSet, error) {
	if len(data) < 4 {
		return nil, truncated(len(data))
	}
	count := getInt16(data, 2)

	s := NewCurveSet(mode)
	pos := 4
	for i := int16(0); i < count; i++ {
		if pos+2 > len(data) {
			return nil, truncated(pos)
		}
		numPoints := getInt16(data, pos)
		pos += 2

		c := NewCurve(ChannelName(int(i)), mode)
		for j := int16(0); j < numPoints; j++ {
			if pos+4 > len(data) {
				return nil, truncated(pos)
			}
			y := getInt16(data, pos)
			x := getInt16(data, pos+2)
			pos += 4
			c.Append(Point{X: x, Y: y})
		}
		s.Add(c)
	}
	return s, nil
}

// Read decodes an ACV curve set from r. The stream is consumed to the
// end; see [Decode] for the error conditions.
func Read(r io.Reader, mode Interpolation) (*CurveSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, mode)
}

// ReadFile decodes the ACV file at the given path. If the file does
// not exist, a [NotFoundError] is returned.
func ReadFile(path string, mode Interpolation) (*CurveSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, err
	}
	s, err := Decode(data, mode)
	if err != nil {
		return nil, err
	}
	s.path = path
	s.name = filepath.Base(path)
	return s, nil
}

func getInt16(data []byte, offset int) int16 {
	return int16(uint16(data[offset])<<8 | uint16(data[offset+1]))
}

// TruncatedFileError indicates that an ACV stream ended before the
// curve and point counts declared in its header were satisfied.
type TruncatedFileError struct {
	Offset int // byte offset at which more data was expected
}

func truncated(offset int) error {
	return &TruncatedFileError{Offset: offset}
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("acv: file truncated (byte %d)", e.Offset)
}

// NotFoundError indicates that a curve file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("acv: no curve file at %q", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
