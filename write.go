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
	"io"
	"os"
	"path/filepath"
)

// Encode converts the curve set to ACV binary form, using the layout
// described at [Decode]. A set with no curves cannot be represented in
// the format; encoding one returns an [EmptyCurveSetError].
func (s *CurveSet) Encode() ([]byte, error) {
	if len(s.curves) < 1 {
		return nil, &EmptyCurveSetError{}
	}

	size := 4
	for _, c := range s.curves {
		size += 2 + 4*c.Len()
	}
	buf := make([]byte, size)

	putInt16(buf, 0, 0) // reserved
	putInt16(buf, 2, int16(len(s.curves)))
	pos := 4
	for _, c := range s.curves {
		putInt16(buf, pos, int16(c.Len()))
		pos += 2
		for _, p := range c.points {
			// on-disk order is (y, x)
			putInt16(buf, pos, p.Y)
			putInt16(buf, pos+2, p.X)
			pos += 4
		}
	}
	return buf, nil
}

// Write encodes the curve set and writes it to w. Nothing is written
// if the set cannot be encoded.
func (s *CurveSet) Write(w io.Writer) error {
	buf, err := s.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// WriteFile encodes the curve set and writes it to the file at the
// given path. The data is staged in a temporary file in the same
// directory and moved into place only after a complete write, so a
// failure never leaves a truncated file behind.
func (s *CurveSet) WriteFile(path string) error {
	buf, err := s.Encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(buf)
	if err2 := tmp.Close(); err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func putInt16(data []byte, offset int, value int16) {
	data[offset] = byte(uint16(value) >> 8)
	data[offset+1] = byte(value)
}

// EmptyCurveSetError indicates an attempt to encode a curve set that
// contains no curves.
type EmptyCurveSetError struct{}

func (e *EmptyCurveSetError) Error() string {
	return "acv: cannot encode empty curve set"
}
