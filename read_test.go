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
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sampleSet builds a four-curve set covering negative coordinates and
// differing point counts.
func sampleSet(mode Interpolation) *CurveSet {
	s := NewCurveSet(mode)
	pointLists := [][]Point{
		{{0, 0}, {128, 140}, {255, 255}},
		{{-32768, -32768}, {0, 10}, {32767, 32767}},
		{{0, 255}, {255, 0}},
		{{0, 0}, {64, 80}, {128, 120}, {192, 210}, {255, 255}},
	}
	for i, points := range pointLists {
		s.Add(NewCurve(ChannelName(i), mode, points...))
	}
	return s
}

func setPoints(s *CurveSet) [][]Point {
	out := make([][]Point, s.Len())
	for i := range out {
		out[i] = s.Curve(i).Points()
	}
	return out
}

func TestDecode(t *testing.T) {
	// one curve with two points; on-disk point order is (y, x)
	data := []byte{
		0x00, 0x00, // reserved
		0x00, 0x01, // curve count
		0x00, 0x02, // point count
		0x00, 0xc8, 0x00, 0xff, // y=200, x=255
		0xff, 0x38, 0xff, 0x9c, // y=-200, x=-100
	}

	s, err := Decode(data, Linear)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	c := s.Curve(0)
	if c.Name() != "composite" {
		t.Errorf("curve name = %q, want %q", c.Name(), "composite")
	}
	if c.Mode() != Linear {
		t.Errorf("curve mode = %v, want Linear", c.Mode())
	}
	want := []Point{{X: 255, Y: 200}, {X: -100, Y: -200}}
	if d := cmp.Diff(c.Points(), want); d != "" {
		t.Errorf("unexpected points (-got +want):\n%s", d)
	}
}

func TestRoundTrip(t *testing.T) {
	s := sampleSet(Lagrange)

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(data, Lagrange)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded.Len() != s.Len() {
		t.Fatalf("Len() = %d, want %d", decoded.Len(), s.Len())
	}
	if d := cmp.Diff(setPoints(decoded), setPoints(s)); d != "" {
		t.Errorf("points changed in round trip (-got +want):\n%s", d)
	}
}

func TestTruncated(t *testing.T) {
	data, err := sampleSet(Linear).Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// every proper prefix must be rejected
	for cut := 0; cut < len(data); cut++ {
		_, err := Decode(data[:cut], Linear)
		var trunc *TruncatedFileError
		if !errors.As(err, &trunc) {
			t.Fatalf("Decode of %d-byte prefix: got %v, want TruncatedFileError",
				cut, err)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.acv")
	_, err := ReadFile(path, Linear)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if notFound.Path != path {
		t.Errorf("error path = %q, want %q", notFound.Path, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error does not wrap fs.ErrNotExist")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.acv")
	s := sampleSet(Cubic)
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path, Cubic)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got.Name() != "sample.acv" {
		t.Errorf("Name() = %q, want %q", got.Name(), "sample.acv")
	}
	if got.Path() != path {
		t.Errorf("Path() = %q, want %q", got.Path(), path)
	}
	if got.IsBuiltin() {
		t.Errorf("IsBuiltin() = true for a user file")
	}
	if d := cmp.Diff(setPoints(got), setPoints(s)); d != "" {
		t.Errorf("points changed in file round trip (-got +want):\n%s", d)
	}
}

func FuzzDecode(f *testing.F) {
	seed, err := sampleSet(Linear).Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)

	single := NewCurveSet(Linear)
	single.Add(NewCurve("composite", Linear, Point{0, 0}, Point{255, 255}))
	seed, err = single.Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)

	f.Fuzz(func(t *testing.T, a []byte) {
		s, err := Decode(a, Linear)
		if err != nil || s.Len() == 0 {
			return
		}
		b, err := s.Encode()
		if err != nil {
			t.Fatalf("re-encoding failed: %v", err)
		}
		q, err := Decode(b, Linear)
		if err != nil {
			t.Fatalf("re-decoding failed: %v", err)
		}
		if d := cmp.Diff(setPoints(q), setPoints(s)); d != "" {
			t.Fatalf("curve sets differ:\n%s", d)
		}
	})
}
