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
	"io/fs"
	"sort"
	"strings"
)

// A Catalog provides access to a collection of named preset curve
// sets. How the presets are stored is up to the host application; see
// [NewFSCatalog] for a filesystem-backed implementation.
type Catalog interface {
	// Names lists the available presets.
	Names() []string

	// Load reads the preset with the given name. Unknown names yield
	// a NotFoundError.
	Load(name string) (*CurveSet, error)
}

const catalogExt = ".acv"

// FSCatalog is a [Catalog] backed by a file system, for example a
// directory (os.DirFS) or an embedded asset bundle (embed.FS). Every
// file with the extension ".acv" in the root of the file system is a
// preset; the preset name is the file name without the extension.
type FSCatalog struct {
	fsys fs.FS
	mode Interpolation
}

// NewFSCatalog creates a catalog of the ACV files in the root of fsys.
// Curve sets loaded from the catalog use the given interpolation mode.
func NewFSCatalog(fsys fs.FS, mode Interpolation) *FSCatalog {
	return &FSCatalog{fsys: fsys, mode: mode}
}

// Names implements the [Catalog] interface. The names are sorted.
func (c *FSCatalog) Names() []string {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, catalogExt) {
			continue
		}
		names = append(names, name[:len(name)-len(catalogExt)])
	}
	sort.Strings(names)
	return names
}

// Load implements the [Catalog] interface. The loaded set is marked as
// builtin and carries the preset name.
func (c *FSCatalog) Load(name string) (*CurveSet, error) {
	fname := name + catalogExt
	data, err := fs.ReadFile(c.fsys, fname)
	if err != nil {
		return nil, &NotFoundError{Path: fname, Err: err}
	}
	s, err := Decode(data, c.mode)
	if err != nil {
		return nil, err
	}
	s.name = name
	s.path = fname
	s.builtin = true
	return s, nil
}
