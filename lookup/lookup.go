// seehuhn.de/go/pcl - color palettes for PCL interpreters
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

// Package lookup implements downloadable color lookup tables.
//
// A lookup table maps each of the three color components through a table of
// 256 entries.  Tables are tagged with the color space they were designed
// for and are immutable once built.
package lookup

import (
	"strconv"

	"seehuhn.de/go/pcl"
)

// Space identifies the color space a table applies to.  The values are the
// color space codes used by the "configure image data" command.
type Space uint8

// The color spaces supported for lookup tables.
const (
	RGB          Space = 0
	CMY          Space = 1
	Colorimetric Space = 2
	Lab          Space = 3
	LumChrom     Space = 4
)

func (s Space) String() string {
	switch s {
	case RGB:
		return "RGB"
	case CMY:
		return "CMY"
	case Colorimetric:
		return "Colorimetric"
	case Lab:
		return "Lab"
	case LumChrom:
		return "LumChrom"
	default:
		return "Space(" + strconv.Itoa(int(s)) + ")"
	}
}

// PayloadSize is the size of a lookup table download in bytes.
const PayloadSize = 2 + 3*256

// Table is a per-component transfer table.
type Table struct {
	Space Space
	Data  [3][256]byte
}

// Decode parses a lookup table download.  A zero length payload clears all
// tables; in this case Decode returns nil, nil.
func Decode(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) != PayloadSize {
		return nil, pcl.Rangef("lookup table", "invalid length %d", len(data))
	}
	space := Space(data[0])
	if space > LumChrom {
		return nil, pcl.Rangef("lookup table", "invalid color space %d", data[0])
	}

	t := &Table{Space: space}
	for c := range 3 {
		copy(t.Data[c][:], data[2+256*c:2+256*(c+1)])
	}
	return t, nil
}

// Identity returns a table which maps every value to itself.
func Identity(space Space) *Table {
	t := &Table{Space: space}
	for c := range 3 {
		for i := range 256 {
			t.Data[c][i] = byte(i)
		}
	}
	return t
}

// Encode returns the download form of the table.
func (t *Table) Encode() []byte {
	res := make([]byte, PayloadSize)
	res[0] = byte(t.Space)
	for c := range 3 {
		copy(res[2+256*c:], t.Data[c][:])
	}
	return res
}

// Convert returns a version of the table which applies to the color space
// to.  Only conversion between RGB and CMY changes the table data; for other
// combinations a copy with the new tag is returned.
//
// The conversion maps a CMY table to RGB as rgb[i] = 255 - cmy[255-i] and
// vice versa, so that converting twice recovers the original table.
func (t *Table) Convert(to Space) *Table {
	res := &Table{Space: to}
	if (t.Space == RGB && to == CMY) || (t.Space == CMY && to == RGB) {
		for c := range 3 {
			for i := range 256 {
				res.Data[c][i] = 255 - t.Data[c][255-i]
			}
		}
	} else {
		res.Data = t.Data
	}
	return res
}

// Apply maps the normalized component value v ∈ [0, 1] for component c
// through the table.  The result is again in the range [0, 1].
func (t *Table) Apply(c int, v float64) float64 {
	if t == nil {
		return v
	}
	var idx int
	switch {
	case v <= 0:
		idx = 0
	case v >= 1:
		idx = 255
	default:
		idx = int(v*255 + 0.5)
	}
	return float64(t.Data[c][idx]) / 255
}

// IsIdentity reports whether the table maps every value to itself.
func (t *Table) IsIdentity() bool {
	for c := range 3 {
		for i := range 256 {
			if t.Data[c][i] != byte(i) {
				return false
			}
		}
	}
	return true
}
