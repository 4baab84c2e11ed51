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

package halftone

import "seehuhn.de/go/pcl/internal/colconv"

// Mapping is the strategy used to map resolved colors to device colors.
// It is passed to the rasterizer explicitly with every render request.
type Mapping int

// The mapping strategies.
const (
	MapColor Mapping = iota
	MapGray
)

func (m Mapping) String() string {
	switch m {
	case MapColor:
		return "color"
	case MapGray:
		return "gray"
	default:
		return "unknown"
	}
}

// Map applies the strategy to a companded RGB color.
func (m Mapping) Map(r, g, b float64) (float64, float64, float64) {
	if m == MapGray {
		y := colconv.Luma(r, g, b)
		return y, y, y
	}
	return r, g, b
}
