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

package palette

import "seehuhn.de/go/pcl/cid"

// primaryColors lists the eight device RGB colors in index order:
// bit 0 selects red, bit 1 green and bit 2 blue.
var primaryColors = [8][3]byte{
	{0, 0, 0},
	{255, 0, 0},
	{0, 255, 0},
	{255, 255, 0},
	{0, 0, 255},
	{255, 0, 255},
	{0, 255, 255},
	{255, 255, 255},
}

// setDefaultEntries fills all 256 entries of the palette.
//
// Palettes with at least three bits per index start with the eight primary
// colors (complemented for CMY), followed by black.  Smaller palettes, and
// all CIE L*a*b* and luminance-chrominance palettes, hold a gray ramp from
// white at index 0 to black at the last live index.
func (p *Palette) setDefaultEntries() {
	n := p.n
	space := p.CID.Space

	ramp := p.CID.BitsPerIndex < 3 || space == cid.Lab || space == cid.LumChrom
	if ramp {
		for i := range MaxEntries {
			var v byte
			if i < n && n > 1 {
				v = byte(255 - i*255/(n-1))
			}
			e := [3]byte{v, v, v}
			if space == cid.Lab || space == cid.LumChrom {
				e[1], e[2] = 128, 128
			}
			copy(p.entries[3*i:], e[:])
		}
		return
	}

	for i := range MaxEntries {
		var e [3]byte
		if i < len(primaryColors) {
			e = primaryColors[i]
			if space == cid.CMY {
				// In CMY, bit 0 selects cyan, so that index i holds the
				// complement of RGB index i.
				e = [3]byte{255 - e[0], 255 - e[1], 255 - e[2]}
			}
		}
		copy(p.entries[3*i:], e[:])
	}
}
