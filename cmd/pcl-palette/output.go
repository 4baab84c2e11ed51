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

package main

import (
	"fmt"
	"image/color"
	"io"

	"seehuhn.de/go/pcl/internal/colconv"
	"seehuhn.de/go/pcl/internal/float"
	"seehuhn.de/go/pcl/render"
)

// printPalette writes one line per live palette entry: the index, the
// stored entry bytes and the resolved device color.  If swatch is set, a
// colored block is appended using 24-bit terminal escape sequences.
func printPalette(w io.Writer, v *render.View, precision int, swatch bool) error {
	p := v.Palette()
	_, err := fmt.Fprintf(w, "# id %d, %s, %d entries, method %s, %s mapping\n",
		v.ID, p.CID.Space, p.EntryCount(), v.Method, v.Mapping)
	if err != nil {
		return err
	}

	for i := range p.EntryCount() {
		e := p.Entry(i)
		dev := v.Color(i)
		line := fmt.Sprintf("%3d  %02x %02x %02x  %s", i, e[0], e[1], e[2],
			float.FormatList(dev, precision))
		if swatch {
			c := toRGBA(dev)
			line += fmt.Sprintf("  \x1b[48;2;%d;%d;%dm    \x1b[0m", c.R, c.G, c.B)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// toRGBA converts device color values to an 8-bit RGB color for display.
func toRGBA(dev []float64) color.RGBA {
	var r, g, b float64
	switch len(dev) {
	case 1:
		r, g, b = dev[0], dev[0], dev[0]
	case 4:
		k := 1 - colconv.Clamp(dev[3], 0, 1)
		r = (1 - colconv.Clamp(dev[0], 0, 1)) * k
		g = (1 - colconv.Clamp(dev[1], 0, 1)) * k
		b = (1 - colconv.Clamp(dev[2], 0, 1)) * k
	default:
		r, g, b = dev[0], dev[1], dev[2]
	}
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 255}
}

func to8(x float64) uint8 {
	return uint8(colconv.Clamp(x, 0, 1)*255 + 0.5)
}
