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

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/rc"
)

// DitherPattern is a downloaded threshold matrix.
//
// A pattern has either one plane, which is used for all color components,
// or three planes.
type DitherPattern struct {
	Planes []DitherPlane
}

// DitherPlane is one threshold matrix.
type DitherPlane struct {
	Width, Height int

	// Data holds Height rows of Width threshold values each.
	Data []byte
}

const opDither = "download dither matrix"

// DecodeDither parses a dither matrix download.
//
// The payload starts with a format byte (which must be 0) and the number of
// planes (1 or 3).  Each plane consists of its height and width, as
// unsigned 16-bit big-endian integers, followed by the threshold values in
// row-major order.
func DecodeDither(data []byte) (*DitherPattern, error) {
	if len(data) < 2 {
		return nil, pcl.Rangef(opDither, "payload too short")
	}
	if data[0] != 0 {
		return nil, pcl.Rangef(opDither, "unsupported format %d", data[0])
	}
	n := int(data[1])
	if n != 1 && n != 3 {
		return nil, pcl.Rangef(opDither, "invalid number of planes %d", n)
	}

	pos := 2
	res := &DitherPattern{}
	for i := range n {
		if len(data)-pos < 4 {
			return nil, pcl.Rangef(opDither, "truncated header for plane %d", i)
		}
		h := int(binary.BigEndian.Uint16(data[pos:]))
		w := int(binary.BigEndian.Uint16(data[pos+2:]))
		pos += 4
		if w == 0 || h == 0 {
			return nil, pcl.Rangef(opDither, "empty plane %d", i)
		}
		if len(data)-pos < w*h {
			return nil, pcl.Rangef(opDither, "truncated data for plane %d", i)
		}
		res.Planes = append(res.Planes, DitherPlane{
			Width:  w,
			Height: h,
			Data:   bytes.Clone(data[pos : pos+w*h]),
		})
		pos += w * h
	}
	if pos != len(data) {
		return nil, pcl.Rangef(opDither, "%d bytes of trailing data", len(data)-pos)
	}
	return res, nil
}

// Plane returns the threshold matrix for color component c.
func (p *DitherPattern) Plane(c int) *DitherPlane {
	if len(p.Planes) == 1 {
		return &p.Planes[0]
	}
	return &p.Planes[c]
}

// Threshold returns the threshold value for component c at device pixel
// (x, y).  The matrix is tiled across the page.
func (p *DitherPattern) Threshold(c, x, y int) byte {
	pl := p.Plane(c)
	x %= pl.Width
	if x < 0 {
		x += pl.Width
	}
	y %= pl.Height
	if y < 0 {
		y += pl.Height
	}
	return pl.Data[y*pl.Width+x]
}

// NewDither decodes a dither matrix download and allocates the pattern in
// arena a.
func NewDither(a *rc.Arena, data []byte) (*rc.Ref[DitherPattern], error) {
	p, err := DecodeDither(data)
	if err != nil {
		return nil, err
	}
	return rc.New(a, p, p.size(), nil)
}

func (p *DitherPattern) size() int {
	n := 32
	for _, pl := range p.Planes {
		n += len(pl.Data) + 32
	}
	return n
}
