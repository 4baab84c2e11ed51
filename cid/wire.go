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

package cid

import (
	"encoding/binary"
	"math"

	"seehuhn.de/go/pcl"
)

// HeaderSize is the size of the short form of a configuration.
const HeaderSize = 6

// Sizes of the long form calibration data, excluding the header.
const (
	deviceRefsSize   = 12
	colorimetricSize = 80
	labSize          = 24
	lumChromSize     = 116
)

func payloadSize(s Space) int {
	switch s {
	case RGB, CMY:
		return deviceRefsSize
	case Colorimetric, ColorimetricLegacy:
		return colorimetricSize
	case Lab:
		return labSize
	case LumChrom:
		return lumChromSize
	default:
		return -1
	}
}

// Decode parses and validates a "configure image data" payload.
//
// The payload consists of a 6 byte header, optionally followed by
// calibration data.  The length of the calibration data must exactly match
// the color space: 12 bytes of device references for RGB and CMY, 80 bytes
// for colorimetric RGB, 24 bytes for CIE L*a*b* and 116 bytes for
// luminance-chrominance.
func Decode(data []byte) (*Config, error) {
	if len(data) < HeaderSize {
		return nil, pcl.Rangef(opConfigure, "payload too short (%d bytes)", len(data))
	}

	raw := &Config{
		Space:          Space(data[0]),
		Encoding:       Encoding(data[1]),
		BitsPerIndex:   data[2],
		BitsPerPrimary: [3]uint8{data[3], data[4], data[5]},
	}
	if raw.Space > ColorimetricLegacy {
		return nil, pcl.Rangef(opConfigure, "invalid color space %d", data[0])
	}

	body := data[HeaderSize:]
	if len(body) > 0 {
		if len(body) != payloadSize(raw.Space) {
			return nil, pcl.Rangef(opConfigure,
				"invalid length %d for %s long form", len(data), raw.Space)
		}
		r := &reader{buf: body}
		switch raw.Space {
		case RGB, CMY:
			d := &DeviceRefs{}
			for i := range 3 {
				d.White[i] = r.u16()
			}
			for i := range 3 {
				d.Black[i] = r.u16()
			}
			raw.Device = d
		case Colorimetric, ColorimetricLegacy:
			d := &ColorimetricData{}
			d.Primaries, d.White = r.chromas()
			d.Nonlin = r.nonlin()
			d.Ranges = r.ranges()
			raw.Colorimetric = d
		case Lab:
			raw.Lab = &LabData{Ranges: r.ranges()}
		case LumChrom:
			d := &LumChromData{}
			for i := range d.Matrix {
				d.Matrix[i] = r.f32()
			}
			d.Primaries, d.White = r.chromas()
			d.Nonlin = r.nonlin()
			d.Ranges = r.ranges()
			raw.LumChrom = d
		}
	}

	return Validate(raw)
}

// Encode returns the wire form of c.
func (c *Config) Encode() []byte {
	res := make([]byte, HeaderSize, c.Size())
	res[0] = byte(c.Space)
	res[1] = byte(c.Encoding)
	res[2] = c.BitsPerIndex
	copy(res[3:6], c.BitsPerPrimary[:])

	w := &writer{buf: res}
	switch {
	case c.Device != nil:
		for _, v := range c.Device.White {
			w.u16(v)
		}
		for _, v := range c.Device.Black {
			w.u16(v)
		}
	case c.Colorimetric != nil:
		d := c.Colorimetric
		w.chromas(d.Primaries, d.White)
		w.nonlin(d.Nonlin)
		w.ranges(d.Ranges)
	case c.Lab != nil:
		w.ranges(c.Lab.Ranges)
	case c.LumChrom != nil:
		d := c.LumChrom
		for _, v := range d.Matrix {
			w.f32(v)
		}
		w.chromas(d.Primaries, d.White)
		w.nonlin(d.Nonlin)
		w.ranges(d.Ranges)
	}
	return w.buf
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) u16() uint16 {
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) f32() float64 {
	v := math.Float32frombits(binary.BigEndian.Uint32(r.buf[r.pos:]))
	r.pos += 4
	return float64(v)
}

func (r *reader) chromas() (prim [3]Chroma, white Chroma) {
	for i := range prim {
		prim[i] = Chroma{X: r.f32(), Y: r.f32()}
	}
	white = Chroma{X: r.f32(), Y: r.f32()}
	return prim, white
}

func (r *reader) nonlin() (res [3]Nonlin) {
	for i := range res {
		res[i] = Nonlin{Gamma: r.f32(), Gain: r.f32()}
	}
	return res
}

func (r *reader) ranges() (res [3]Range) {
	for i := range res {
		res[i] = Range{Min: r.f32(), Max: r.f32()}
	}
	return res
}

type writer struct {
	buf []byte
}

func (w *writer) u16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *writer) f32(v float64) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, math.Float32bits(float32(v)))
}

func (w *writer) chromas(prim [3]Chroma, white Chroma) {
	for _, ch := range prim {
		w.f32(ch.X)
		w.f32(ch.Y)
	}
	w.f32(white.X)
	w.f32(white.Y)
}

func (w *writer) nonlin(nl [3]Nonlin) {
	for _, v := range nl {
		w.f32(v.Gamma)
		w.f32(v.Gain)
	}
}

func (w *writer) ranges(rr [3]Range) {
	for _, v := range rr {
		w.f32(v.Min)
		w.f32(v.Max)
	}
}
