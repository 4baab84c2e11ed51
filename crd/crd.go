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

// Package crd implements the color rendering dictionary.
//
// A rendering dictionary converts CIE XYZ colors from device independent
// color spaces into device colors.  It is anchored to a view illuminant:
// source colors are first adapted from the white point of their color space
// to the view illuminant, and then converted to the device color model.
package crd

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f64"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/colorspace"
	"seehuhn.de/go/pcl/internal/colconv"
	"seehuhn.de/go/pcl/rc"
)

// Charge against the arena memory budget.
const dictSize = 256

// Model is the color model of the output device.
type Model int

// The supported device color models.
const (
	ModelRGB Model = iota
	ModelGray
	ModelCMYK
)

// Channels returns the number of device color components.
func (m Model) Channels() int {
	switch m {
	case ModelGray:
		return 1
	case ModelCMYK:
		return 4
	default:
		return 3
	}
}

func (m Model) String() string {
	switch m {
	case ModelGray:
		return "gray"
	case ModelCMYK:
		return "CMYK"
	default:
		return "RGB"
	}
}

// DefaultIlluminant is the D65 chromaticity used when no view illuminant
// has been set.
var DefaultIlluminant = cid.Chroma{X: 0.3127, Y: 0.3290}

// Output device primaries (ITU-R BT.709).
var devicePrimaries = [3]cid.Chroma{{0.64, 0.33}, {0.30, 0.60}, {0.15, 0.06}}

// Bradford cone response matrices.
var (
	bradford = f64.Mat3{
		0.8951, 0.2664, -0.1614,
		-0.7502, 1.7135, 0.0367,
		0.0389, -0.0685, 1.0296,
	}
	invBradford = f64.Mat3{
		0.9869929, -0.1470543, 0.1599627,
		0.4323053, 0.5183603, 0.0492912,
		-0.0085287, 0.0400428, 0.9684867,
	}
)

// Dict is a color rendering dictionary.
type Dict struct {
	// Illuminant is the chromaticity of the view illuminant.
	Illuminant cid.Chroma

	// White holds the view illuminant as (u, v, w) = (x/y, 1, (1-x-y)/y).
	White f64.Vec3

	// Default is true while the default illuminant is in use.
	Default bool

	// Device is the color model of the output device.
	Device Model

	fromXYZ f64.Mat3
}

// New allocates a rendering dictionary using the default view illuminant.
//
// The optional ICC profile describes the output device; only its color
// model is used.  If profile is nil, the built-in sRGB profile is used.
func New(a *rc.Arena, profile []byte) (*rc.Ref[Dict], error) {
	if profile == nil {
		profile = icc.SRGBv4Profile
	}
	p, err := icc.Decode(profile)
	if err != nil {
		return nil, &pcl.RangeError{Op: "output profile", Err: err}
	}

	d := &Dict{Default: true}
	switch p.ColorSpace {
	case icc.RGBSpace:
		d.Device = ModelRGB
	case icc.GraySpace:
		d.Device = ModelGray
	case icc.CMYKSpace:
		d.Device = ModelCMYK
	default:
		return nil, &pcl.AccessError{
			Op:     "output profile",
			Reason: "unsupported device color space",
		}
	}
	if err := d.setIlluminant(DefaultIlluminant); err != nil {
		return nil, err
	}
	return rc.New(a, d, dictSize, nil)
}

// Clone returns a copy of d.
func (d *Dict) Clone() *Dict {
	res := *d
	return &res
}

// Unshare returns a reference to a copy of the dictionary which can be
// modified without affecting other owners.
func Unshare(r *rc.Ref[Dict]) (*rc.Ref[Dict], error) {
	return r.Unshare((*Dict).Clone)
}

// DecodeIlluminant parses a view illuminant payload: two big-endian IEEE
// single precision numbers giving the chromaticity (x, y).
func DecodeIlluminant(data []byte) (cid.Chroma, error) {
	if len(data) != 8 {
		return cid.Chroma{}, pcl.Rangef("view illuminant", "invalid length %d", len(data))
	}
	x := float64(math.Float32frombits(binary.BigEndian.Uint32(data[0:])))
	y := float64(math.Float32frombits(binary.BigEndian.Uint32(data[4:])))
	if err := checkIlluminant(cid.Chroma{X: x, Y: y}); err != nil {
		return cid.Chroma{}, err
	}
	return cid.Chroma{X: x, Y: y}, nil
}

// EncodeIlluminant returns the payload form of a view illuminant.
func EncodeIlluminant(c cid.Chroma) []byte {
	res := make([]byte, 0, 8)
	res = binary.BigEndian.AppendUint32(res, math.Float32bits(float32(c.X)))
	res = binary.BigEndian.AppendUint32(res, math.Float32bits(float32(c.Y)))
	return res
}

func checkIlluminant(c cid.Chroma) error {
	if !(c.Y > 0) || !(c.X >= 0) || c.X+c.Y > 1 {
		return pcl.Rangef("view illuminant", "invalid chromaticity (%g, %g)", c.X, c.Y)
	}
	return nil
}

// SetIlluminant changes the view illuminant and rebuilds the dictionary.
// On error, d is unchanged.
func (d *Dict) SetIlluminant(c cid.Chroma) error {
	if err := checkIlluminant(c); err != nil {
		return err
	}
	if err := d.setIlluminant(c); err != nil {
		return err
	}
	d.Default = false
	return nil
}

func (d *Dict) setIlluminant(c cid.Chroma) error {
	toXYZ, white, err := colorspace.ChromaMatrix(devicePrimaries, c)
	if err != nil {
		return &pcl.RangeError{Op: "view illuminant", Err: err}
	}
	fromXYZ, err := colorspace.Invert(toXYZ)
	if err != nil {
		return &pcl.RangeError{Op: "view illuminant", Err: err}
	}
	d.Illuminant = c
	d.White = white
	d.fromXYZ = fromXYZ
	return nil
}

// Adapt converts an XYZ color relative to the white point srcWhite to the
// view illuminant, using the Bradford transform.
func (d *Dict) Adapt(xyz, srcWhite f64.Vec3) f64.Vec3 {
	src := colorspace.MulVec(bradford, srcWhite)
	dst := colorspace.MulVec(bradford, d.White)
	cone := colorspace.MulVec(bradford, xyz)
	for i := range 3 {
		if src[i] != 0 {
			cone[i] *= dst[i] / src[i]
		}
	}
	return colorspace.MulVec(invBradford, cone)
}

// ToRGB converts an XYZ color relative to srcWhite to companded RGB values
// in [0, 1].
func (d *Dict) ToRGB(xyz, srcWhite f64.Vec3) [3]float64 {
	lin := colorspace.MulVec(d.fromXYZ, d.Adapt(xyz, srcWhite))
	var res [3]float64
	for i := range 3 {
		res[i] = colconv.SRGBCompand(lin[i])
	}
	return res
}

// ToDevice converts an RGB color to the device color model.
func (d *Dict) ToDevice(rgb [3]float64) []float64 {
	switch d.Device {
	case ModelGray:
		return []float64{colconv.Luma(rgb[0], rgb[1], rgb[2])}
	case ModelCMYK:
		c, m, y, k := colconv.RGBToCMYK(rgb[0], rgb[1], rgb[2])
		return []float64{c, m, y, k}
	default:
		return []float64{
			colconv.Clamp(rgb[0], 0, 1),
			colconv.Clamp(rgb[1], 0, 1),
			colconv.Clamp(rgb[2], 0, 1),
		}
	}
}
