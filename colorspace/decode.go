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

package colorspace

import (
	"math"

	"golang.org/x/image/math/f64"

	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/internal/colconv"
)

// labMatrix maps (L*+16, a*, b*) to the arguments of the inverse L*a*b*
// nonlinearity for X, Y and Z.
var labMatrix = f64.Mat3{
	1.0 / 116, 1.0 / 500, 0,
	1.0 / 116, 0, 0,
	1.0 / 116, 0, -1.0 / 200,
}

// Decode converts normalized component values in [0, 1] to CIE XYZ.
// For device RGB and CMY, the values are returned unchanged.
func (s *Space) Decode(v [3]float64) f64.Vec3 {
	switch s.Type {
	case cid.Colorimetric:
		var rgb f64.Vec3
		for i := range 3 {
			rgb[i] = s.DecodeComponent(i, v[i])
		}
		return MulVec(s.RGBToXYZ, rgb)

	case cid.Lab:
		var lab f64.Vec3
		for i := range 3 {
			lab[i] = s.DecodeComponent(i, v[i])
		}
		return s.labToXYZ(lab[0], lab[1], lab[2])

	case cid.LumChrom:
		var lc f64.Vec3
		for i := range 3 {
			lc[i] = s.DecodeComponent(i, v[i])
		}
		rgb := MulVec(s.LumChromToRGB, lc)
		for i := range 3 {
			rgb[i] = s.decodeLumChromRGB(i, rgb[i])
		}
		return MulVec(s.RGBToXYZ, rgb)

	default:
		return f64.Vec3(v)
	}
}

// DecodeComponent applies the per-component decode stage to the
// normalized value v of component i.
//
// The value is passed through the lookup table (if any) and mapped into
// the declared range of the component.  For colorimetric RGB, negative
// results are clamped to zero and the gamma and gain of the component are
// undone.
func (s *Space) DecodeComponent(i int, v float64) float64 {
	cal := s.Calib
	if cal == nil {
		return v
	}

	v = cal.Tables[0].Value().Apply(i, v)
	v = cal.Min[i] + v*cal.Range[i]
	if s.Type != cid.Colorimetric {
		return v
	}

	if v < 0 {
		v = 0
	}
	return undoNonlinearity(v, cal.InvGamma[i], cal.InvGain[i])
}

// decodeLumChromRGB is the decode stage applied to the RGB values obtained
// from luminance-chrominance data.  No range is declared for these values,
// so they are clamped to [0, 1].
func (s *Space) decodeLumChromRGB(i int, v float64) float64 {
	cal := s.Calib
	v = colconv.Clamp(v, 0, 1)
	v = cal.Tables[1].Value().Apply(i, v)
	v = undoNonlinearity(v, cal.InvGamma[i], cal.InvGain[i])
	return colconv.Clamp(v, 0, 1)
}

func undoNonlinearity(v, invGamma, invGain float64) float64 {
	if invGamma != 1 {
		v = math.Pow(v, invGamma)
	}
	if invGain != 1 {
		v *= invGain
	}
	return v
}

// labToXYZ converts CIE L*a*b* to XYZ relative to the white point of s.
//
// The relation between L* and Y is piecewise nonlinear, so the conversion
// first forms the three linear combinations (L*+16)/116 + a*/500,
// (L*+16)/116 and (L*+16)/116 - b*/200 and then applies the inverse
// nonlinearity to each of them.
func (s *Space) labToXYZ(L, a, b float64) f64.Vec3 {
	t := MulVec(labMatrix, f64.Vec3{L + 16, a, b})
	var res f64.Vec3
	for i := range 3 {
		res[i] = colconv.LabFInv(t[i]) * s.White[i]
	}
	return res
}
