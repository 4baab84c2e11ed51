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

// Package colconv contains helper functions for CIE colorimetry.
package colconv

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Reference white points, given as CIE 1931 XYZ coordinates with Y=1.
var (
	WhitePointD65 = f64.Vec3{0.95047, 1.0, 1.08883}
	WhitePointD50 = f64.Vec3{0.96422, 1.0, 0.82521}
)

const (
	labDelta = 6.0 / 29.0
	labKappa = 3 * labDelta * labDelta
)

// LabF is the nonlinearity used to compute L*, a* and b* from relative
// XYZ values.
func LabF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/labKappa + 4.0/29.0
}

// LabFInv is the inverse of [LabF]: a cube above 6/29, linear below.
func LabFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return labKappa * (t - 4.0/29.0)
}

// XYZToLab converts XYZ values relative to the given white point to
// CIE 1976 L*a*b*.
func XYZToLab(xyz, white f64.Vec3) (L, A, B float64) {
	fx := LabF(xyz[0] / white[0])
	fy := LabF(xyz[1] / white[1])
	fz := LabF(xyz[2] / white[2])

	L = 116*fy - 16
	A = 500 * (fx - fy)
	B = 200 * (fy - fz)
	return L, A, B
}

// SRGBCompand applies the sRGB transfer curve to a linear value in [0, 1].
func SRGBCompand(v float64) float64 {
	v = Clamp(v, 0, 1)
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// Luma returns the Rec. 709 luma of a companded RGB color.
func Luma(r, g, b float64) float64 {
	return Clamp(0.2126*r+0.7152*g+0.0722*b, 0, 1)
}

// RGBToCMYK converts an RGB color (0-1 range) to CMYK using the simple
// device formula with full black generation.
func RGBToCMYK(r, g, b float64) (c, m, y, k float64) {
	r = Clamp(r, 0, 1)
	g = Clamp(g, 0, 1)
	b = Clamp(b, 0, 1)

	k = 1 - math.Max(math.Max(r, g), b)
	if k >= 1 {
		// Pure black
		return 0, 0, 0, 1
	}
	c = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return Clamp(c, 0, 1), Clamp(m, 0, 1), Clamp(y, 0, 1), k
}

// Clamp restricts x to the interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
