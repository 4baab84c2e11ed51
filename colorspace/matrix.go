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
	"errors"
	"math"

	"golang.org/x/image/math/f64"

	"seehuhn.de/go/pcl/cid"
)

var errSingular = errors.New("singular matrix")

// chromaVector returns the XYZ coordinates of a chromaticity, scaled so
// that Y=1.
func chromaVector(c cid.Chroma) f64.Vec3 {
	return f64.Vec3{c.X / c.Y, 1, (1 - c.X - c.Y) / c.Y}
}

// ChromaMatrix computes the matrix which maps linear RGB values to CIE XYZ
// for the given primary and white point chromaticities.
//
// The columns of the result are the XYZ coordinates of the three primaries,
// scaled so that RGB (1, 1, 1) maps to the white point.  The white point
// itself is returned with Y=1.
func ChromaMatrix(prim [3]cid.Chroma, white cid.Chroma) (f64.Mat3, f64.Vec3, error) {
	for _, c := range prim {
		if c.Y <= 0 {
			return f64.Mat3{}, f64.Vec3{}, errSingular
		}
	}
	if white.Y <= 0 {
		return f64.Mat3{}, f64.Vec3{}, errSingular
	}

	var m f64.Mat3
	for col, c := range prim {
		v := chromaVector(c)
		for row := range 3 {
			m[3*row+col] = v[row]
		}
	}
	inv, err := Invert(m)
	if err != nil {
		return f64.Mat3{}, f64.Vec3{}, err
	}

	w := chromaVector(white)
	scale := MulVec(inv, w)
	for col := range 3 {
		for row := range 3 {
			m[3*row+col] *= scale[col]
		}
	}
	return m, w, nil
}

// Invert returns the inverse of a 3x3 matrix.
func Invert(m f64.Mat3) (f64.Mat3, error) {
	det := m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])

	norm := 0.0
	for _, x := range m {
		norm = math.Max(norm, math.Abs(x))
	}
	if norm == 0 || math.Abs(det) <= 1e-12*norm*norm*norm || math.IsNaN(det) {
		return f64.Mat3{}, errSingular
	}

	inv := f64.Mat3{
		m[4]*m[8] - m[5]*m[7], m[2]*m[7] - m[1]*m[8], m[1]*m[5] - m[2]*m[4],
		m[5]*m[6] - m[3]*m[8], m[0]*m[8] - m[2]*m[6], m[2]*m[3] - m[0]*m[5],
		m[3]*m[7] - m[4]*m[6], m[1]*m[6] - m[0]*m[7], m[0]*m[4] - m[1]*m[3],
	}
	for i := range inv {
		inv[i] /= det
	}
	return inv, nil
}

// MulVec returns the product m·v.
func MulVec(m f64.Mat3, v f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Mul returns the matrix product a·b.
func Mul(a, b f64.Mat3) f64.Mat3 {
	var res f64.Mat3
	for i := range 3 {
		for j := range 3 {
			var s float64
			for k := range 3 {
				s += a[3*i+k] * b[3*k+j]
			}
			res[3*i+j] = s
		}
	}
	return res
}

// Identity is the 3x3 identity matrix.
var Identity = f64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
