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

package colconv

import (
	"math"
	"testing"
)

func TestLabFInverse(t *testing.T) {
	for _, x := range []float64{0, 0.001, 0.008856, 0.01, 0.2, 0.5, 1} {
		y := LabFInv(LabF(x))
		if math.Abs(x-y) > 1e-12 {
			t.Errorf("LabFInv(LabF(%g)) = %g", x, y)
		}
	}
}

func TestXYZToLabWhite(t *testing.T) {
	L, A, B := XYZToLab(WhitePointD65, WhitePointD65)
	if math.Abs(L-100) > 1e-9 || math.Abs(A) > 1e-9 || math.Abs(B) > 1e-9 {
		t.Errorf("white maps to (%g, %g, %g)", L, A, B)
	}
}

func TestRGBToCMYK(t *testing.T) {
	cases := []struct {
		r, g, b    float64
		c, m, y, k float64
	}{
		{1, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 1, 1, 0},
		{0.5, 0.5, 0.5, 0, 0, 0, 0.5},
	}
	for _, c := range cases {
		cc, m, y, k := RGBToCMYK(c.r, c.g, c.b)
		if math.Abs(cc-c.c)+math.Abs(m-c.m)+math.Abs(y-c.y)+math.Abs(k-c.k) > 1e-12 {
			t.Errorf("RGBToCMYK(%g, %g, %g) = %g %g %g %g",
				c.r, c.g, c.b, cc, m, y, k)
		}
	}
}
