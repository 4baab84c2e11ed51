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

// DefaultDeviceRefs returns the white and black references implied by the
// bits per primary of a short form configuration.
func DefaultDeviceRefs(bitsPerPrimary [3]uint8) *DeviceRefs {
	refs := &DeviceRefs{}
	for i, bits := range bitsPerPrimary {
		refs.White[i] = uint16(1)<<bits - 1
	}
	return refs
}

// DefaultColorimetric returns the calibration used for colorimetric RGB
// when no long form data is given.
func DefaultColorimetric() *ColorimetricData {
	return &ColorimetricData{
		Primaries: [3]Chroma{
			{0.640, 0.340},
			{0.310, 0.595},
			{0.155, 0.070},
		},
		White:  Chroma{0.313, 0.329},
		Nonlin: [3]Nonlin{{2.2, 1}, {2.2, 1}, {2.2, 1}},
		Ranges: [3]Range{{0, 1}, {0, 1}, {0, 1}},
	}
}

// DefaultLab returns the ranges used for CIE L*a*b* when no long form data
// is given.
func DefaultLab() *LabData {
	return &LabData{
		Ranges: [3]Range{{0, 100}, {-100, 100}, {-100, 100}},
	}
}

// DefaultLumChrom returns the calibration used for luminance-chrominance
// color when no long form data is given.  The matrix is the ITU-R BT.601
// conversion from RGB to YCbCr.
func DefaultLumChrom() *LumChromData {
	col := DefaultColorimetric()
	return &LumChromData{
		Matrix: [9]float64{
			0.299, 0.587, 0.114,
			-0.168736, -0.331264, 0.5,
			0.5, -0.418688, -0.081312,
		},
		Primaries: col.Primaries,
		White:     col.White,
		Nonlin:    col.Nonlin,
		Ranges:    [3]Range{{0, 1}, {-0.5, 0.5}, {-0.5, 0.5}},
	}
}
