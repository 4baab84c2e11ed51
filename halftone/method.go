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

// Package halftone records which render method, gamma correction and
// lookup tables are bound to a palette.
//
// The screening algorithms themselves are implemented by the rasterizer.
// This package only selects the method and binds its parameters.
package halftone

import "strconv"

// Method is a render algorithm.
type Method uint8

// The render algorithms.
const (
	ContoneDetailed          Method = 0
	SnapPrimaries            Method = 1
	SnapBlackWhite           Method = 2
	DeviceBestDither         Method = 3
	ErrorDiffusion           Method = 4
	MonoDeviceBestDither     Method = 5
	MonoErrorDiffusion       Method = 6
	ClusterOrderedDither     Method = 7
	MonoClusterOrderedDither Method = 8
	UserOrderedDither        Method = 9
	MonoUserOrderedDither    Method = 10
	OrderedDither            Method = 11
	MonoOrderedDither        Method = 12
	NoiseOrderedDither       Method = 13
	MonoNoiseOrderedDither   Method = 14
	ContoneSmooth            Method = 15
	MonoContoneSmooth        Method = 16
	ContoneBasic             Method = 17
	MonoContoneBasic         Method = 18

	numMethods = 19
)

// DefaultMethod is the render method selected after a reset.
const DefaultMethod = DeviceBestDither

var methodNames = [numMethods]string{
	"ContoneDetailed",
	"SnapPrimaries",
	"SnapBlackWhite",
	"DeviceBestDither",
	"ErrorDiffusion",
	"MonoDeviceBestDither",
	"MonoErrorDiffusion",
	"ClusterOrderedDither",
	"MonoClusterOrderedDither",
	"UserOrderedDither",
	"MonoUserOrderedDither",
	"OrderedDither",
	"MonoOrderedDither",
	"NoiseOrderedDither",
	"MonoNoiseOrderedDither",
	"ContoneSmooth",
	"MonoContoneSmooth",
	"ContoneBasic",
	"MonoContoneBasic",
}

func (m Method) String() string {
	if m.IsValid() {
		return methodNames[m]
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// IsValid reports whether m is a known render method.
func (m Method) IsValid() bool {
	return m < numMethods
}

// Monochrome reports whether m renders all colors as gray levels.
func (m Method) Monochrome() bool {
	switch m {
	case MonoDeviceBestDither, MonoErrorDiffusion, MonoClusterOrderedDither,
		MonoUserOrderedDither, MonoOrderedDither, MonoNoiseOrderedDither,
		MonoContoneSmooth, MonoContoneBasic:
		return true
	default:
		return false
	}
}

// Color returns the color counterpart of a monochrome method.
// Other methods are returned unchanged.
func (m Method) Color() Method {
	switch m {
	case MonoDeviceBestDither:
		return DeviceBestDither
	case MonoErrorDiffusion:
		return ErrorDiffusion
	case MonoClusterOrderedDither, MonoUserOrderedDither, MonoOrderedDither,
		MonoNoiseOrderedDither, MonoContoneSmooth, MonoContoneBasic:
		return m - 1
	default:
		return m
	}
}

// NeedsUserPattern reports whether m uses a downloaded dither pattern.
func (m Method) NeedsUserPattern() bool {
	return m == UserOrderedDither || m == MonoUserOrderedDither
}
