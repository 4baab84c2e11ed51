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

// Package cid implements the "configure image data" descriptor.
//
// A descriptor binds a color space, a pixel encoding and the bit depths
// used for indexed and direct color.  Descriptors are transmitted in a short
// form (6 bytes) or in a long form which additionally carries calibration
// data.  The size of the long form depends on the color space.
//
// Use [Decode] to parse a payload and [Validate] to normalize a descriptor
// which was constructed in Go code.
package cid

import "strconv"

// Space is the color space of an image data configuration.
type Space uint8

// These are the color space codes used in the descriptor header.
const (
	RGB          Space = 0 // device RGB
	CMY          Space = 1 // device CMY
	Colorimetric Space = 2 // colorimetric RGB
	Lab          Space = 3 // CIE L*a*b*
	LumChrom     Space = 4 // luminance-chrominance

	// ColorimetricLegacy is a variant of the colorimetric RGB tag sent by
	// older drivers.  It is validated like [Colorimetric] and then treated
	// as device RGB.
	ColorimetricLegacy Space = 5
)

func (s Space) String() string {
	switch s {
	case RGB:
		return "RGB"
	case CMY:
		return "CMY"
	case Colorimetric:
		return "Colorimetric"
	case Lab:
		return "Lab"
	case LumChrom:
		return "LumChrom"
	case ColorimetricLegacy:
		return "ColorimetricLegacy"
	default:
		return "Space(" + strconv.Itoa(int(s)) + ")"
	}
}

// IsDeviceSpecific reports whether s maps linearly to device intensities.
func (s Space) IsDeviceSpecific() bool {
	return s == RGB || s == CMY
}

// Encoding describes how pixel data is arranged.
type Encoding uint8

// The pixel encodings.
const (
	IndexedByPlane Encoding = 0
	IndexedByPixel Encoding = 1
	DirectByPlane  Encoding = 2
	DirectByPixel  Encoding = 3
)

func (e Encoding) String() string {
	switch e {
	case IndexedByPlane:
		return "IndexedByPlane"
	case IndexedByPixel:
		return "IndexedByPixel"
	case DirectByPlane:
		return "DirectByPlane"
	case DirectByPixel:
		return "DirectByPixel"
	default:
		return "Encoding(" + strconv.Itoa(int(e)) + ")"
	}
}

// IsIndexed reports whether pixels are palette indices.
func (e Encoding) IsIndexed() bool {
	return e == IndexedByPlane || e == IndexedByPixel
}

// Chroma is a pair of CIE 1931 chromaticity coordinates.
type Chroma struct {
	X, Y float64
}

// Nonlin describes the nonlinearity of one color component.
type Nonlin struct {
	Gamma, Gain float64
}

// Range is the range of values of one color component.
type Range struct {
	Min, Max float64
}

// DeviceRefs holds the white and black references for device RGB and CMY.
type DeviceRefs struct {
	White [3]uint16
	Black [3]uint16
}

// ColorimetricData is the calibration payload for colorimetric RGB.
type ColorimetricData struct {
	Primaries [3]Chroma
	White     Chroma
	Nonlin    [3]Nonlin
	Ranges    [3]Range
}

// LabData is the calibration payload for CIE L*a*b*.
type LabData struct {
	Ranges [3]Range
}

// LumChromData is the calibration payload for luminance-chrominance color.
//
// Matrix converts RGB to luminance-chrominance values and is stored in
// row-major order.
type LumChromData struct {
	Matrix    [9]float64
	Primaries [3]Chroma
	White     Chroma
	Nonlin    [3]Nonlin
	Ranges    [3]Range
}

// Config is an image data configuration.
//
// At most one of the calibration payloads is set, matching Space.  If no
// payload is set, the defaults for the color space apply.
type Config struct {
	Space          Space
	Encoding       Encoding
	BitsPerIndex   uint8
	BitsPerPrimary [3]uint8

	Device       *DeviceRefs
	Colorimetric *ColorimetricData
	Lab          *LabData
	LumChrom     *LumChromData
}

// Default returns the power-on configuration: device RGB, indexed by plane,
// one bit per index and eight bits per primary.
func Default() *Config {
	return &Config{
		Space:          RGB,
		Encoding:       IndexedByPlane,
		BitsPerIndex:   1,
		BitsPerPrimary: [3]uint8{8, 8, 8},
	}
}

// IsDeviceSpecific reports whether the color space of c is device RGB or
// device CMY.
func (c *Config) IsDeviceSpecific() bool {
	return c.Space.IsDeviceSpecific()
}

// NumEntries returns the number of palette entries which can be addressed
// with BitsPerIndex bits.
func (c *Config) NumEntries() int {
	return 1 << c.BitsPerIndex
}

// IsLongForm reports whether the configuration carries calibration data.
func (c *Config) IsLongForm() bool {
	return c.Device != nil || c.Colorimetric != nil || c.Lab != nil || c.LumChrom != nil
}

// Size returns the length of the encoded form of c in bytes.
func (c *Config) Size() int {
	if !c.IsLongForm() {
		return HeaderSize
	}
	return HeaderSize + payloadSize(c.Space)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	res := *c
	if c.Device != nil {
		d := *c.Device
		res.Device = &d
	}
	if c.Colorimetric != nil {
		d := *c.Colorimetric
		res.Colorimetric = &d
	}
	if c.Lab != nil {
		d := *c.Lab
		res.Lab = &d
	}
	if c.LumChrom != nil {
		d := *c.LumChrom
		res.LumChrom = &d
	}
	return &res
}
