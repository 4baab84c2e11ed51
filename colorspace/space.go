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

// Package colorspace builds the base color spaces used by palettes.
//
// Device RGB and device CMY are used without calibration.  The device
// independent color spaces (colorimetric RGB, CIE L*a*b* and
// luminance-chrominance) are converted to CIE XYZ using a per-component
// decode stage followed by a linear or piecewise nonlinear transform.
package colorspace

import (
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/internal/colconv"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/rc"
)

// Charge against the arena memory budget.
const spaceSize = 512

// Calibration holds the per-component decode parameters of a device
// independent color space.
type Calibration struct {
	// Min and Range map normalized component values from [0, 1] into
	// [Min, Min+Range].
	Min, Range [3]float64

	// InvGamma is the exponent which undoes the gamma encoding of the
	// component data.  InvGain is the reciprocal of the encoding gain.
	InvGamma, InvGain [3]float64

	// Tables are the downloaded lookup tables.  Slot 0 holds the table for
	// the space itself.  For luminance-chrominance spaces, slot 1 holds a
	// colorimetric RGB table which is applied after the conversion to RGB.
	Tables [2]*rc.Ref[lookup.Table]
}

// Space is a base color space.
type Space struct {
	Type  cid.Space
	Calib *Calibration

	// White is the white point in CIE XYZ coordinates, with Y=1.
	White f64.Vec3

	// RGBToXYZ maps linear RGB to XYZ for colorimetric RGB and
	// luminance-chrominance spaces.
	RGBToXYZ f64.Mat3

	// LumChromToRGB maps luminance-chrominance values to RGB.
	LumChromToRGB f64.Mat3
}

// Build constructs the base color space for an image data configuration.
// For device RGB and CMY the result carries no calibration data.
func Build(a *rc.Arena, cfg *cid.Config) (*rc.Ref[Space], error) {
	s, err := newSpace(cfg)
	if err != nil {
		return nil, err
	}
	return rc.New(a, s, spaceSize, (*Space).release)
}

func newSpace(cfg *cid.Config) (*Space, error) {
	s := &Space{Type: cfg.Space}
	switch cfg.Space {
	case cid.RGB, cid.CMY:
		s.White = colconv.WhitePointD65
		return s, nil

	case cid.Colorimetric:
		data := cfg.Colorimetric
		if data == nil {
			data = cid.DefaultColorimetric()
		}
		m, w, err := ChromaMatrix(data.Primaries, data.White)
		if err != nil {
			return nil, &pcl.RangeError{Op: "colorimetric RGB", Err: err}
		}
		s.RGBToXYZ = m
		s.White = w
		s.Calib = newCalibration(data.Ranges, data.Nonlin)
		return s, nil

	case cid.Lab:
		data := cfg.Lab
		if data == nil {
			data = cid.DefaultLab()
		}
		s.White = colconv.WhitePointD65
		s.Calib = newCalibration(data.Ranges, [3]cid.Nonlin{})
		return s, nil

	case cid.LumChrom:
		data := cfg.LumChrom
		if data == nil {
			data = cid.DefaultLumChrom()
		}
		m, w, err := ChromaMatrix(data.Primaries, data.White)
		if err != nil {
			return nil, &pcl.RangeError{Op: "luminance-chrominance", Err: err}
		}
		inv, err := Invert(f64.Mat3(data.Matrix))
		if err != nil {
			return nil, &pcl.RangeError{Op: "luminance-chrominance matrix", Err: err}
		}
		s.RGBToXYZ = m
		s.White = w
		s.LumChromToRGB = inv
		s.Calib = newCalibration(data.Ranges, data.Nonlin)
		return s, nil

	default:
		return nil, pcl.Rangef("color space", "cannot build %s", cfg.Space)
	}
}

func newCalibration(ranges [3]cid.Range, nonlin [3]cid.Nonlin) *Calibration {
	c := &Calibration{}
	for i := range 3 {
		c.Min[i] = ranges[i].Min
		c.Range[i] = ranges[i].Max - ranges[i].Min

		c.InvGamma[i] = 1
		if g := nonlin[i].Gamma; g > 0 {
			c.InvGamma[i] = g
		}
		c.InvGain[i] = 1
		if g := nonlin[i].Gain; g > 0 {
			c.InvGain[i] = 1 / g
		}
	}
	return c
}

// IsDeviceSpecific reports whether s is device RGB or device CMY.
func (s *Space) IsDeviceSpecific() bool {
	return s.Type.IsDeviceSpecific()
}

// XYZRange returns the range of each XYZ axis reached by the decode
// function.  The range is bounded by the white point.
func (s *Space) XYZRange() [3]cid.Range {
	var res [3]cid.Range
	for i := range 3 {
		res[i] = cid.Range{Min: 0, Max: s.White[i]}
	}
	return res
}

// Clone returns a copy of s which shares the lookup tables of s.
func (s *Space) Clone() *Space {
	res := *s
	if s.Calib != nil {
		calib := *s.Calib
		for _, t := range calib.Tables {
			t.Acquire()
		}
		res.Calib = &calib
	}
	return &res
}

func (s *Space) release() {
	if s.Calib == nil {
		return
	}
	for i, t := range s.Calib.Tables {
		t.Release()
		s.Calib.Tables[i] = nil
	}
}

// Unshare returns a reference to a copy of the space which can be
// modified without affecting other owners.
func Unshare(r *rc.Ref[Space]) (*rc.Ref[Space], error) {
	return r.Unshare((*Space).Clone)
}

// SetLookupTable installs a lookup table in the matching calibration slot.
// Colorimetric RGB and CIE L*a*b* spaces use slot 0 for tables tagged with
// their own color space.  Luminance-chrominance spaces use slot 0 for
// luminance-chrominance tables and slot 1 for colorimetric RGB tables.
//
// The method reports whether the table was used.  The space takes its own
// reference to t.
func (s *Space) SetLookupTable(t *rc.Ref[lookup.Table]) bool {
	if s.Calib == nil || t == nil {
		return false
	}
	slot := -1
	tag := t.Value().Space
	switch s.Type {
	case cid.Colorimetric:
		if tag == lookup.Colorimetric {
			slot = 0
		}
	case cid.Lab:
		if tag == lookup.Lab {
			slot = 0
		}
	case cid.LumChrom:
		switch tag {
		case lookup.LumChrom:
			slot = 0
		case lookup.Colorimetric:
			slot = 1
		}
	}
	if slot < 0 {
		return false
	}
	rc.Assign(&s.Calib.Tables[slot], t)
	return true
}

// ClearLookupTables removes all lookup tables from the space.
func (s *Space) ClearLookupTables() {
	s.release()
}

// HasLookupTables reports whether any lookup table is installed.
func (s *Space) HasLookupTables() bool {
	if s.Calib == nil {
		return false
	}
	return s.Calib.Tables[0] != nil || s.Calib.Tables[1] != nil
}
