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
	"errors"
	"fmt"

	"seehuhn.de/go/pcl"
)

const opConfigure = "configure image data"

// Validate checks a raw configuration and returns its normalized form.
// The argument is not modified.  Validating an already normalized
// configuration returns an equal configuration.
//
// The following rules apply:
//   - A bits per index value of 0 is replaced by 1, a bits per primary value
//     of 0 is replaced by 8.
//   - Indexed by pixel requires 1, 2, 4 or 8 bits per index.
//   - Direct by plane requires a device specific color space and one bit
//     per primary.  Direct by pixel requires eight bits per primary.
//   - Indexed encodings in device independent color spaces use eight bits
//     per primary.
//   - [ColorimetricLegacy] is replaced by [RGB].
func Validate(raw *Config) (*Config, error) {
	if raw.Space > ColorimetricLegacy {
		return nil, pcl.Rangef(opConfigure, "invalid color space %d", raw.Space)
	}
	if raw.Encoding > DirectByPixel {
		return nil, pcl.Rangef(opConfigure, "invalid pixel encoding %d", raw.Encoding)
	}

	c := raw.Clone()

	if c.BitsPerIndex == 0 {
		c.BitsPerIndex = 1
	} else if c.BitsPerIndex > 8 {
		return nil, pcl.Rangef(opConfigure, "invalid bits per index %d", c.BitsPerIndex)
	}
	for i, bits := range c.BitsPerPrimary {
		if bits == 0 {
			c.BitsPerPrimary[i] = 8
		} else if bits > 8 {
			return nil, pcl.Rangef(opConfigure,
				"invalid bits per primary %d for component %d", bits, i)
		}
	}

	deviceSpecific := c.Space.IsDeviceSpecific()
	switch c.Encoding {
	case IndexedByPixel:
		switch c.BitsPerIndex {
		case 1, 2, 4, 8:
		default:
			return nil, pcl.Rangef(opConfigure,
				"%d bits per index not allowed for indexed by pixel", c.BitsPerIndex)
		}
	case DirectByPlane:
		if !deviceSpecific {
			return nil, pcl.Rangef(opConfigure,
				"direct by plane requires a device color space, not %s", c.Space)
		}
		if c.BitsPerPrimary != [3]uint8{1, 1, 1} {
			return nil, pcl.Rangef(opConfigure,
				"direct by plane requires one bit per primary, not %v", c.BitsPerPrimary)
		}
	case DirectByPixel:
		if c.BitsPerPrimary != [3]uint8{8, 8, 8} {
			return nil, pcl.Rangef(opConfigure,
				"direct by pixel requires eight bits per primary, not %v", c.BitsPerPrimary)
		}
	}
	if c.Encoding.IsIndexed() && !deviceSpecific {
		c.BitsPerPrimary = [3]uint8{8, 8, 8}
	}

	if err := c.checkPayload(); err != nil {
		return nil, &pcl.RangeError{Op: opConfigure, Err: err}
	}

	if c.Space == ColorimetricLegacy {
		c.Space = RGB
		c.Colorimetric = nil
	}

	return c, nil
}

func (c *Config) checkPayload() error {
	space := c.Space
	if space == ColorimetricLegacy {
		space = Colorimetric
	}

	if c.Device != nil && !space.IsDeviceSpecific() {
		return fmt.Errorf("device references not allowed for %s", space)
	}
	if c.Colorimetric != nil && space != Colorimetric {
		return fmt.Errorf("colorimetric data not allowed for %s", space)
	}
	if c.Lab != nil && space != Lab {
		return fmt.Errorf("Lab data not allowed for %s", space)
	}
	if c.LumChrom != nil && space != LumChrom {
		return fmt.Errorf("luminance-chrominance data not allowed for %s", space)
	}

	if d := c.Device; d != nil {
		for i := range 3 {
			if d.White[i] == d.Black[i] {
				return fmt.Errorf("white and black reference coincide for component %d", i)
			}
		}
	}
	if d := c.Colorimetric; d != nil {
		if err := checkCalibration(d.Primaries, d.White, d.Nonlin, d.Ranges); err != nil {
			return err
		}
	}
	if d := c.Lab; d != nil {
		if err := checkRanges(d.Ranges); err != nil {
			return err
		}
	}
	if d := c.LumChrom; d != nil {
		if err := checkCalibration(d.Primaries, d.White, d.Nonlin, d.Ranges); err != nil {
			return err
		}
	}
	return nil
}

var errChroma = errors.New("invalid chromaticity")

func checkCalibration(prim [3]Chroma, white Chroma, nonlin [3]Nonlin, ranges [3]Range) error {
	for _, ch := range append(prim[:], white) {
		if ch.X < 0 || ch.Y <= 0 || ch.X+ch.Y > 1 {
			return fmt.Errorf("%w (%g, %g)", errChroma, ch.X, ch.Y)
		}
	}
	for i, nl := range nonlin {
		if nl.Gamma < 0 || nl.Gain < 0 {
			return fmt.Errorf("invalid nonlinearity for component %d", i)
		}
	}
	return checkRanges(ranges)
}

func checkRanges(ranges [3]Range) error {
	for i, r := range ranges {
		if !(r.Min < r.Max) {
			return fmt.Errorf("invalid range [%g, %g] for component %d", r.Min, r.Max, i)
		}
	}
	return nil
}
