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

// Package render exposes the resolved color state to the rasterizer.
//
// A [View] is a snapshot of the active palette object.  It holds its own
// references to the palette, the rendering dictionary and the halftone
// binding, so that later palette commands do not affect a page which is
// still being rendered.
package render

import (
	"seehuhn.de/go/pcl/colorspace"
	"seehuhn.de/go/pcl/crd"
	"seehuhn.de/go/pcl/halftone"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/palette"
	"seehuhn.de/go/pcl/rc"
)

// cacheSize is the number of resolved colors kept per view.
const cacheSize = 64

// View is the outbound color state for one render request.
type View struct {
	// ID is the change identifier of the palette object the view was
	// taken from.
	ID uint64

	// Mapping is the color mapping strategy the rasterizer must use.
	Mapping halftone.Mapping

	// Method is the effective render method.
	Method halftone.Method

	pal   *rc.Ref[palette.Palette]
	dict  *rc.Ref[crd.Dict]
	ht    *rc.Ref[halftone.Binding]
	cache *lruCache[[3]byte, []float64]
}

// New takes a snapshot of the given palette object components.  The view
// acquires its own reference to each of them.
func New(id uint64, pal *rc.Ref[palette.Palette], dict *rc.Ref[crd.Dict], ht *rc.Ref[halftone.Binding]) *View {
	hb := ht.Value()
	return &View{
		ID:      id,
		Mapping: hb.Mapping(),
		Method:  hb.EffectiveMethod(),
		pal:     pal.Acquire(),
		dict:    dict.Acquire(),
		ht:      ht.Acquire(),
		cache:   newCache[[3]byte, []float64](cacheSize),
	}
}

// Release drops the references held by the view.
func (v *View) Release() {
	v.pal.Release()
	v.dict.Release()
	v.ht.Release()
	v.pal, v.dict, v.ht = nil, nil, nil
}

// Palette returns the palette of the view.
func (v *View) Palette() *palette.Palette {
	return v.pal.Value()
}

// Space returns the base color space of the palette.
func (v *View) Space() *colorspace.Space {
	return v.pal.Value().Space.Value()
}

// CRD returns the rendering dictionary.
func (v *View) CRD() *crd.Dict {
	return v.dict.Value()
}

// Halftone returns the halftone binding.
func (v *View) Halftone() *halftone.Binding {
	return v.ht.Value()
}

// Entries returns the palette buffer, three bytes per entry.
func (v *View) Entries() []byte {
	return v.pal.Value().Entries()
}

// Decode returns the decode array for direct image data.
func (v *View) Decode() [6]float64 {
	return v.pal.Value().Decode()
}

// Remap returns the white-index remap for indexed data with the given
// number of bits per index, or nil if no remap is needed.
func (v *View) Remap(bitsPerIndex int, forPattern bool) *palette.Remap {
	return palette.BuildRemap(v.pal.Value(), bitsPerIndex, forPattern)
}

// Color resolves a palette index to device color values.  Indices beyond
// the live entry count wrap around.  The returned slice must not be
// modified by the caller.
func (v *View) Color(index int) []float64 {
	p := v.pal.Value()
	n := p.EntryCount()
	index %= n
	if index < 0 {
		index += n
	}
	return v.Resolve(p.Entry(index))
}

// Resolve converts the stored bytes of a palette entry to device color
// values.
func (v *View) Resolve(entry [3]byte) []float64 {
	if res, ok := v.cache.Get(entry); ok {
		return res
	}

	p := v.pal.Value()
	hb := v.ht.Value()
	var c [3]float64
	for k := range 3 {
		c[k] = float64(entry[k]) / 255
	}

	var rgb [3]float64
	if p.IsDeviceSpecific() {
		// Entries are stored as RGB intensities; CMY tables are converted
		// by the binding.
		for k := range 3 {
			rgb[k] = hb.Transfer(lookup.RGB, k, c[k])
		}
	} else {
		space := p.Space.Value()
		rgb = v.dict.Value().ToRGB(space.Decode(c), space.White)
		for k := range 3 {
			rgb[k] = hb.ApplyGamma(k, rgb[k])
		}
	}
	r, g, b := v.Mapping.Map(rgb[0], rgb[1], rgb[2])

	res := v.dict.Value().ToDevice([3]float64{r, g, b})
	v.cache.Put(entry, res)
	return res
}
