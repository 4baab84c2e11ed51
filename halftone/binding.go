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

package halftone

import (
	"math"

	"seehuhn.de/go/pcl/internal/colconv"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/rc"
)

// Charge against the arena memory budget.
const bindingSize = 128

// MaxGamma is the largest accepted gamma value.
const MaxGamma = 32767

// Binding is the halftone state of a palette.
type Binding struct {
	Method Method

	// Gamma is the gamma correction for each color component.  The value 1
	// means no correction.
	Gamma [3]float64

	// tables holds the device lookup tables, indexed by [lookup.RGB] and
	// [lookup.CMY].
	tables [2]*rc.Ref[lookup.Table]

	// User is the downloaded dither pattern, if any.
	User *rc.Ref[DitherPattern]

	allGray   bool
	grayValid bool
}

// New allocates a binding with the default render method and no gamma
// correction.
func New(a *rc.Arena) (*rc.Ref[Binding], error) {
	b := &Binding{
		Method: DefaultMethod,
		Gamma:  [3]float64{1, 1, 1},
	}
	return rc.New(a, b, bindingSize, (*Binding).release)
}

// Clone returns a copy of b which shares the lookup tables and the dither
// pattern of b.
func (b *Binding) Clone() *Binding {
	res := *b
	for _, t := range res.tables {
		t.Acquire()
	}
	res.User.Acquire()
	return &res
}

func (b *Binding) release() {
	b.ClearLookupTables()
	b.User.Release()
	b.User = nil
}

// Unshare returns a reference to a copy of the binding which can be
// modified without affecting other owners.
func Unshare(r *rc.Ref[Binding]) (*rc.Ref[Binding], error) {
	return r.Unshare((*Binding).Clone)
}

// SetMethod selects a render method.  Unknown methods are ignored and the
// method reports whether the selection took effect.
func (b *Binding) SetMethod(m Method) bool {
	if !m.IsValid() {
		return false
	}
	b.Method = m
	return true
}

// SetGamma sets the gamma correction for all color components.  Values
// outside [0, MaxGamma] are ignored; a value of 0 disables gamma
// correction.  The method reports whether the value was used.
func (b *Binding) SetGamma(g float64) bool {
	if math.IsNaN(g) || g < 0 || g > MaxGamma {
		return false
	}
	if g == 0 {
		g = 1
	}
	b.Gamma = [3]float64{g, g, g}
	return true
}

// SetLookupTable binds a device lookup table.  Only tables for device RGB
// and device CMY are accepted; the method reports whether t was used.
// The binding takes its own reference to t.
func (b *Binding) SetLookupTable(t *rc.Ref[lookup.Table]) bool {
	if t == nil {
		return false
	}
	space := t.Value().Space
	if space != lookup.RGB && space != lookup.CMY {
		return false
	}
	rc.Assign(&b.tables[space], t)
	return true
}

// ClearLookupTables removes all device lookup tables.
func (b *Binding) ClearLookupTables() {
	for i, t := range b.tables {
		t.Release()
		b.tables[i] = nil
	}
}

// LookupTable returns the table to use for data in the given device color
// space.  If only a table for the other device space was downloaded, a
// converted copy of that table is returned.  If no table is bound, the
// result is nil.
func (b *Binding) LookupTable(space lookup.Space) *lookup.Table {
	if space != lookup.RGB && space != lookup.CMY {
		return nil
	}
	if t := b.tables[space].Value(); t != nil {
		return t
	}
	other := lookup.CMY
	if space == lookup.CMY {
		other = lookup.RGB
	}
	if t := b.tables[other].Value(); t != nil {
		return t.Convert(space)
	}
	return nil
}

// SetDitherPattern binds a downloaded dither pattern.  The binding takes
// its own reference to p.
func (b *Binding) SetDitherPattern(p *rc.Ref[DitherPattern]) {
	rc.Assign(&b.User, p)
}

// Transfer applies the lookup table for space and the gamma correction to
// the RGB component value v ∈ [0, 1].
func (b *Binding) Transfer(space lookup.Space, c int, v float64) float64 {
	return b.ApplyGamma(c, b.LookupTable(space).Apply(c, v))
}

// ApplyGamma applies the gamma correction of component c to v ∈ [0, 1].
func (b *Binding) ApplyGamma(c int, v float64) float64 {
	if g := b.Gamma[c]; g != 1 {
		v = math.Pow(colconv.Clamp(v, 0, 1), 1/g)
	}
	return v
}

// UpdateGray recomputes the cached classification of the palette
// entries.  The argument holds three bytes per palette entry.
func (b *Binding) UpdateGray(entries []byte) {
	gray := true
	for i := 0; i+2 < len(entries); i += 3 {
		if entries[i] != entries[i+1] || entries[i] != entries[i+2] {
			gray = false
			break
		}
	}
	b.allGray = gray
	b.grayValid = true
}

// AllGray reports whether the palette entries were all gray at the last
// call to [Binding.UpdateGray].
func (b *Binding) AllGray() bool {
	return b.grayValid && b.allGray
}

// EffectiveMethod returns the method the rasterizer should use.  The user
// defined dither methods fall back to their built-in counterparts if no
// pattern has been downloaded.
func (b *Binding) EffectiveMethod() Method {
	m := b.Method
	if m.NeedsUserPattern() && b.User == nil {
		if m.Monochrome() {
			return MonoClusterOrderedDither
		}
		return ClusterOrderedDither
	}
	return m
}

// Mapping returns the color mapping strategy for the current method and
// palette.  Monochrome methods and all-gray palettes are mapped to gray.
func (b *Binding) Mapping() Mapping {
	if b.Method.Monochrome() || b.AllGray() {
		return MapGray
	}
	return MapColor
}
