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

// Package palette implements indexed color palettes.
//
// A palette combines a base color space with a fixed table of up to 256
// color entries.  Entries are stored as three bytes each.  For device RGB
// and CMY, the bytes are device RGB intensities after black and white
// normalization; for device independent color spaces, they are component
// values normalized to the declared range of the color space.
package palette

import (
	"math"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/colorspace"
	"seehuhn.de/go/pcl/halftone"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/rc"
)

// MaxEntries is the capacity of every palette.
const MaxEntries = 256

// DefaultPenWidth is the initial width of all pens, in millimeters.
const DefaultPenWidth = 0.35

// Charge against the arena memory budget.
const paletteSize = 3*MaxEntries + 8*MaxEntries + 256

// Norm holds the black/white normalization of one device color component.
// A component value v is mapped to the entry byte (v-Black)*InvRange.
type Norm struct {
	Black    float64
	InvRange float64
}

// Palette is an indexed color palette.
type Palette struct {
	// CID is the configuration the palette was built for.
	CID *cid.Config

	// Space is the base color space.
	Space *rc.Ref[colorspace.Space]

	// Fixed palettes are created by the simple color mode.  Their entries
	// cannot be changed.
	Fixed bool

	entries [3 * MaxEntries]byte
	n       int
	norm    [3]Norm
	decode  [6]float64
	pens    [MaxEntries]float64
}

// New builds a palette with default entries for the given (validated)
// configuration.
func New(a *rc.Arena, cfg *cid.Config) (*rc.Ref[Palette], error) {
	if err := a.Reserve("palette", paletteSize); err != nil {
		return nil, err
	}
	space, err := colorspace.Build(a, cfg)
	if err != nil {
		return nil, err
	}

	p := &Palette{
		CID:   cfg.Clone(),
		Space: space,
		n:     min(cfg.NumEntries(), MaxEntries),
	}
	refs := cfg.Device
	if refs == nil {
		refs = cid.DefaultDeviceRefs(cfg.BitsPerPrimary)
	}
	p.setNorm(refs.White, refs.Black)
	p.setDefaultEntries()
	for i := range p.pens {
		p.pens[i] = DefaultPenWidth
	}

	res, err := rc.New(a, p, paletteSize, (*Palette).release)
	if err != nil {
		space.Release()
		return nil, err
	}
	return res, nil
}

// SimpleMode is the argument of the simple color command.
type SimpleMode int

// The simple color modes.
const (
	SimpleCMY   SimpleMode = -3 // three planes, CMY palette
	SimpleBlack SimpleMode = 1  // single plane, black and white
	SimpleRGB   SimpleMode = 3  // three planes, RGB palette
)

// NewSimple builds one of the fixed palettes of the simple color mode.
func NewSimple(a *rc.Arena, mode SimpleMode) (*rc.Ref[Palette], error) {
	var cfg *cid.Config
	switch mode {
	case SimpleCMY:
		cfg = &cid.Config{Space: cid.CMY, BitsPerIndex: 3}
	case SimpleBlack:
		cfg = &cid.Config{Space: cid.CMY, BitsPerIndex: 1}
	case SimpleRGB:
		cfg = &cid.Config{Space: cid.RGB, BitsPerIndex: 3}
	default:
		return nil, pcl.Rangef("simple color", "invalid mode %d", mode)
	}
	cfg, err := cid.Validate(cfg)
	if err != nil {
		return nil, err
	}
	r, err := New(a, cfg)
	if err != nil {
		return nil, err
	}
	r.Value().Fixed = true
	return r, nil
}

// Clone returns a copy of p which shares the base color space of p.
func (p *Palette) Clone() *Palette {
	res := *p
	res.CID = p.CID.Clone()
	res.Space.Acquire()
	return &res
}

func (p *Palette) release() {
	p.Space.Release()
	p.Space = nil
}

// Unshare returns a reference to a copy of the palette which can be
// modified without affecting other owners.
func Unshare(r *rc.Ref[Palette]) (*rc.Ref[Palette], error) {
	return r.Unshare((*Palette).Clone)
}

// EntryCount returns the number of live palette entries.
func (p *Palette) EntryCount() int {
	return p.n
}

// SetEntryCount changes the number of live entries.  The entry storage is
// not reallocated; entries which become live again keep their previous
// values.
func (p *Palette) SetEntryCount(n int) error {
	if n < 1 || n > MaxEntries {
		return pcl.Rangef("palette size", "invalid number of entries %d", n)
	}
	p.n = n
	return nil
}

// Entries returns the live part of the entry buffer, three bytes per entry.
// The returned slice aliases the palette storage.
func (p *Palette) Entries() []byte {
	return p.entries[:3*p.n]
}

// Entry returns the stored bytes of entry i.
func (p *Palette) Entry(i int) [3]byte {
	return [3]byte(p.entries[3*i : 3*i+3])
}

// Color returns entry i as normalized component values in [0, 1].
func (p *Palette) Color(i int) [3]float64 {
	e := p.Entry(i)
	return [3]float64{float64(e[0]) / 255, float64(e[1]) / 255, float64(e[2]) / 255}
}

// SetEntry stores the color c at index i.  For device color spaces, the
// components are normalized using the black and white references;
// otherwise they are normalized to the declared component ranges.
func (p *Palette) SetEntry(i int, c [3]float64) error {
	if err := p.CheckEntry(i, c); err != nil {
		return err
	}
	var val [3]byte
	for k := range 3 {
		val[k] = p.normalize(k, c[k])
	}
	copy(p.entries[3*i:], val[:])
	return nil
}

// CheckEntry reports the error [Palette.SetEntry] would return, without
// modifying the palette.
func (p *Palette) CheckEntry(i int, c [3]float64) error {
	if p.Fixed {
		return &pcl.AccessError{Op: "set palette entry", Reason: "palette is fixed"}
	}
	if i < 0 || i >= p.n {
		return pcl.Rangef("set palette entry", "index %d not in [0, %d)", i, p.n)
	}
	for k := range 3 {
		if math.IsNaN(c[k]) {
			return pcl.Rangef("set palette entry", "invalid component value")
		}
	}
	return nil
}

func (p *Palette) normalize(k int, v float64) byte {
	var x float64
	if cal := p.Space.Value().Calib; cal != nil {
		x = (v - cal.Min[k]) / cal.Range[k] * 255
	} else {
		x = (v - p.norm[k].Black) * p.norm[k].InvRange
	}
	return toByte(x)
}

func toByte(x float64) byte {
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return byte(x + 0.5)
	}
}

// IsDeviceSpecific reports whether the base color space is device RGB or
// device CMY.
func (p *Palette) IsDeviceSpecific() bool {
	return p.CID.IsDeviceSpecific()
}

// SetNormalization sets the white and black references for the three
// color components.  The references only affect device color spaces.
func (p *Palette) SetNormalization(white, black [3]float64) error {
	if err := CheckNormalization(white, black); err != nil {
		return err
	}
	p.setNormFloat(white, black)
	return nil
}

// CheckNormalization verifies that white and black references can be used
// for normalization.
func CheckNormalization(white, black [3]float64) error {
	for k := range 3 {
		if white[k] == black[k] || math.IsNaN(white[k]) || math.IsNaN(black[k]) {
			return pcl.Rangef("color range", "invalid references for component %d", k)
		}
	}
	return nil
}

func (p *Palette) setNorm(white, black [3]uint16) {
	var w, b [3]float64
	for k := range 3 {
		w[k] = float64(white[k])
		b[k] = float64(black[k])
	}
	p.setNormFloat(w, b)
}

// setNormFloat computes the normalization.  For CMY, the roles of the
// references are reversed, so that entries are stored as RGB intensities.
func (p *Palette) setNormFloat(white, black [3]float64) {
	cmy := p.CID.Space == cid.CMY
	for k := range 3 {
		w, b := white[k], black[k]
		if cmy {
			w, b = b, w
		}
		p.norm[k] = Norm{Black: b, InvRange: 255 / (w - b)}
	}
	p.updateDecode()
}

// Normalization returns the black/white normalization of component k.
func (p *Palette) Normalization(k int) Norm {
	return p.norm[k]
}

// updateDecode recomputes the decode array.  For every component, the
// array holds an offset and a scale which map a raw sample value to a
// normalized value in [0, 1].
func (p *Palette) updateDecode() {
	for k := range 3 {
		if p.IsDeviceSpecific() && !p.CID.Encoding.IsIndexed() {
			scale := p.norm[k].InvRange / 255
			p.decode[2*k] = -p.norm[k].Black * scale
			p.decode[2*k+1] = scale
		} else {
			maxVal := float64(uint16(1)<<p.CID.BitsPerPrimary[k] - 1)
			p.decode[2*k] = 0
			p.decode[2*k+1] = 1 / maxVal
		}
	}
}

// Decode returns the decode array: an offset and a scale for each color
// component.
func (p *Palette) Decode() [6]float64 {
	return p.decode
}

// DecodeSample maps the raw sample value of component k to [0, 1].
func (p *Palette) DecodeSample(k int, raw uint16) float64 {
	v := p.decode[2*k] + p.decode[2*k+1]*float64(raw)
	return math.Min(math.Max(v, 0), 1)
}

// IsGray reports whether all live entries are gray.
func (p *Palette) IsGray() bool {
	e := p.Entries()
	for i := 0; i < len(e); i += 3 {
		if e[i] != e[i+1] || e[i] != e[i+2] {
			return false
		}
	}
	return true
}

// PenWidth returns the width of a pen in millimeters.
func (p *Palette) PenWidth(pen int) (float64, error) {
	if pen < 0 || pen >= MaxEntries {
		return 0, pcl.Rangef("pen width", "invalid pen %d", pen)
	}
	return p.pens[pen], nil
}

// SetPenWidth changes the width of a pen.  Pen widths are independent of
// the palette colors.
func (p *Palette) SetPenWidth(pen int, width float64) error {
	if err := CheckPenWidth(pen, width); err != nil {
		return err
	}
	p.pens[pen] = width
	return nil
}

// CheckPenWidth verifies the arguments of [Palette.SetPenWidth].
func CheckPenWidth(pen int, width float64) error {
	if pen < 0 || pen >= MaxEntries {
		return pcl.Rangef("pen width", "invalid pen %d", pen)
	}
	if !(width >= 0) || math.IsInf(width, 0) {
		return pcl.Rangef("pen width", "invalid width %g", width)
	}
	return nil
}

// UpdateLookupTable binds a downloaded lookup table.
//
// For device color spaces the table goes to the halftone binding hb; for
// device independent color spaces it is stored in the calibration data of
// the base color space.  A nil table clears all tables of both hb and the
// base color space.  The caller must ensure that p and hb are not shared.
func (p *Palette) UpdateLookupTable(t *rc.Ref[lookup.Table], hb *halftone.Binding) error {
	if t == nil {
		if p.Space.Value().HasLookupTables() {
			if err := p.unshareSpace(); err != nil {
				return err
			}
			p.Space.Value().ClearLookupTables()
		}
		hb.ClearLookupTables()
		return nil
	}

	if p.IsDeviceSpecific() {
		hb.SetLookupTable(t)
		return nil
	}
	if err := p.unshareSpace(); err != nil {
		return err
	}
	p.Space.Value().SetLookupTable(t)
	return nil
}

func (p *Palette) unshareSpace() error {
	space, err := colorspace.Unshare(p.Space)
	if err != nil {
		return err
	}
	p.Space = space
	return nil
}
