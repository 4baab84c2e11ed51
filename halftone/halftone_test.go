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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/rc"
)

func TestMethods(t *testing.T) {
	for m := Method(0); m < numMethods; m++ {
		c := m.Color()
		if c.Monochrome() {
			t.Errorf("%s: color counterpart %s is monochrome", m, c)
		}
		if !m.Monochrome() && c != m {
			t.Errorf("%s: color method changed to %s", m, c)
		}
	}
	if MonoContoneBasic.Color() != ContoneBasic {
		t.Error("wrong counterpart for MonoContoneBasic")
	}
	if Method(19).IsValid() {
		t.Error("method 19 is valid")
	}
}

func TestGamma(t *testing.T) {
	a := rc.NewArena(0)
	r, err := New(a)
	if err != nil {
		t.Fatal(err)
	}
	b := r.Value()

	if !b.SetGamma(2) || b.Gamma != [3]float64{2, 2, 2} {
		t.Errorf("gamma = %v", b.Gamma)
	}
	for _, bad := range []float64{-1, 32768, math.NaN()} {
		if b.SetGamma(bad) {
			t.Errorf("gamma %g accepted", bad)
		}
	}
	if b.Gamma != [3]float64{2, 2, 2} {
		t.Error("ignored gamma changed the binding")
	}
	b.SetGamma(0)
	if b.Gamma != [3]float64{1, 1, 1} {
		t.Error("gamma 0 did not disable correction")
	}
	b.SetGamma(MaxGamma)
	if b.Gamma[0] != MaxGamma {
		t.Error("maximum gamma rejected")
	}
}

func TestLookupTables(t *testing.T) {
	a := rc.NewArena(0)
	r, _ := New(a)
	b := r.Value()

	cmyTbl := lookup.Identity(lookup.CMY)
	cmyTbl.Data[1][0] = 17
	cmy, _ := rc.New(a, cmyTbl, lookup.PayloadSize, nil)

	if !b.SetLookupTable(cmy) {
		t.Fatal("CMY table rejected")
	}
	lab, _ := rc.New(a, lookup.Identity(lookup.Lab), lookup.PayloadSize, nil)
	if b.SetLookupTable(lab) {
		t.Error("Lab table accepted")
	}

	if got := b.LookupTable(lookup.CMY); got != cmyTbl {
		t.Error("CMY table not returned")
	}
	rgb := b.LookupTable(lookup.RGB)
	if d := cmp.Diff(cmyTbl.Convert(lookup.RGB), rgb); d != "" {
		t.Errorf("converted table mismatch:\n%s", d)
	}

	r.Acquire()
	r2, err := Unshare(r)
	if err != nil {
		t.Fatal(err)
	}
	if cmy.Count() != 3 {
		t.Errorf("table count = %d, want 3", cmy.Count())
	}
	r2.Value().ClearLookupTables()
	if r2.Value().LookupTable(lookup.CMY) != nil {
		t.Error("tables not cleared")
	}
	if r.Value().LookupTable(lookup.CMY) == nil {
		t.Error("clearing the copy affected the original")
	}
}

func TestMapping(t *testing.T) {
	a := rc.NewArena(0)
	r, _ := New(a)
	b := r.Value()

	b.UpdateGray([]byte{0, 0, 0, 255, 255, 255})
	if !b.AllGray() || b.Mapping() != MapGray {
		t.Error("gray palette not detected")
	}
	b.UpdateGray([]byte{0, 0, 0, 255, 0, 0})
	if b.AllGray() || b.Mapping() != MapColor {
		t.Error("color palette classified as gray")
	}
	b.SetMethod(MonoErrorDiffusion)
	if b.Mapping() != MapGray {
		t.Error("monochrome method not mapped to gray")
	}

	y, y2, y3 := MapGray.Map(1, 0, 0)
	if y != y2 || y != y3 || math.Abs(y-0.2126) > 1e-12 {
		t.Errorf("gray mapping of red = %g %g %g", y, y2, y3)
	}
	if r, g, bb := MapColor.Map(0.1, 0.2, 0.3); r != 0.1 || g != 0.2 || bb != 0.3 {
		t.Error("color mapping changed the color")
	}

	if b.SetMethod(40) {
		t.Error("invalid method accepted")
	}
	b.SetMethod(UserOrderedDither)
	if b.EffectiveMethod() != ClusterOrderedDither {
		t.Error("user dither without pattern")
	}
}

func TestDecodeDither(t *testing.T) {
	data := []byte{0, 1, 0, 2, 0, 3, 1, 2, 3, 4, 5, 6}
	p, err := DecodeDither(data)
	if err != nil {
		t.Fatal(err)
	}
	want := &DitherPattern{Planes: []DitherPlane{{Width: 3, Height: 2, Data: []byte{1, 2, 3, 4, 5, 6}}}}
	if d := cmp.Diff(want, p); d != "" {
		t.Errorf("unexpected pattern (-want +got):\n%s", d)
	}
	if p.Threshold(2, 4, 3) != 5 || p.Threshold(0, -1, 0) != 3 {
		t.Error("wrong threshold values")
	}

	for _, bad := range [][]byte{
		{},
		{1, 1, 0, 1, 0, 1, 0},
		{0, 2, 0, 1, 0, 1, 0},
		{0, 1, 0, 2, 0, 2, 1, 2, 3},
		{0, 1, 0, 1, 0, 1, 9, 9},
		{0, 1, 0, 0, 0, 1},
	} {
		if _, err := DecodeDither(bad); !pcl.IsRange(err) {
			t.Errorf("%v: expected range error, got %v", bad, err)
		}
	}
}

func TestNewDither(t *testing.T) {
	a := rc.NewArena(0)
	r, err := NewDither(a, []byte{0, 1, 0, 1, 0, 1, 128})
	if err != nil {
		t.Fatal(err)
	}
	if r.Value().Threshold(0, 5, 7) != 128 {
		t.Error("wrong threshold value")
	}
	r.Release()
	if a.Used() != 0 {
		t.Errorf("%d bytes still in use", a.Used())
	}

	small := rc.NewArena(16)
	if _, err := NewDither(small, []byte{0, 1, 0, 1, 0, 1, 128}); !pcl.IsMemory(err) {
		t.Errorf("expected memory error, got %v", err)
	}
}
