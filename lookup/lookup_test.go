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

package lookup

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pcl"
)

func ramp(space Space) *Table {
	t := &Table{Space: space}
	for c := range 3 {
		for i := range 256 {
			t.Data[c][i] = byte((i*i/255 + c*7) % 256)
		}
	}
	return t
}

func TestConvertInvolution(t *testing.T) {
	orig := ramp(CMY)
	rgb := orig.Convert(RGB)
	if rgb.Space != RGB {
		t.Errorf("space = %v, want RGB", rgb.Space)
	}
	for c := range 3 {
		for i := range 256 {
			if rgb.Data[c][i] != 255-orig.Data[c][255-i] {
				t.Fatalf("rgb[%d][%d] = %d", c, i, rgb.Data[c][i])
			}
		}
	}
	back := rgb.Convert(CMY)
	if d := cmp.Diff(orig, back); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestConvertOtherSpaces(t *testing.T) {
	orig := ramp(Lab)
	conv := orig.Convert(Colorimetric)
	if conv.Data != orig.Data {
		t.Error("data changed")
	}
	if conv.Space != Colorimetric {
		t.Errorf("space = %v", conv.Space)
	}
}

func TestDecode(t *testing.T) {
	orig := ramp(Lab)
	got, err := Decode(orig.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(orig, got); d != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", d)
	}

	tbl, err := Decode(nil)
	if tbl != nil || err != nil {
		t.Errorf("empty payload: got %v, %v", tbl, err)
	}

	for _, bad := range [][]byte{
		make([]byte, 769),
		make([]byte, 771),
		append([]byte{9}, make([]byte, PayloadSize-1)...),
	} {
		if _, err := Decode(bad); !pcl.IsRange(err) {
			t.Errorf("len %d: expected range error, got %v", len(bad), err)
		}
	}
}

func TestApply(t *testing.T) {
	id := Identity(RGB)
	if !id.IsIdentity() {
		t.Fatal("identity table is not identity")
	}
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		got := id.Apply(1, v)
		if d := got - v; d > 0.5/255 || d < -0.5/255 {
			t.Errorf("Apply(%g) = %g", v, got)
		}
	}
	var none *Table
	if none.Apply(0, 0.3) != 0.3 {
		t.Error("nil table must be the identity")
	}

	inv := Identity(RGB).Convert(CMY)
	if got := inv.Apply(0, 0); got != 0 {
		t.Errorf("inverted identity at 0 = %g", got)
	}
}
