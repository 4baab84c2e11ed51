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

package state

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/crd"
	"seehuhn.de/go/pcl/halftone"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/palette"
	"seehuhn.de/go/pcl/rc"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newState(t *testing.T, limit int) *State {
	t.Helper()
	s, err := New(&Options{MemoryLimit: limit, Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var (
	cidRGB3         = []byte{byte(cid.RGB), byte(cid.IndexedByPlane), 3, 8, 8, 8}
	cidColorimetric = []byte{byte(cid.Colorimetric), byte(cid.IndexedByPixel), 8, 8, 8, 8}
)

func TestPowerOn(t *testing.T) {
	s := newState(t, 0)

	if d := cmp.Diff([]uint{0}, s.IDs()); d != "" {
		t.Errorf("ids (-want +got):\n%s", d)
	}
	p := s.Active().Palette.Value()
	if p.CID.Space != cid.RGB || p.EntryCount() != 2 {
		t.Errorf("default palette: %s with %d entries", p.CID.Space, p.EntryCount())
	}
	if !s.Active().Halftone.Value().AllGray() {
		t.Error("default palette not classified as gray")
	}
	if s.StackDepth() != 0 {
		t.Errorf("stack depth %d", s.StackDepth())
	}
}

func TestUnshareInPlace(t *testing.T) {
	a := rc.NewArena(0)
	pal, dict, ht := parts(t, a)
	r, err := NewObject(a, pal, dict, ht)
	if err != nil {
		t.Fatal(err)
	}
	id := r.Value().ID
	live := a.Live()

	r2, err := Unshare(r)
	if err != nil {
		t.Fatal(err)
	}
	if r2 != r {
		t.Error("unshared object was copied")
	}
	if a.Live() != live {
		t.Errorf("%d new allocations", a.Live()-live)
	}
	if r2.Value().ID == id {
		t.Error("ID not changed")
	}
	r2.Release()
	if a.Live() != 0 {
		t.Errorf("%d objects leaked", a.Live())
	}
}

func TestUnshareShared(t *testing.T) {
	a := rc.NewArena(0)
	pal, dict, ht := parts(t, a)
	r, err := NewObject(a, pal, dict, ht)
	if err != nil {
		t.Fatal(err)
	}
	other := r.Acquire()

	r2, err := Unshare(r)
	if err != nil {
		t.Fatal(err)
	}
	if r2 == other {
		t.Fatal("shared object not copied")
	}
	o1, o2 := other.Value(), r2.Value()
	if o1.ID == o2.ID {
		t.Error("copy has the same ID")
	}
	if o1.Palette != o2.Palette || o1.CRD != o2.CRD || o1.Halftone != o2.Halftone {
		t.Error("components were not shared")
	}
	if o1.Palette.Count() != 2 {
		t.Errorf("palette count = %d", o1.Palette.Count())
	}

	other.Release()
	r2.Release()
	if a.Live() != 0 {
		t.Errorf("%d objects leaked", a.Live())
	}
}

func parts(t *testing.T, a *rc.Arena) (*rc.Ref[palette.Palette], *rc.Ref[crd.Dict], *rc.Ref[halftone.Binding]) {
	t.Helper()
	pal, err := palette.New(a, cid.Default())
	if err != nil {
		t.Fatal(err)
	}
	dict, err := crd.New(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	ht, err := halftone.New(a)
	if err != nil {
		t.Fatal(err)
	}
	return pal, dict, ht
}

func TestPushPop(t *testing.T) {
	s := newState(t, 0)
	if err := s.ConfigureImageData(cidRGB3); err != nil {
		t.Fatal(err)
	}
	id := s.Active().ID

	if err := s.PushPop(Push); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEntry(1, [3]float64{0, 0, 255}); err != nil {
		t.Fatal(err)
	}
	if got := s.Active().Palette.Value().Entry(1); got != [3]byte{0, 0, 255} {
		t.Errorf("entry 1 = %v", got)
	}
	if s.Active().ID == id {
		t.Error("ID not changed by modification")
	}

	if err := s.PushPop(Pop); err != nil {
		t.Fatal(err)
	}
	if s.Active().ID != id {
		t.Error("pop did not restore the object")
	}
	if got := s.Active().Palette.Value().Entry(1); got != [3]byte{255, 0, 0} {
		t.Errorf("entry 1 after pop = %v", got)
	}

	// popping an empty stack is ignored
	if err := s.PushPop(Pop); err != nil {
		t.Fatal(err)
	}
	if s.Active().ID != id {
		t.Error("pop from empty stack changed the state")
	}
}

func TestSharedPaletteUntouched(t *testing.T) {
	s := newState(t, 0)
	if err := s.PushPop(Push); err != nil {
		t.Fatal(err)
	}
	pushed := s.stack[0].Value()
	before := pushed.Palette.Value().Entry(0)

	if err := s.SetEntry(0, [3]float64{0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if got := pushed.Palette.Value().Entry(0); got != before {
		t.Errorf("pushed palette changed: %v", got)
	}
	if pushed.Palette == s.Active().Palette {
		t.Error("palette still shared after modification")
	}
	if pushed.CRD != s.Active().CRD {
		t.Error("unmodified rendering dictionary was copied")
	}
}

// An empty lookup table download clears the device tables and
// the tables of the base color space at once.
func TestClearLookupTables(t *testing.T) {
	s := newState(t, 0)

	if err := s.DownloadLookupTable(lookup.Identity(lookup.RGB).Encode()); err != nil {
		t.Fatal(err)
	}
	if s.Active().Halftone.Value().LookupTable(lookup.RGB) == nil {
		t.Fatal("device table not installed")
	}

	if err := s.ConfigureImageData(cidColorimetric); err != nil {
		t.Fatal(err)
	}
	if err := s.DownloadLookupTable(lookup.Identity(lookup.Colorimetric).Encode()); err != nil {
		t.Fatal(err)
	}
	if !s.Active().Palette.Value().Space.Value().HasLookupTables() {
		t.Fatal("color space table not installed")
	}
	if s.Active().Halftone.Value().LookupTable(lookup.RGB) == nil {
		t.Fatal("device table lost")
	}

	if err := s.DownloadLookupTable(nil); err != nil {
		t.Fatal(err)
	}
	if s.Active().Palette.Value().Space.Value().HasLookupTables() {
		t.Error("color space tables not cleared")
	}
	if s.Active().Halftone.Value().LookupTable(lookup.RGB) != nil {
		t.Error("device tables not cleared")
	}

	if err := s.DownloadLookupTable(make([]byte, 10)); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestStore(t *testing.T) {
	s := newState(t, 0)

	// copy the selected palette to ID 5
	if err := s.SetControlID(5); err != nil {
		t.Fatal(err)
	}
	if err := s.Control(CopySelected); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint{0, 5}, s.IDs()); d != "" {
		t.Errorf("ids (-want +got):\n%s", d)
	}
	if s.Lookup(5) != s.Lookup(0) {
		t.Error("copy is not shared")
	}

	// modifying palette 5 leaves palette 0 alone
	if err := s.SelectID(5); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEntry(0, [3]float64{255, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if s.Lookup(0).Palette.Value().Entry(0) != [3]byte{255, 255, 255} {
		t.Error("palette 0 changed")
	}

	// unknown IDs cannot be selected
	if err := s.SelectID(7); err != nil {
		t.Fatal(err)
	}
	if s.Selected() != 5 {
		t.Errorf("selected = %d", s.Selected())
	}

	// deleting the selected palette installs a default palette
	if err := s.Control(DeleteOne); err != nil {
		t.Fatal(err)
	}
	if s.Lookup(5) == nil {
		t.Fatal("selected palette missing")
	}
	if s.Active().Palette.Value().Entry(0) != [3]byte{255, 255, 255} {
		t.Error("no default palette installed")
	}

	// clear the store
	if err := s.SetControlID(9); err != nil {
		t.Fatal(err)
	}
	if err := s.Control(CopySelected); err != nil {
		t.Fatal(err)
	}
	if err := s.Control(ClearStore); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint{5}, s.IDs()); d != "" {
		t.Errorf("ids (-want +got):\n%s", d)
	}

	// clear the stack
	for range 3 {
		if err := s.PushPop(Push); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Control(ClearStack); err != nil {
		t.Fatal(err)
	}
	if s.StackDepth() != 0 {
		t.Errorf("stack depth %d", s.StackDepth())
	}

	// unknown actions are ignored
	if err := s.Control(4); err != nil {
		t.Error(err)
	}
}

func TestValidateBeforeCommit(t *testing.T) {
	s := newState(t, 0)
	id := s.Active().ID

	for _, data := range [][]byte{
		nil,
		{9, 0, 1, 8, 8, 8},
		{0, 0, 1, 8, 8, 8, 0},
		{0, 0, 9, 8, 8, 8},
		{0, 2, 1, 8, 8, 8},
	} {
		if err := s.ConfigureImageData(data); !pcl.IsRange(err) {
			t.Errorf("%v: expected range error, got %v", data, err)
		}
	}
	if err := s.SetEntry(2, [3]float64{}); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
	if err := s.SetEntryCount(0); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
	if err := s.SetNormalization([3]float64{1, 1, 1}, [3]float64{1, 0, 0}); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
	if err := s.SetViewIlluminant([]byte{1, 2, 3}); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
	if err := s.DownloadDither([]byte{0, 2}); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
	if err := s.SetPenWidth(-1, 1); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}
	if err := s.SimpleColor(2); !pcl.IsRange(err) {
		t.Errorf("expected range error, got %v", err)
	}

	// ignored values
	if err := s.SetGamma(-1); err != nil {
		t.Error(err)
	}
	if err := s.SetGamma(40000); err != nil {
		t.Error(err)
	}
	if err := s.SetRenderMethod(99); err != nil {
		t.Error(err)
	}

	if s.Active().ID != id {
		t.Error("failed commands modified the palette object")
	}
}

func TestSimpleColor(t *testing.T) {
	s := newState(t, 0)
	if err := s.SimpleColor(3); err != nil {
		t.Fatal(err)
	}
	id := s.Active().ID

	if err := s.SetEntry(0, [3]float64{1, 2, 3}); !pcl.IsAccess(err) {
		t.Errorf("expected access error, got %v", err)
	}
	err := s.SetNormalization([3]float64{100, 100, 100}, [3]float64{0, 0, 0})
	if err != nil {
		t.Error(err)
	}
	if s.Active().ID != id {
		t.Error("fixed palette was modified")
	}
	if n := s.Active().Palette.Value().Normalization(0); n.InvRange != 1 {
		t.Errorf("normalization changed: %v", n)
	}
}

func TestHalftoneCommands(t *testing.T) {
	s := newState(t, 0)

	if err := s.SetGamma(2); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRenderMethod(int(halftone.UserOrderedDither)); err != nil {
		t.Fatal(err)
	}
	hb := s.Active().Halftone.Value()
	if hb.EffectiveMethod() != halftone.ClusterOrderedDither {
		t.Errorf("method = %s", hb.EffectiveMethod())
	}
	if err := s.DownloadDither([]byte{0, 1, 0, 1, 0, 1, 7}); err != nil {
		t.Fatal(err)
	}
	hb = s.Active().Halftone.Value()
	if hb.EffectiveMethod() != halftone.UserOrderedDither {
		t.Errorf("method = %s", hb.EffectiveMethod())
	}
	if hb.Gamma != [3]float64{2, 2, 2} {
		t.Errorf("gamma = %v", hb.Gamma)
	}
}

func TestViewIlluminant(t *testing.T) {
	s := newState(t, 0)
	if err := s.PushPop(Push); err != nil {
		t.Fatal(err)
	}
	data := crd.EncodeIlluminant(cid.Chroma{X: 0.3457, Y: 0.3585})
	if err := s.SetViewIlluminant(data); err != nil {
		t.Fatal(err)
	}
	if s.Active().CRD.Value().Default {
		t.Error("illuminant not changed")
	}
	if !s.stack[0].Value().CRD.Value().Default {
		t.Error("pushed dictionary changed")
	}
}

func TestPenWidth(t *testing.T) {
	s := newState(t, 0)
	if err := s.SetPenWidth(3, 1.5); err != nil {
		t.Fatal(err)
	}
	w, err := s.Active().Palette.Value().PenWidth(3)
	if err != nil || w != 1.5 {
		t.Errorf("width = %g, %v", w, err)
	}
}

func TestEntryCountGray(t *testing.T) {
	s := newState(t, 0)
	if err := s.ConfigureImageData(cidRGB3); err != nil {
		t.Fatal(err)
	}
	if s.Active().Halftone.Value().AllGray() {
		t.Fatal("color palette classified as gray")
	}
	if err := s.SetEntryCount(1); err != nil {
		t.Fatal(err)
	}
	if !s.Active().Halftone.Value().AllGray() {
		t.Error("black palette not classified as gray")
	}
}

func TestRender(t *testing.T) {
	s := newState(t, 0)
	if err := s.ConfigureImageData(cidRGB3); err != nil {
		t.Fatal(err)
	}

	v1 := s.Render()
	defer v1.Release()
	if err := s.SetEntry(1, [3]float64{0, 255, 0}); err != nil {
		t.Fatal(err)
	}
	v2 := s.Render()
	defer v2.Release()

	if v1.ID == v2.ID {
		t.Error("views share an ID")
	}
	if d := cmp.Diff([]float64{1, 0, 0}, v1.Color(1)); d != "" {
		t.Errorf("old view (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{0, 1, 0}, v2.Color(1)); d != "" {
		t.Errorf("new view (-want +got):\n%s", d)
	}
}

func TestMemoryLimit(t *testing.T) {
	probe := newState(t, 0)
	used := probe.Arena().Used()

	// enough memory for a second palette object, but not for a palette
	s := newState(t, used+objectSize)
	if err := s.PushPop(Push); err != nil {
		t.Fatal(err)
	}
	before := s.Active().Palette.Value().Entry(0)
	if err := s.SetEntry(0, [3]float64{1, 2, 3}); !pcl.IsMemory(err) {
		t.Fatalf("expected memory error, got %v", err)
	}
	if got := s.Active().Palette.Value().Entry(0); got != before {
		t.Errorf("entry changed to %v", got)
	}
	if s.Active().Palette != s.stack[0].Value().Palette {
		t.Error("palette replaced after failed command")
	}
}

func TestResetClose(t *testing.T) {
	s, err := New(&Options{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ConfigureImageData(cidRGB3); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if err := s.PushPop(Push); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SetControlID(3); err != nil {
		t.Fatal(err)
	}
	if err := s.Control(CopySelected); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint{0}, s.IDs()); d != "" {
		t.Errorf("ids (-want +got):\n%s", d)
	}
	if s.StackDepth() != 0 || s.ControlID() != 0 {
		t.Error("stack or control ID not reset")
	}
	if n := s.Active().Palette.Value().EntryCount(); n != 2 {
		t.Errorf("%d entries after reset", n)
	}

	a := s.Arena()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if a.Live() != 0 || a.Used() != 0 {
		t.Errorf("%d objects (%d bytes) leaked", a.Live(), a.Used())
	}
}
