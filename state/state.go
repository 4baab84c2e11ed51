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

// Package state holds the palette state of one interpreter instance.
//
// The state consists of a store which maps palette IDs to palette objects,
// the currently selected palette ID, the palette control ID and the palette
// stack.  All palette commands operate on the object stored under the
// selected ID.  Every command validates its arguments before the state is
// modified; if a command fails, the previously installed palette remains
// valid.
package state

import (
	"log/slog"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/crd"
	"seehuhn.de/go/pcl/halftone"
	"seehuhn.de/go/pcl/palette"
	"seehuhn.de/go/pcl/rc"
	"seehuhn.de/go/pcl/render"
)

// Options configures a [State].
type Options struct {
	// MemoryLimit bounds the memory used by palette objects.  Zero means
	// no limit.
	MemoryLimit int

	// Profile is an ICC profile describing the output device.  If nil,
	// sRGB is used.
	Profile []byte

	// Logger receives state transitions and ignored commands. If nil, a
	// no-op logger is used.
	Logger *slog.Logger
}

// State is the palette state of an interpreter.
type State struct {
	arena   *rc.Arena
	logger  *slog.Logger
	profile []byte

	store    map[uint]*rc.Ref[Object]
	stack    []*rc.Ref[Object]
	selected uint
	control  uint
}

// New creates the power-on palette state: palette ID 0 is selected and
// holds the default palette.
func New(opt *Options) (*State, error) {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &State{
		arena:   rc.NewArena(opt.MemoryLimit),
		logger:  logger,
		profile: opt.Profile,
		store:   make(map[uint]*rc.Ref[Object]),
	}
	obj, err := s.newDefaultObject()
	if err != nil {
		s.arena.Teardown()
		return nil, err
	}
	s.store[0] = obj
	return s, nil
}

func (s *State) newDefaultObject() (*rc.Ref[Object], error) {
	pal, err := palette.New(s.arena, cid.Default())
	if err != nil {
		return nil, err
	}
	dict, err := crd.New(s.arena, s.profile)
	if err != nil {
		pal.Release()
		return nil, err
	}
	ht, err := halftone.New(s.arena)
	if err != nil {
		pal.Release()
		dict.Release()
		return nil, err
	}
	ht.Value().UpdateGray(pal.Value().Entries())
	obj, err := NewObject(s.arena, pal, dict, ht)
	if err != nil {
		pal.Release()
		dict.Release()
		ht.Release()
		return nil, err
	}
	return obj, nil
}

// Arena returns the allocation arena of the state.
func (s *State) Arena() *rc.Arena {
	return s.arena
}

// Active returns the palette object stored under the selected ID.
// The object must not be modified by the caller.
func (s *State) Active() *Object {
	return s.store[s.selected].Value()
}

// Selected returns the selected palette ID.
func (s *State) Selected() uint {
	return s.selected
}

// ControlID returns the palette control ID.
func (s *State) ControlID() uint {
	return s.control
}

// IDs returns the palette IDs in the store, in increasing order.
func (s *State) IDs() []uint {
	ids := maps.Keys(s.store)
	slices.Sort(ids)
	return ids
}

// Lookup returns the palette object stored under id, or nil.
func (s *State) Lookup(id uint) *Object {
	return s.store[id].Value()
}

// StackDepth returns the number of objects on the palette stack.
func (s *State) StackDepth() int {
	return len(s.stack)
}

// Render returns a view of the active palette object for the rasterizer.
// The caller must release the view when rendering is done.
func (s *State) Render() *render.View {
	obj := s.Active()
	return render.New(obj.ID, obj.Palette, obj.CRD, obj.Halftone)
}

// unshare prepares the active palette object for modification.
func (s *State) unshare() (*Object, error) {
	r, err := Unshare(s.store[s.selected])
	if err != nil {
		return nil, err
	}
	s.store[s.selected] = r
	return r.Value(), nil
}

// install replaces the palette of the active object.  The object takes
// over the reference pal.
func (s *State) install(pal *rc.Ref[palette.Palette]) error {
	obj, err := s.unshare()
	if err != nil {
		pal.Release()
		return err
	}
	obj.Palette.Release()
	obj.Palette = pal
	return s.refreshGray(obj)
}

// refreshGray updates the gray classification cached in the halftone
// binding of obj.
func (s *State) refreshGray(obj *Object) error {
	gray := obj.Palette.Value().IsGray()
	if obj.Halftone.Value().AllGray() == gray {
		return nil
	}
	hb, err := obj.unshareHalftone()
	if err != nil {
		return err
	}
	hb.UpdateGray(obj.Palette.Value().Entries())
	return nil
}

// Reset returns the state to its power-on configuration.
func (s *State) Reset() error {
	s.releaseAll()
	s.selected = 0
	s.control = 0
	obj, err := s.newDefaultObject()
	if err != nil {
		return err
	}
	s.store[0] = obj
	s.logger.Debug("palette state reset")
	return nil
}

// Close releases all palette objects.  The state must not be used after
// Close has been called.
func (s *State) Close() error {
	s.releaseAll()
	s.arena.Teardown()
	return nil
}

func (s *State) releaseAll() {
	for id, r := range s.store {
		r.Release()
		delete(s.store, id)
	}
	s.clearStack()
}

func (s *State) clearStack() {
	for _, r := range s.stack {
		r.Release()
	}
	s.stack = nil
}
