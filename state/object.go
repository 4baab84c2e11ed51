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
	"sync/atomic"

	"seehuhn.de/go/pcl/crd"
	"seehuhn.de/go/pcl/halftone"
	"seehuhn.de/go/pcl/palette"
	"seehuhn.de/go/pcl/rc"
)

const objectSize = 64

// Object is a palette object: the unit which is stored under a palette ID
// and pushed onto the palette stack.
//
// Different objects may share their components.  Components are copied
// only when an object is modified, see [Unshare].
type Object struct {
	// ID changes whenever the object is modified.  Rasterizers can use it
	// to detect changes to cached color state.
	ID uint64

	Palette  *rc.Ref[palette.Palette]
	CRD      *rc.Ref[crd.Dict]
	Halftone *rc.Ref[halftone.Binding]
}

var lastID atomic.Uint64

func newID() uint64 {
	return lastID.Add(1)
}

// NewObject allocates a palette object.  The object takes over the
// references passed in.
func NewObject(a *rc.Arena, pal *rc.Ref[palette.Palette], dict *rc.Ref[crd.Dict], ht *rc.Ref[halftone.Binding]) (*rc.Ref[Object], error) {
	obj := &Object{
		ID:       newID(),
		Palette:  pal,
		CRD:      dict,
		Halftone: ht,
	}
	return rc.New(a, obj, objectSize, (*Object).release)
}

// clone makes a shallow copy of o.  The components are shared.
func (o *Object) clone() *Object {
	return &Object{
		ID:       o.ID,
		Palette:  o.Palette.Acquire(),
		CRD:      o.CRD.Acquire(),
		Halftone: o.Halftone.Acquire(),
	}
}

func (o *Object) release() {
	o.Palette.Release()
	o.CRD.Release()
	o.Halftone.Release()
	o.Palette, o.CRD, o.Halftone = nil, nil, nil
}

// Unshare prepares a palette object for modification.
//
// If r has a single owner, the object is modified in place and no memory
// is allocated.  Otherwise a new object is allocated which shares the
// components of the original, and the caller's reference to r is
// released.  In both cases the returned object carries a fresh ID.
//
// On failure, r is left untouched and the caller keeps its reference.
func Unshare(r *rc.Ref[Object]) (*rc.Ref[Object], error) {
	res, err := r.Unshare((*Object).clone)
	if err != nil {
		return r, err
	}
	res.Value().ID = newID()
	return res, nil
}

// unsharePalette makes the palette of o exclusive to o.
func (o *Object) unsharePalette() (*palette.Palette, error) {
	r, err := palette.Unshare(o.Palette)
	if err != nil {
		return nil, err
	}
	o.Palette = r
	return r.Value(), nil
}

// unshareCRD makes the rendering dictionary of o exclusive to o.
func (o *Object) unshareCRD() (*crd.Dict, error) {
	r, err := crd.Unshare(o.CRD)
	if err != nil {
		return nil, err
	}
	o.CRD = r
	return r.Value(), nil
}

// unshareHalftone makes the halftone binding of o exclusive to o.
func (o *Object) unshareHalftone() (*halftone.Binding, error) {
	r, err := halftone.Unshare(o.Halftone)
	if err != nil {
		return nil, err
	}
	o.Halftone = r
	return r.Value(), nil
}
