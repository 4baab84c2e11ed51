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
	"math"

	"seehuhn.de/go/pcl"
	"seehuhn.de/go/pcl/cid"
	"seehuhn.de/go/pcl/crd"
	"seehuhn.de/go/pcl/halftone"
	"seehuhn.de/go/pcl/lookup"
	"seehuhn.de/go/pcl/palette"
	"seehuhn.de/go/pcl/rc"
)

// ConfigureImageData installs a new image data configuration.  The
// active object receives a new palette with default entries; its
// rendering dictionary and halftone binding are kept.
func (s *State) ConfigureImageData(data []byte) error {
	cfg, err := cid.Decode(data)
	if err != nil {
		return err
	}
	pal, err := palette.New(s.arena, cfg)
	if err != nil {
		return err
	}
	if err := s.install(pal); err != nil {
		return err
	}
	s.logger.Debug("image data configured",
		"id", s.selected,
		"space", cfg.Space,
		"encoding", cfg.Encoding,
		"bits_per_index", cfg.BitsPerIndex)
	return nil
}

// SimpleColor installs one of the fixed palettes of the simple color
// mode.
func (s *State) SimpleColor(mode int) error {
	pal, err := palette.NewSimple(s.arena, palette.SimpleMode(mode))
	if err != nil {
		return err
	}
	if err := s.install(pal); err != nil {
		return err
	}
	s.logger.Debug("simple color mode", "id", s.selected, "mode", mode)
	return nil
}

// SetEntry sets palette entry i to the color c.
func (s *State) SetEntry(i int, c [3]float64) error {
	if err := s.Active().Palette.Value().CheckEntry(i, c); err != nil {
		return err
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	p, err := obj.unsharePalette()
	if err != nil {
		return err
	}
	if err := p.SetEntry(i, c); err != nil {
		return err
	}
	return s.refreshGray(obj)
}

// SetEntryCount changes the number of live palette entries.
func (s *State) SetEntryCount(n int) error {
	if n < 1 || n > palette.MaxEntries {
		return pcl.Rangef("palette size", "invalid number of entries %d", n)
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	p, err := obj.unsharePalette()
	if err != nil {
		return err
	}
	if err := p.SetEntryCount(n); err != nil {
		return err
	}
	return s.refreshGray(obj)
}

// SetNormalization sets the white and black references used for device
// color spaces.  The fixed palettes of the simple color mode are not
// affected.
func (s *State) SetNormalization(white, black [3]float64) error {
	if err := palette.CheckNormalization(white, black); err != nil {
		return err
	}
	if s.Active().Palette.Value().Fixed {
		s.logger.Debug("color range ignored for fixed palette", "id", s.selected)
		return nil
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	p, err := obj.unsharePalette()
	if err != nil {
		return err
	}
	return p.SetNormalization(white, black)
}

// DownloadLookupTable binds a downloaded lookup table to the active
// palette object.  An empty payload removes all lookup tables, both from
// the halftone binding and from the base color space.
func (s *State) DownloadLookupTable(data []byte) error {
	t, err := lookup.Decode(data)
	if err != nil {
		return err
	}
	var tab *rc.Ref[lookup.Table]
	if t != nil {
		tab, err = rc.New(s.arena, t, lookup.PayloadSize, nil)
		if err != nil {
			return err
		}
		defer tab.Release()
	}

	p := s.Active().Palette.Value()
	needPalette := t == nil && p.Space.Value().HasLookupTables() ||
		t != nil && !p.IsDeviceSpecific()
	needHalftone := t == nil || p.IsDeviceSpecific()

	obj, err := s.unshare()
	if err != nil {
		return err
	}
	if needPalette {
		p, err = obj.unsharePalette()
		if err != nil {
			return err
		}
	}
	hb := obj.Halftone.Value()
	if needHalftone {
		hb, err = obj.unshareHalftone()
		if err != nil {
			return err
		}
	}
	if err := p.UpdateLookupTable(tab, hb); err != nil {
		return err
	}

	if t == nil {
		s.logger.Debug("lookup tables cleared", "id", s.selected)
	} else {
		s.logger.Debug("lookup table installed", "id", s.selected, "space", t.Space)
	}
	return nil
}

// SetGamma sets the gamma correction of the active palette object.
// Values outside [0, 32767] are ignored.
func (s *State) SetGamma(g float64) error {
	if math.IsNaN(g) || g < 0 || g > halftone.MaxGamma {
		s.logger.Warn("gamma value ignored", "gamma", g)
		return nil
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	hb, err := obj.unshareHalftone()
	if err != nil {
		return err
	}
	hb.SetGamma(g)
	return nil
}

// SetViewIlluminant changes the view illuminant of the rendering
// dictionary.
func (s *State) SetViewIlluminant(data []byte) error {
	c, err := crd.DecodeIlluminant(data)
	if err != nil {
		return err
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	d, err := obj.unshareCRD()
	if err != nil {
		return err
	}
	return d.SetIlluminant(c)
}

// SetRenderMethod selects the render method.  Unknown methods are
// ignored.
func (s *State) SetRenderMethod(m int) error {
	method := halftone.Method(m)
	if m < 0 || m > math.MaxUint8 || !method.IsValid() {
		s.logger.Warn("render method ignored", "method", m)
		return nil
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	hb, err := obj.unshareHalftone()
	if err != nil {
		return err
	}
	hb.SetMethod(method)
	return nil
}

// DownloadDither binds a user defined dither matrix to the active palette
// object.
func (s *State) DownloadDither(data []byte) error {
	pat, err := halftone.NewDither(s.arena, data)
	if err != nil {
		return err
	}
	defer pat.Release()

	obj, err := s.unshare()
	if err != nil {
		return err
	}
	hb, err := obj.unshareHalftone()
	if err != nil {
		return err
	}
	hb.SetDitherPattern(pat)
	return nil
}

// SetPenWidth sets the width of an HP-GL/2 pen.
func (s *State) SetPenWidth(pen int, width float64) error {
	if err := palette.CheckPenWidth(pen, width); err != nil {
		return err
	}
	obj, err := s.unshare()
	if err != nil {
		return err
	}
	p, err := obj.unsharePalette()
	if err != nil {
		return err
	}
	return p.SetPenWidth(pen, width)
}

// The operations of [State.PushPop].
const (
	Push = 0
	Pop  = 1
)

// PushPop pushes the active palette object onto the palette stack, or
// pops the top of the stack into the selected palette ID.  Popping an
// empty stack is ignored.
func (s *State) PushPop(op int) error {
	switch op {
	case Push:
		s.stack = append(s.stack, s.store[s.selected].Acquire())
	case Pop:
		n := len(s.stack)
		if n == 0 {
			s.logger.Warn("pop from empty palette stack")
			return nil
		}
		top := s.stack[n-1]
		s.stack[n-1] = nil
		s.stack = s.stack[:n-1]

		old := s.store[s.selected]
		s.store[s.selected] = top
		old.Release()
	default:
		s.logger.Warn("push/pop operation ignored", "op", op)
	}
	return nil
}

// SelectID makes id the selected palette ID.  Selecting an ID which is
// not in the store is ignored.
func (s *State) SelectID(id uint) error {
	if _, ok := s.store[id]; !ok {
		s.logger.Warn("select of unknown palette ignored", "id", id)
		return nil
	}
	s.selected = id
	return nil
}

// SetControlID sets the palette ID used by [State.Control].
func (s *State) SetControlID(id uint) error {
	s.control = id
	return nil
}

// The actions of [State.Control].
const (
	ClearStore   = 0
	ClearStack   = 1
	DeleteOne    = 2
	CopySelected = 6
)

// Control performs a palette control action.  Deleting the object under
// the selected ID replaces it with a default palette object.
func (s *State) Control(action int) error {
	switch action {
	case ClearStore:
		for id, r := range s.store {
			r.Release()
			delete(s.store, id)
		}
		return s.restoreSelected()

	case ClearStack:
		s.clearStack()

	case DeleteOne:
		r, ok := s.store[s.control]
		if !ok {
			return nil
		}
		r.Release()
		delete(s.store, s.control)
		if s.control == s.selected {
			return s.restoreSelected()
		}

	case CopySelected:
		if s.control == s.selected {
			return nil
		}
		old := s.store[s.control]
		s.store[s.control] = s.store[s.selected].Acquire()
		old.Release()

	default:
		s.logger.Warn("palette control action ignored", "action", action)
		return nil
	}
	s.logger.Debug("palette control", "action", action, "control_id", s.control)
	return nil
}

// restoreSelected stores a default palette object under the selected ID.
func (s *State) restoreSelected() error {
	obj, err := s.newDefaultObject()
	if err != nil {
		return err
	}
	s.store[s.selected] = obj
	return nil
}
