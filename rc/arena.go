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

package rc

import (
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/pcl"
)

// Arena is the allocation context for reference counted objects.
type Arena struct {
	limit int
	used  int

	next    uint64
	live    map[uint64]func()
	closing bool
}

// NewArena returns a new allocation arena.  If limit is positive, the total
// size of all live objects is restricted to limit bytes.
func NewArena(limit int) *Arena {
	return &Arena{
		limit: limit,
		live:  make(map[uint64]func()),
	}
}

// Reserve checks whether size additional bytes can be allocated.
func (a *Arena) Reserve(op string, size int) error {
	if a.limit > 0 && a.used+size > a.limit {
		return &pcl.MemoryError{Op: op, Need: size, Limit: a.limit - a.used}
	}
	return nil
}

// Live returns the number of live objects in the arena.
func (a *Arena) Live() int {
	return len(a.live)
}

// Used returns the total size of all live objects.
func (a *Arena) Used() int {
	return a.used
}

// Teardown runs the destructors of all objects which are still alive,
// newest first.  After Teardown returns, the arena is empty and can be
// reused.
func (a *Arena) Teardown() {
	a.closing = true
	defer func() { a.closing = false }()

	keys := maps.Keys(a.live)
	slices.Sort(keys)
	for _, key := range slices.Backward(keys) {
		if fn, ok := a.live[key]; ok {
			fn()
		}
	}
}

func (a *Arena) register(size int, fin func()) uint64 {
	a.next++
	a.used += size
	a.live[a.next] = fin
	return a.next
}

func (a *Arena) unregister(key uint64, size int) {
	delete(a.live, key)
	a.used -= size
}
