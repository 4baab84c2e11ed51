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

package render

import "testing"

func TestLRUCache(t *testing.T) {
	cache := newCache[int, string](12)
	cache.Put(100, "100")
	cache.Put(101, "101")
	cache.Put(102, "102")
	val, ok := cache.Get(100)
	if !ok {
		t.Error("cache miss")
	}
	if val != "100" {
		t.Error("wrong value")
	}
	// now 101 is the oldest entry and should drop out later

	val, ok = cache.Get(0)
	if ok {
		t.Error("cache hit")
	}
	if val != "" {
		t.Error("wrong value")
	}

	for i := 0; i < 25; i++ {
		x := i % 10
		want := string(rune('0' + x))

		val, ok := cache.Get(x)
		if ok != (i >= 10) {
			t.Error("cache hit/miss mismatch")
		}
		if ok {
			if val != want {
				t.Error("wrong value")
			}
		} else {
			cache.Put(x, want)
		}
	}

	if _, ok := cache.Get(100); !ok {
		t.Error("cache miss")
	}
	if _, ok := cache.Get(101); ok {
		t.Error("cache hit")
	}
	if _, ok := cache.Get(102); !ok {
		t.Error("cache miss")
	}
	if cache.Len() != 12 {
		t.Errorf("len = %d, want 12", cache.Len())
	}
}

func TestLRUSingle(t *testing.T) {
	cache := newCache[int, int](1)
	cache.Put(1, 1)
	cache.Put(2, 2)
	cache.Put(3, 3)
	if _, ok := cache.Get(2); ok {
		t.Error("cache hit")
	}
	if v, ok := cache.Get(3); !ok || v != 3 {
		t.Error("cache miss")
	}

	disabled := newCache[int, int](0)
	disabled.Put(1, 1)
	if disabled.Len() != 0 {
		t.Error("disabled cache stored a value")
	}
}
