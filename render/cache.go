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

// lruCache is a simple LRU cache for resolved colors.
type lruCache[K comparable, V any] struct {
	capacity    int
	entries     map[K]*cacheEntry[K, V]
	first, last *cacheEntry[K, V]
}

type cacheEntry[K comparable, V any] struct {
	prev, next *cacheEntry[K, V]
	key        K
	val        V
}

func newCache[K comparable, V any](capacity int) *lruCache[K, V] {
	return &lruCache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*cacheEntry[K, V], capacity),
	}
}

// Put adds a value to the cache.
func (l *lruCache[K, V]) Put(key K, val V) {
	if l.capacity <= 0 {
		return
	}

	if ent, ok := l.entries[key]; ok {
		ent.val = val
		l.moveToFront(ent)
		return
	}

	ent := &cacheEntry[K, V]{key: key, val: val}
	l.entries[key] = ent
	l.moveToFront(ent)

	if len(l.entries) > l.capacity {
		l.removeLast()
	}
}

// Get returns a value from the cache and marks it as recently used.
func (l *lruCache[K, V]) Get(key K) (V, bool) {
	ent, ok := l.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	l.moveToFront(ent)
	return ent.val, true
}

// Len returns the number of cached values.
func (l *lruCache[K, V]) Len() int {
	return len(l.entries)
}

func (l *lruCache[K, V]) moveToFront(ent *cacheEntry[K, V]) {
	if ent == l.first {
		return
	}

	if ent.prev != nil {
		ent.prev.next = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	}
	if ent == l.last {
		l.last = ent.prev
	}

	ent.prev = nil
	ent.next = l.first
	if l.first != nil {
		l.first.prev = ent
	}
	l.first = ent
	if l.last == nil {
		l.last = ent
	}
}

func (l *lruCache[K, V]) removeLast() {
	last := l.last
	if last == nil {
		return
	}

	delete(l.entries, last.key)
	l.last = last.prev
	if l.last != nil {
		l.last.next = nil
	} else {
		l.first = nil
	}
}
