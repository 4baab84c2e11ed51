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

// Ref is a counted reference to a value of type T.
//
// A new Ref starts with a count of one.  Every additional owner must call
// [Ref.Acquire], and every owner must eventually call [Ref.Release].  When
// the count drops to zero, the destructor is called exactly once.
type Ref[T any] struct {
	arena *Arena
	val   *T
	count int
	size  int
	free  func(*T)
	key   uint64
	dead  bool
}

// New allocates a new reference counted object in arena a.  The argument
// size is the number of bytes charged against the memory budget of the
// arena.  The destructor free is optional; it is called when the last
// reference is released.
func New[T any](a *Arena, v *T, size int, free func(*T)) (*Ref[T], error) {
	if err := a.Reserve("allocate", size); err != nil {
		return nil, err
	}
	r := &Ref[T]{
		arena: a,
		val:   v,
		count: 1,
		size:  size,
		free:  free,
	}
	r.key = a.register(size, r.destroy)
	return r, nil
}

// Value returns the referenced object.
// The caller must hold a reference.
func (r *Ref[T]) Value() *T {
	if r == nil {
		return nil
	}
	return r.val
}

// Arena returns the arena the object was allocated in.
func (r *Ref[T]) Arena() *Arena {
	return r.arena
}

// Count returns the number of owners of the object.
func (r *Ref[T]) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}

// Acquire registers an additional owner.  Acquire on a nil reference is a
// no-op.  The method returns r, to allow for chaining.
func (r *Ref[T]) Acquire() *Ref[T] {
	if r == nil {
		return nil
	}
	if r.dead {
		panic("rc: acquire of released object")
	}
	r.count++
	return r
}

// Release drops one owner.  When the last owner is dropped, the destructor
// runs and the object is removed from its arena.  Release on a nil
// reference is a no-op.
func (r *Ref[T]) Release() {
	if r == nil {
		return
	}
	if r.dead {
		if r.arena.closing {
			// The object was already freed by Arena.Teardown.
			return
		}
		panic("rc: release of released object")
	}
	r.count--
	if r.count == 0 {
		r.destroy()
	}
}

func (r *Ref[T]) destroy() {
	if r.dead {
		return
	}
	r.dead = true
	r.count = 0
	r.arena.unregister(r.key, r.size)
	v := r.val
	r.val = nil
	if r.free != nil {
		r.free(v)
	}
}

// Assign makes *dst refer to src.  The new value is acquired before the old
// one is released, so that self-assignment is safe.  Both *dst and src may
// be nil.
func Assign[T any](dst **Ref[T], src *Ref[T]) {
	if *dst == src {
		return
	}
	src.Acquire()
	old := *dst
	*dst = src
	old.Release()
}

// Unshare returns a reference which is not shared with any other owner.
//
// If r has a single owner, r is returned unchanged.  Otherwise, clone is
// called to make a copy of the value, the copy is allocated in the same
// arena with the same size and destructor, the caller's reference to r is
// released and the new reference is returned.  The clone function must
// acquire every reference the copy shares with the original.
//
// If the allocation fails, r is left untouched and the caller keeps its
// reference.
func (r *Ref[T]) Unshare(clone func(*T) *T) (*Ref[T], error) {
	if r.count == 1 {
		return r, nil
	}
	if err := r.arena.Reserve("unshare", r.size); err != nil {
		return r, err
	}
	res, err := New(r.arena, clone(r.val), r.size, r.free)
	if err != nil {
		return r, err
	}
	r.Release()
	return res, nil
}
