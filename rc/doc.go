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

// Package rc implements reference counted objects with explicit allocation
// arenas.
//
// Every object is allocated in an [Arena].  The arena enforces a memory
// budget and keeps track of all live objects, so that an interpreter
// instance can release everything it still owns in one step using
// [Arena.Teardown].
//
// Objects are shared using [Ref] handles.  The object graph must be
// acyclic: an object may hold references to other objects, but never to an
// object which (directly or indirectly) refers back to it.
//
// Arenas and references are not safe for concurrent use.  Different
// interpreter instances must use different arenas.
package rc
