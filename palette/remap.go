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

package palette

// Remap maps palette indices so that all white entries share a single
// index.  The rasterizer relies on white being represented by exactly one
// index when it paints transparent regions.
type Remap struct {
	// BitsPerIndex is the number of bits per pixel index.
	BitsPerIndex int

	// Table holds the remapped value of every index in [0, 2^BitsPerIndex).
	Table []byte

	// packed maps a byte holding 8/BitsPerIndex packed indices to the
	// byte holding the remapped indices.  It is nil if BitsPerIndex does
	// not divide 8.
	packed *[256]byte
}

// BuildRemap constructs the white-index remap for image data with the given
// number of bits per index.
//
// The result is nil if no remap is needed: this is the case if the palette
// has at most one white entry, unless forPattern is set and the index
// space exceeds the number of live entries.  Indices beyond the live entry
// count are wrapped modulo the entry count before being remapped.
func BuildRemap(p *Palette, bitsPerIndex int, forPattern bool) *Remap {
	if bitsPerIndex < 1 || bitsPerIndex > 8 {
		return nil
	}
	n := p.EntryCount()
	size := 1 << bitsPerIndex

	first := -1
	whites := 0
	white := make([]bool, n)
	for i := range n {
		if p.Entry(i) == [3]byte{255, 255, 255} {
			white[i] = true
			whites++
			if first < 0 {
				first = i
			}
		}
	}
	if whites <= 1 && !(forPattern && size > n) {
		return nil
	}

	r := &Remap{
		BitsPerIndex: bitsPerIndex,
		Table:        make([]byte, size),
	}
	for i := range size {
		j := i % n
		if white[j] {
			j = first
		}
		r.Table[i] = byte(j)
	}
	if 8%bitsPerIndex == 0 {
		r.packed = r.expand()
	}
	return r
}

// Index returns the remapped value of palette index i.
func (r *Remap) Index(i int) int {
	return int(r.Table[i&(len(r.Table)-1)])
}

// expand builds the byte-parallel form of the table.
func (r *Remap) expand() *[256]byte {
	bits := r.BitsPerIndex
	mask := byte(1<<bits - 1)
	res := new([256]byte)
	for b := range 256 {
		var out byte
		for shift := 8 - bits; shift >= 0; shift -= bits {
			idx := byte(b) >> shift & mask
			out |= r.Table[idx] << shift
		}
		res[b] = out
	}
	return res
}

// Packed returns the byte-parallel form of the table, or nil if the number
// of bits per index does not divide 8.
func (r *Remap) Packed() *[256]byte {
	return r.packed
}

// Scanline remaps a row of packed pixel indices in place.  Indices are
// packed most significant bit first; a row of width pixels occupies
// (width*BitsPerIndex+7)/8 bytes.
func (r *Remap) Scanline(row []byte, width int) {
	if r.packed != nil {
		nBytes := min((width*r.BitsPerIndex+7)/8, len(row))
		for i, b := range row[:nBytes] {
			row[i] = r.packed[b]
		}
		return
	}

	bits := r.BitsPerIndex
	for x := range width {
		pos := x * bits
		if (pos+bits+7)/8 > len(row) {
			break
		}
		v := getBits(row, pos, bits)
		setBits(row, pos, bits, uint(r.Table[v]))
	}
}

func getBits(row []byte, pos, bits int) uint {
	var v uint
	for k := range bits {
		p := pos + k
		v = v<<1 | uint(row[p/8]>>(7-p%8)&1)
	}
	return v
}

func setBits(row []byte, pos, bits int, v uint) {
	for k := range bits {
		p := pos + k
		bit := byte(v>>(bits-1-k)) & 1
		row[p/8] = row[p/8]&^(1<<(7-p%8)) | bit<<(7-p%8)
	}
}
