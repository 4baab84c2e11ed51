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

package main

import (
	"image"
	"image/draw"
	"image/png"
	"os"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pcl/render"
)

// Layout of the swatch sheet, in pixels.
const (
	sheetColumns = 16
	cellSize     = 24
	cellGap      = 4
)

// cellRect returns the area covered by the swatch of palette entry i.
// The origin is the top left corner of the sheet and y grows downwards.
func cellRect(i int) rect.Rect {
	col := i % sheetColumns
	row := i / sheetColumns
	x := float64(cellGap + col*(cellSize+cellGap))
	y := float64(cellGap + row*(cellSize+cellGap))
	return rect.Rect{LLx: x, LLy: y, URx: x + cellSize, URy: y + cellSize}
}

// sheetBounds returns the area of a sheet holding n swatches: the union of
// all cells, extended to the origin and padded by one gap on the far side.
func sheetBounds(n int) rect.Rect {
	var bounds rect.Rect
	for i := range n {
		bounds.Extend(cellRect(i))
	}
	bounds.Add(0, 0)
	bounds.URx += cellGap
	bounds.URy += cellGap
	return bounds
}

func toImageRect(r rect.Rect) image.Rectangle {
	r = r.Rounded()
	return image.Rect(int(r.LLx), int(r.LLy), int(r.URx), int(r.URy))
}

// drawSheet renders all live palette entries as a grid of swatches on a
// gray background.
func drawSheet(v *render.View) *image.RGBA {
	n := v.Palette().EntryCount()
	img := image.NewRGBA(toImageRect(sheetBounds(n)))
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA([]float64{0.5})), image.Point{}, draw.Src)
	for i := range n {
		c := image.NewUniform(toRGBA(v.Color(i)))
		draw.Draw(img, toImageRect(cellRect(i)), c, image.Point{}, draw.Src)
	}
	return img
}

// writeSheet writes the swatch sheet of v as a PNG file.
func writeSheet(path string, v *render.View) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, drawSheet(v)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
