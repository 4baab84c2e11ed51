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

// Package pcl holds the error types shared by the color and palette
// packages of a PCL interpreter.
//
// The sub-packages implement the color pipeline used for raster and
// vector output:
//   - [seehuhn.de/go/pcl/cid]: the "configure image data" descriptor
//   - [seehuhn.de/go/pcl/lookup]: downloaded color lookup tables
//   - [seehuhn.de/go/pcl/colorspace]: calibrated base color spaces
//   - [seehuhn.de/go/pcl/palette]: indexed palettes and white-index remapping
//   - [seehuhn.de/go/pcl/halftone]: render method and halftone binding
//   - [seehuhn.de/go/pcl/crd]: the color rendering dictionary
//   - [seehuhn.de/go/pcl/state]: palette objects, the palette store and stack
//   - [seehuhn.de/go/pcl/render]: the view of the color state used for rendering
//
// Objects are reference counted using [seehuhn.de/go/pcl/rc], so that
// palettes can be shared cheaply between the palette store, the palette
// stack and the render state.
package pcl
