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

// Package float formats floating point numbers for compact text output.
package float

import (
	"strconv"
	"strings"
)

// Format formats x with at most precision digits after the decimal point.
// Trailing zeros and a trailing decimal point are removed, and a leading
// zero before the decimal point is omitted.
func Format(x float64, precision int) string {
	out := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.Contains(out, ".") {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}
	switch {
	case out == "-0":
		out = "0"
	case strings.HasPrefix(out, "0."):
		out = out[1:]
	case strings.HasPrefix(out, "-0."):
		out = "-" + out[2:]
	}
	return out
}

// FormatList formats the elements of xs using [Format] and joins them with
// single spaces.
func FormatList(xs []float64, precision int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = Format(x, precision)
	}
	return strings.Join(parts, " ")
}
