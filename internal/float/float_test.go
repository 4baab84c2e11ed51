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

package float

import "testing"

func TestFormat(t *testing.T) {
	type testCase struct {
		x    float64
		prec int
		want string
	}
	cases := []testCase{
		{0, 3, "0"},
		{1, 3, "1"},
		{0.5, 3, ".5"},
		{-0.25, 3, "-.25"},
		{0.2126, 3, ".213"},
		{12.4, 0, "12"},
		{100, 2, "100"},
		{-0.0001, 3, "0"},
		{0.35, 4, ".35"},
	}
	for _, c := range cases {
		got := Format(c.x, c.prec)
		if got != c.want {
			t.Errorf("Format(%g, %d) = %q, want %q", c.x, c.prec, got, c.want)
		}
	}
}

func TestFormatList(t *testing.T) {
	got := FormatList([]float64{1, 0, 0.5}, 3)
	if got != "1 0 .5" {
		t.Errorf("got %q", got)
	}
	if FormatList(nil, 3) != "" {
		t.Error("non-empty result for empty list")
	}
}
