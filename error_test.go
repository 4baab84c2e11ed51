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

package pcl

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClasses(t *testing.T) {
	rangeErr := Rangef("configure image data", "invalid length %d", 7)
	memErr := &MemoryError{Op: "unshare", Need: 100, Limit: 50}
	accessErr := &AccessError{Op: "lookup table", Reason: "no calibration"}

	cases := []struct {
		err                     error
		isRange, isMem, isAcces bool
	}{
		{rangeErr, true, false, false},
		{fmt.Errorf("wrapped: %w", rangeErr), true, false, false},
		{memErr, false, true, false},
		{accessErr, false, false, true},
		{errors.New("other"), false, false, false},
	}
	for i, c := range cases {
		if got := IsRange(c.err); got != c.isRange {
			t.Errorf("%d: IsRange = %t", i, got)
		}
		if got := IsMemory(c.err); got != c.isMem {
			t.Errorf("%d: IsMemory = %t", i, got)
		}
		if got := IsAccess(c.err); got != c.isAcces {
			t.Errorf("%d: IsAccess = %t", i, got)
		}
	}

	if !errors.Is(rangeErr, &RangeError{}) {
		t.Error("errors.Is failed for RangeError")
	}
	if rangeErr.Error() != "configure image data: invalid length 7" {
		t.Errorf("unexpected message %q", rangeErr.Error())
	}
}
