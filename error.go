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
)

// RangeError indicates that a command parameter was malformed or out of
// range.  When a RangeError is returned, no state has been modified.
type RangeError struct {
	Op  string
	Err error
}

func (err *RangeError) Error() string {
	if err.Err == nil {
		return err.Op + ": value out of range"
	}
	return err.Op + ": " + err.Err.Error()
}

func (err *RangeError) Unwrap() error {
	return err.Err
}

// Is reports whether target is a *RangeError.
func (err *RangeError) Is(target error) bool {
	_, ok := target.(*RangeError)
	return ok
}

// Rangef returns a new RangeError with a formatted message.
func Rangef(op, format string, args ...any) *RangeError {
	return &RangeError{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}

// MemoryError indicates that an allocation would exceed the memory budget
// of the allocation arena.
type MemoryError struct {
	Op    string
	Need  int
	Limit int
}

func (err *MemoryError) Error() string {
	return fmt.Sprintf("%s: out of memory (need %d bytes, limit %d)",
		err.Op, err.Need, err.Limit)
}

// Is reports whether target is a *MemoryError.
func (err *MemoryError) Is(target error) bool {
	_, ok := target.(*MemoryError)
	return ok
}

// AccessError indicates that an operation is not supported in the
// current configuration.
type AccessError struct {
	Op     string
	Reason string
}

func (err *AccessError) Error() string {
	return err.Op + ": not supported: " + err.Reason
}

// Is reports whether target is an *AccessError.
func (err *AccessError) Is(target error) bool {
	_, ok := target.(*AccessError)
	return ok
}

// IsRange reports whether err is or wraps a [RangeError].
func IsRange(err error) bool {
	var e *RangeError
	return errors.As(err, &e)
}

// IsMemory reports whether err is or wraps a [MemoryError].
func IsMemory(err error) bool {
	var e *MemoryError
	return errors.As(err, &e)
}

// IsAccess reports whether err is or wraps an [AccessError].
func IsAccess(err error) bool {
	var e *AccessError
	return errors.As(err, &e)
}
