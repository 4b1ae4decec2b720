// Copyright 2017 The StackGen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stackgen implements the stack bookkeeping of an interpreter code
// generator.
//
// Instruction definitions declare their effect on the evaluation stack as an
// ordered sequence of popped and pushed slots. Stack turns one instruction's
// declarations into the minimal C code reading and writing the physical
// stack, skipping the memory traffic for values that are produced and
// consumed within the same instruction. StackOffset tracks the displacement
// between a virtual stack boundary and the physical stack pointer as a
// symbolic sum of slot sizes.
package stackgen

import (
	"fmt"
)

// NameID is a numeric identifier of an identifier as registered in a global
// dictionary[0].
//
// The zero NameID is reserved: a slot with zero Name declares its value
// unused and no code binding the value is ever generated.
//
//	[0]: https://godoc.org/github.com/cznic/xc#pkg-variables
type NameID int

// String implements fmt.Stringer.
func (t NameID) String() string { return string(dict.S(int(t))) }

// GobDecode implements GobDecoder.
func (t *NameID) GobDecode(b []byte) error {
	*t = NameID(dict.ID(b))
	return nil
}

// GobEncode implements GobEncoder.
func (t NameID) GobEncode() ([]byte, error) {
	return append([]byte(nil), dict.S(int(t))...), nil
}

// StackSlot describes one value an instruction consumes from or produces to
// the evaluation stack.
type StackSlot struct {
	Name      NameID // Zero: the value is unused and is discarded.
	Size      string // Size expression: an integer literal or a runtime expression.
	Type      string // Optional value type of the slot. Empty: no cast needed.
	Condition string // Optional guard expression. Non-empty: the slot is present only when it holds.
	Array     bool   // The slot is a multi-element region addressed by pointer.
	Peek      bool   // The slot is read without consuming logical stack depth.
}

// Slot returns a StackSlot with name and size. The definition language's
// discard marker "unused" maps to the zero NameID.
func Slot(name, size string) StackSlot {
	var id NameID
	if x := dict.SID(name); x != idUnused {
		id = NameID(x)
	}
	return StackSlot{Name: id, Size: size}
}

func (s *StackSlot) name() string {
	if s.Name == 0 {
		return "unused"
	}

	return s.Name.String()
}

// varSize returns the size expression s contributes to stack displacements.
// A conditional slot contributes its size only when its condition holds at
// run time.
func varSize(s *StackSlot) string {
	if s.Condition == "" {
		return s.Size
	}

	// Special case simplification.
	if s.Condition == "oparg & 1" && s.Size == "1" {
		return fmt.Sprintf("(%s)", s.Condition)
	}

	return fmt.Sprintf("((%s) ? %s : 0)", s.Condition, s.Size)
}
