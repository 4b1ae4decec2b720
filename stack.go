// Copyright 2017 The StackGen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackgen

import (
	"fmt"
	"os"
	"strings"
)

// The uniform cell type of the generated interpreter's evaluation stack.
// Slots declaring a more specific value type are cast through it when
// written back.
const cellCast = "(obj_t *)"

var _ error = (*SizeMismatchError)(nil)

// SizeMismatchError reports an instruction whose declared stack effects are
// inconsistent: a value produced earlier in the instruction is consumed
// later in the same instruction with a different declared size.
type SizeMismatchError struct {
	Pushed StackSlot // The in-flight producer.
	Popped StackSlot // The consumer.
}

// Error implements error.
func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf(
		"size mismatch when popping %q from stack to assign to %q: expected %s got %s",
		e.Pushed.name(), e.Popped.name(), e.Popped.Size, e.Pushed.Size,
	)
}

// Stack simulates the effect of one instruction on the evaluation stack and
// generates the code realizing it. Values pushed and later popped within the
// same instruction travel by plain assignment and never touch memory.
//
// A Stack serves one instruction at a time: pops first, pushes second, in
// declaration order, terminated by exactly one Flush. It is not safe for
// concurrent use.
type Stack struct {
	Top  StackOffset // Virtual top of stack vs the physical stack pointer.
	Base StackOffset // Stack base of the current instruction vs the physical stack pointer.
	Peek StackOffset // Like Top, but ignoring non-consuming reads.

	variables []StackSlot // Pushed but not yet written back, in push order.
	defined   map[NameID]struct{}
}

// NewStack returns a newly created Stack. The zero value of Stack is also
// ready for use.
func NewStack() *Stack { return &Stack{} }

func (s *Stack) define(nm NameID) {
	if s.defined == nil {
		s.defined = map[NameID]struct{}{}
	}
	s.defined[nm] = struct{}{}
}

func (s *Stack) isDefined(nm NameID) bool {
	_, ok := s.defined[nm]
	return ok
}

// Pop returns the code binding v, consumed by the current instruction. When
// a value pushed earlier in the same instruction is still in flight it is
// consumed directly and no memory is read. A non-nil error is a
// *SizeMismatchError and no code has been produced for v.
func (s *Stack) Pop(v StackSlot) (string, error) {
	s.Top.Pop(&v)
	if !v.Peek {
		s.Peek.Pop(&v)
	}
	indirect := addr(v.Array)
	if n := len(s.variables); n != 0 {
		popped := s.variables[n-1]
		s.variables = s.variables[:n-1]
		if popped.Size != v.Size {
			return "", &SizeMismatchError{Pushed: popped, Popped: v}
		}

		switch {
		case popped.Name == v.Name:
			return "", nil
		case popped.Name == 0:
			// The producer never named the value so the consumer must
			// still fetch it from the physical stack.
			s.define(v.Name)
			return fmt.Sprintf("%s = %sstack_pointer[%s];\n", v.Name, indirect, s.Top.String()), nil
		case v.Name == 0:
			return "", nil
		default:
			s.define(v.Name)
			return fmt.Sprintf("%s = %s;\n", v.Name, popped.Name), nil
		}
	}

	s.Base.Pop(&v)
	if v.Name == 0 {
		return "", nil
	}

	s.define(v.Name)
	cast := ""
	if v.Type != "" && !v.Array {
		cast = fmt.Sprintf("(%s)", v.Type)
	}
	assign := fmt.Sprintf("%s = %s%sstack_pointer[%s];", v.Name, cast, indirect, s.Base.String())
	if v.Condition != "" {
		return fmt.Sprintf("if (%s) { %s }\n", v.Condition, assign), nil
	}

	return assign + "\n", nil
}

// Push records v as produced by the current instruction and returns the code
// defining it, if any. Only arrays are materialized at push time, they need
// an address fixed before the top displacement advances. Anything else stays
// in flight until a later Pop aliases it or Flush writes it back.
func (s *Stack) Push(v StackSlot) string {
	s.variables = append(s.variables, v)
	if v.Array && v.Name != 0 && !s.isDefined(v.Name) {
		off := s.Top.String()
		s.Top.Push(&v)
		s.define(v.Name)
		return fmt.Sprintf("%s = &stack_pointer[%s];\n", v.Name, off)
	}

	s.Top.Push(&v)
	return ""
}

// Flush writes all in-flight values back to the physical stack, advances the
// stack pointer by the instruction's net displacement and resets s for the
// next instruction.
func (s *Stack) Flush(w *Writer) {
	if Trace {
		fmt.Fprintf(os.Stderr, "stackgen: flush %s\n", s.Comment())
	}
	for i := range s.variables {
		v := &s.variables[i]
		if !v.Peek && v.Name != 0 && !v.Array {
			cast := ""
			if v.Type != "" {
				cast = cellCast
			}
			if v.Condition != "" {
				w.Emit("if (%s) ", v.Condition)
			}
			w.Emit("stack_pointer[%s] = %s%s;\n", s.Base.String(), cast, v.Name)
		}
		s.Base.Push(v)
	}
	if g, e := s.Base.String(), s.Top.String(); g != e {
		panic(fmt.Errorf("stackgen: internal error: base offset %s, top offset %s", g, e))
	}

	if n := s.Base.String(); n != "0" {
		w.Emit("stack_pointer += %s;\n", n)
	}
	s.variables = s.variables[:0]
	s.Base.Clear()
	s.Top.Clear()
	s.Peek.Clear()
}

// Comment returns a debug dump of the in-flight state formatted as a C block
// comment.
func (s *Stack) Comment() string {
	a := make([]string, len(s.variables))
	for i := range s.variables {
		a[i] = s.variables[i].name()
	}
	return fmt.Sprintf("/* Variables: [%s]. Base offset: %s. Top offset: %s */", strings.Join(a, ", "), s.Base.String(), s.Top.String())
}
