// Copyright 2017 The StackGen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cznic/internal/buffer"
)

// StackOffset is the displacement of a virtual stack boundary from the
// physical stack pointer, kept as the multiset of slot sizes pushed minus
// the multiset of slot sizes popped since the last Clear.
type StackOffset struct {
	popped []string
	pushed []string
}

// Pop records s as popped.
func (o *StackOffset) Pop(s *StackSlot) { o.popped = append(o.popped, varSize(s)) }

// Push records s as pushed.
func (o *StackOffset) Push(s *StackSlot) { o.pushed = append(o.pushed, varSize(s)) }

// simplify removes matching expressions from both the popped and the pushed
// list. Matching is textual, so the result is minimal only up to the
// spelling of the recorded sizes.
func (o *StackOffset) simplify() {
	if len(o.popped) == 0 || len(o.pushed) == 0 {
		return
	}

	// Sort so the lexically largest element is last.
	popped := append([]string(nil), o.popped...)
	pushed := append([]string(nil), o.pushed...)
	sort.Strings(popped)
	sort.Strings(pushed)
	o.popped = o.popped[:0]
	o.pushed = o.pushed[:0]
	for len(popped) != 0 && len(pushed) != 0 {
		pop := popped[len(popped)-1]
		popped = popped[:len(popped)-1]
		push := pushed[len(pushed)-1]
		pushed = pushed[:len(pushed)-1]
		switch {
		case pop == push:
			// Cancelled.
		case pop > push:
			// No element remaining in pushed can match pop.
			o.popped = append(o.popped, pop)
			pushed = append(pushed, push)
		default:
			o.pushed = append(o.pushed, push)
			popped = append(popped, pop)
		}
	}
	o.popped = append(o.popped, popped...)
	o.pushed = append(o.pushed, pushed...)
}

// String renders the displacement as a single signed C expression. It
// implements fmt.Stringer.
func (o *StackOffset) String() string {
	o.simplify()
	n := 0
	var buf buffer.Bytes

	defer buf.Close()

	for _, v := range o.popped {
		m, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintf(&buf, " - %s", maybeParenthesize(v))
			continue
		}

		n -= m
	}
	for _, v := range o.pushed {
		m, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintf(&buf, " + %s", maybeParenthesize(v))
			continue
		}

		n += m
	}
	s := string(buf.Bytes())
	if s == "" || n != 0 {
		s = fmt.Sprintf("%d%s", n, s)
	}
	switch {
	case strings.HasPrefix(s, " + "):
		s = s[3:]
	case strings.HasPrefix(s, " - "):
		s = "-" + s[3:]
	}
	return s
}

// Clear empties the displacement.
func (o *StackOffset) Clear() {
	o.popped = o.popped[:0]
	o.pushed = o.pushed[:0]
}
