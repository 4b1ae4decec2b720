// Copyright 2017 The StackGen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackgen

import (
	"io"

	"github.com/cznic/mathutil"
	"github.com/cznic/strutil"
)

// Writer is the line-oriented sink generated code is emitted into. Emitted
// lines are indented by the current nesting depth.
type Writer struct {
	f     strutil.Formatter
	depth int
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer { return &Writer{f: strutil.IndentFormatter(w, "\t")} }

// Emit formats statements into w. The format string is expanded as in
// fmt.Printf.
func (w *Writer) Emit(format string, arg ...interface{}) { w.f.Format(format, arg...) }

// Indent increases the nesting depth by one.
func (w *Writer) Indent() {
	w.depth++
	w.f.Format("%i")
}

// Outdent decreases the nesting depth by one, clamped at zero.
func (w *Writer) Outdent() {
	n := w.depth
	w.depth = mathutil.Max(0, n-1)
	if w.depth != n {
		w.f.Format("%u")
	}
}
