// Copyright 2017 The StackGen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackgen

import (
	"reflect"
	"unicode"

	"github.com/cznic/strutil"
	"github.com/cznic/xc"
	"github.com/xyproto/env/v2"
)

var (
	dict = xc.Dict

	idUnused = dict.SID("unused")

	// Trace makes Stack.Flush dump the in-flight state to stderr before
	// writing back. Set via the STACKGEN_TRACE environment variable.
	Trace = env.Bool("STACKGEN_TRACE")

	printHooks = strutil.PrettyPrintHooks{
		reflect.TypeOf(NameID(0)): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
			x := v.(NameID)
			if x == 0 {
				return
			}

			f.Format(prefix)
			f.Format("%s", dict.S(int(x)))
			f.Format(suffix)
		},
	}
)

// PrettyString turns things produced by this package into neatly formatted
// text.
func PrettyString(v interface{}) string { return strutil.PrettyString(v, "", "", printHooks) }

func addr(n bool) string {
	if n {
		return "&"
	}

	return ""
}

// maybeParenthesize wraps expr in parentheses when it contains an operator.
// An unparenthesized term with a binary operator does not bind tighter than
// the sign prepended to it in the rendered sum.
func maybeParenthesize(expr string) string {
	for _, r := range expr {
		switch {
		case r == '_', unicode.IsSpace(r), unicode.IsLetter(r), unicode.IsDigit(r):
			// ok
		default:
			return "(" + expr + ")"
		}
	}
	return expr
}
