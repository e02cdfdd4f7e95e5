// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkdiff/pkdiff/internal/differ"
)

// OK is printed when two dumps are equivalent.
const OK = "OK"

// Render writes r in the plain-text report format and reports whether the
// dumps were equivalent. An empty report is the single line "OK". Otherwise
// each differing sequence is printed on its own line followed by one line
// per differing branch:
//
//	<TAB><branch><TAB><left><TAB><right>
//
// An absent score is left blank.
func Render(w io.Writer, r *differ.Report) (bool, error) {
	if r.Empty() {
		_, err := fmt.Fprintln(w, OK)
		return true, err
	}

	ew := &errWriter{w: w}
	for _, seq := range r.Sequences() {
		ew.printf("%s\n", seq)
		for _, rec := range r.Records(seq) {
			ew.printf("\t%d\t%s\t%s\n", rec.Branch, scoreOrBlank(rec.Left), scoreOrBlank(rec.Right))
		}
	}
	return false, ew.err
}

// FormatScore renders v in the shortest form that reads back to the same
// float64. Integral values keep a trailing ".0" and very small or very large
// magnitudes switch to exponent notation.
func FormatScore(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func scoreOrBlank(s differ.Score) string {
	if !s.Valid {
		return ""
	}
	return FormatScore(s.Value)
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
