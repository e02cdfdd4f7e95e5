// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "github.com/pkdiff/pkdiff/internal/dump"

// Record is one reportable difference. At least one side is present.
type Record struct {
	Sequence string
	Branch   dump.Branch
	Left     Score
	Right    Score
}

// Report holds the differences found by Compare. Sequences and the branches
// within each sequence iterate in the order they were first recorded.
type Report struct {
	// Left and Right name the compared datasets.
	Left, Right string
	Threshold   float64
	Epsilon     float64

	order []string
	rows  map[string][]Record
}

func newReport(left, right *dump.Dataset, threshold, eps float64) *Report {
	return &Report{
		Left:      left.Name,
		Right:     right.Name,
		Threshold: threshold,
		Epsilon:   eps,
		rows:      make(map[string][]Record),
	}
}

func (r *Report) add(rec Record) {
	if _, ok := r.rows[rec.Sequence]; !ok {
		r.order = append(r.order, rec.Sequence)
	}
	r.rows[rec.Sequence] = append(r.rows[rec.Sequence], rec)
}

// Empty reports whether no difference was found.
func (r *Report) Empty() bool {
	return len(r.order) == 0
}

// Len returns the number of differing (sequence, branch) pairs.
func (r *Report) Len() int {
	n := 0
	for _, recs := range r.rows {
		n += len(recs)
	}
	return n
}

// Sequences returns the sequences with at least one difference.
func (r *Report) Sequences() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Records returns the differences recorded for seq.
func (r *Report) Records(seq string) []Record {
	recs := r.rows[seq]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// All returns every record in report order.
func (r *Report) All() []Record {
	out := make([]Record, 0, r.Len())
	for _, seq := range r.order {
		out = append(out, r.rows[seq]...)
	}
	return out
}
