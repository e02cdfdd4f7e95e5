// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Bytes per stored key and per (branch, score) entry of an in-memory phylo-k-mer
// database: a 64-bit k-mer code, and a 32-bit branch plus a 32-bit score.
const (
	keyBytes   = 8
	entryBytes = 8
)

// Stats summarizes a Dataset.
type Stats struct {
	Name           string  `json:"name" yaml:"name"`
	Sequences      int     `json:"sequences" yaml:"sequences"`
	Entries        int     `json:"entries" yaml:"entries"`
	MinScore       float64 `json:"min_score" yaml:"min_score"`
	MaxScore       float64 `json:"max_score" yaml:"max_score"`
	Size           int64   `json:"size" yaml:"size"`
	EstimatedBytes int64   `json:"estimated_bytes" yaml:"estimated_bytes"`
}

// Stats computes summary figures for d.
func (d *Dataset) Stats() Stats {
	st := Stats{
		Name:      d.Name,
		Sequences: d.Len(),
		Entries:   d.Entries(),
		Size:      d.size,
		MinScore:  math.Inf(1),
		MaxScore:  math.Inf(-1),
	}

	for _, s := range d.seqs {
		for _, v := range s.scores {
			st.MinScore = math.Min(st.MinScore, v)
			st.MaxScore = math.Max(st.MaxScore, v)
		}
	}
	if st.Entries == 0 {
		st.MinScore, st.MaxScore = 0, 0
	}

	st.EstimatedBytes = int64(st.Sequences)*keyBytes + int64(st.Entries)*entryBytes
	return st
}

// HumanSize renders the number of bytes read, e.g. "1.2 MB".
func (s Stats) HumanSize() string {
	return humanize.Bytes(uint64(s.Size))
}

// HumanEstimate renders the estimated in-memory footprint.
func (s Stats) HumanEstimate() string {
	return "~" + humanize.Bytes(uint64(s.EstimatedBytes))
}

// HumanEntries renders the entry count with thousands separators.
func (s Stats) HumanEntries() string {
	return humanize.Comma(int64(s.Entries))
}
