// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"sort"
)

// Branch identifies a node of the reference tree (post-order id).
type Branch uint32

// Scores holds the branch scores of one sequence in first-seen order.
type Scores struct {
	order  []Branch
	scores map[Branch]float64
}

func newScores() *Scores {
	return &Scores{scores: map[Branch]float64{}}
}

func (s *Scores) set(b Branch, score float64) {
	if _, ok := s.scores[b]; !ok {
		s.order = append(s.order, b)
	}
	s.scores[b] = score
}

// Len returns the number of scored branches.
func (s *Scores) Len() int {
	return len(s.order)
}

// Score returns the score of branch b, if present.
func (s *Scores) Score(b Branch) (float64, bool) {
	v, ok := s.scores[b]
	return v, ok
}

// Branches returns the scored branches in first-seen order.
func (s *Scores) Branches() []Branch {
	out := make([]Branch, len(s.order))
	copy(out, s.order)
	return out
}

// Dataset maps sequence identifiers to their branch scores. Iteration follows
// the order in which sequences first appeared in the dump. A Dataset is never
// modified after loading.
type Dataset struct {
	// Name is the source the dataset was loaded from.
	Name string

	order []string
	seqs  map[string]*Scores
	size  int64
}

func newDataset(name string) *Dataset {
	return &Dataset{Name: name, seqs: map[string]*Scores{}}
}

// open starts a fresh block for seq, discarding an earlier one. The sequence
// keeps its original position.
func (d *Dataset) open(seq string) *Scores {
	if _, ok := d.seqs[seq]; !ok {
		d.order = append(d.order, seq)
	}
	s := newScores()
	d.seqs[seq] = s
	return s
}

// Len returns the number of sequences.
func (d *Dataset) Len() int {
	return len(d.order)
}

// Sequences returns the sequence identifiers in first-seen order.
func (d *Dataset) Sequences() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Lookup returns the scores of seq.
func (d *Dataset) Lookup(seq string) (*Scores, bool) {
	s, ok := d.seqs[seq]
	return s, ok
}

// Entries returns the total number of (sequence, branch) scores.
func (d *Dataset) Entries() int {
	n := 0
	for _, s := range d.seqs {
		n += s.Len()
	}
	return n
}

// Size returns the number of bytes read to build the dataset.
func (d *Dataset) Size() int64 {
	return d.size
}

// FromMap builds a Dataset from nested maps. Sequences and branches are
// ordered ascending since maps carry no order. An empty map yields an empty
// (invalid for comparison) dataset; callers that need the non-empty guarantee
// should use Load or Parse.
func FromMap(name string, m map[string]map[Branch]float64) *Dataset {
	d := newDataset(name)

	seqs := make([]string, 0, len(m))
	for seq := range m {
		seqs = append(seqs, seq)
	}
	sort.Strings(seqs)

	for _, seq := range seqs {
		s := d.open(seq)
		branches := make([]Branch, 0, len(m[seq]))
		for b := range m[seq] {
			branches = append(branches, b)
		}
		sort.Slice(branches, func(i, j int) bool { return branches[i] < branches[j] })
		for _, b := range branches {
			s.set(b, m[seq][b])
		}
	}

	return d
}
