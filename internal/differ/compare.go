// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkdiff/pkdiff/internal/dump"
	"github.com/pkdiff/pkdiff/internal/log"
)

// Key identifies one (sequence, branch) pair.
type Key struct {
	Sequence string
	Branch   dump.Branch
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Sequence, k.Branch)
}

// ParseKey parses "SEQ:BRANCH".
func ParseKey(s string) (Key, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return Key{}, fmt.Errorf("invalid key %q: want SEQUENCE:BRANCH", s)
	}
	b, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return Key{}, fmt.Errorf("invalid key %q: bad branch: %w", s, err)
	}
	return Key{Sequence: s[:i], Branch: dump.Branch(b)}, nil
}

// TraceFunc observes a single pair comparison.
type TraceFunc func(key Key, left, right Score, negligible bool)

type options struct {
	eps           float64
	trace         TraceFunc
	traceKeys     map[Key]bool
	zeroAsMissing bool
	symmetric     bool
}

// Option tunes Compare.
type Option func(*options)

// WithEpsilon sets the tolerance. Defaults to DefaultEpsilon.
func WithEpsilon(eps float64) Option {
	return func(o *options) { o.eps = eps }
}

// WithTrace calls fn for every compared pair, or only for keys when given.
func WithTrace(fn TraceFunc, keys ...Key) Option {
	return func(o *options) {
		o.trace = fn
		if len(keys) > 0 {
			o.traceKeys = make(map[Key]bool, len(keys))
			for _, k := range keys {
				o.traceKeys[k] = true
			}
		}
	}
}

// WithZeroAsMissing makes a score of exactly 0 count as absent when deciding
// whether a pair is negligible. Reported values are unchanged. Dumps produced
// by older tooling relied on this.
func WithZeroAsMissing() Option {
	return func(o *options) { o.zeroAsMissing = true }
}

// WithSymmetric also reports sequences found only in right.
func WithSymmetric() Option {
	return func(o *options) { o.symmetric = true }
}

// Compare returns the differences between left and right at threshold.
//
// Every branch of every left sequence is compared with its right counterpart,
// or with an absent score when there is none. Then, for sequences present on
// both sides, branches only right has are compared as (absent, right).
// Sequences only right has are skipped unless WithSymmetric is given.
// Neither dataset is modified.
func Compare(left, right *dump.Dataset, threshold float64, opts ...Option) *Report {
	o := options{eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}

	c := &comparison{opts: o, threshold: threshold, report: newReport(left, right, threshold, o.eps)}

	for _, seq := range left.Sequences() {
		ls, _ := left.Lookup(seq)
		rs, inRight := right.Lookup(seq)
		for _, b := range ls.Branches() {
			lv, _ := ls.Score(b)
			rv := None()
			if inRight {
				if v, ok := rs.Score(b); ok {
					rv = Some(v)
				}
			}
			c.pair(Key{seq, b}, Some(lv), rv)
		}
	}

	for _, seq := range right.Sequences() {
		rs, _ := right.Lookup(seq)
		ls, inLeft := left.Lookup(seq)
		if !inLeft && !o.symmetric {
			continue
		}
		for _, b := range rs.Branches() {
			if inLeft {
				if _, ok := ls.Score(b); ok {
					continue
				}
			}
			rv, _ := rs.Score(b)
			c.pair(Key{seq, b}, None(), Some(rv))
		}
	}

	log.Debugf("compared %s and %s: threshold=%g eps=%g differences=%d",
		left.Name, right.Name, threshold, o.eps, c.report.Len())
	return c.report
}

type comparison struct {
	opts      options
	threshold float64
	report    *Report
}

func (c *comparison) pair(key Key, left, right Score) {
	negligible := IsNegligible(c.present(left), c.present(right), c.threshold, c.opts.eps)

	if c.opts.trace != nil && (c.opts.traceKeys == nil || c.opts.traceKeys[key]) {
		c.opts.trace(key, left, right, negligible)
	}

	if !negligible {
		c.report.add(Record{Sequence: key.Sequence, Branch: key.Branch, Left: left, Right: right})
	}
}

func (c *comparison) present(s Score) Score {
	if c.opts.zeroAsMissing && s.Valid && s.Value == 0 {
		return None()
	}
	return s
}
