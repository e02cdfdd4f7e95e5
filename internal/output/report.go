// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/pkdiff/pkdiff/internal/differ"
	"github.com/pkdiff/pkdiff/internal/dump"
)

// ReportDoc is the JSON and YAML form of a report.
type ReportDoc struct {
	OK          bool        `json:"ok" yaml:"ok"`
	Threshold   float64     `json:"threshold" yaml:"threshold"`
	Epsilon     float64     `json:"epsilon" yaml:"epsilon"`
	Files       Files       `json:"files" yaml:"files"`
	Differences Differences `json:"differences" yaml:"differences"`
}

// Files names the compared dumps.
type Files struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// Pair is one differing entry. A nil side is absent.
type Pair struct {
	Left  *float64 `json:"left" yaml:"left"`
	Right *float64 `json:"right" yaml:"right"`
}

// BranchPair is a Pair keyed by branch.
type BranchPair struct {
	Branch dump.Branch
	Pair   Pair
}

// SequenceDiff holds the differing branches of one sequence.
type SequenceDiff struct {
	Sequence string
	Branches []BranchPair
}

// Differences marshals as an object keyed by sequence then branch, in report
// order.
type Differences []SequenceDiff

// NewReportDoc builds the document form of r.
func NewReportDoc(r *differ.Report) ReportDoc {
	doc := ReportDoc{
		OK:          r.Empty(),
		Threshold:   r.Threshold,
		Epsilon:     r.Epsilon,
		Files:       Files{Left: r.Left, Right: r.Right},
		Differences: Differences{},
	}
	for _, seq := range r.Sequences() {
		sd := SequenceDiff{Sequence: seq}
		for _, rec := range r.Records(seq) {
			sd.Branches = append(sd.Branches, BranchPair{
				Branch: rec.Branch,
				Pair:   Pair{Left: scorePtr(rec.Left), Right: scorePtr(rec.Right)},
			})
		}
		doc.Differences = append(doc.Differences, sd)
	}
	return doc
}

// MarshalJSON implements json.Marshaler.
func (d Differences) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sd := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sd.Sequence)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":{")
		for j, bp := range sd.Branches {
			if j > 0 {
				buf.WriteByte(',')
			}
			val, err := json.Marshal(bp.Pair)
			if err != nil {
				return nil, err
			}
			buf.WriteString(strconv.Quote(strconv.FormatUint(uint64(bp.Branch), 10)))
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler. Non-finite scores, which JSON
// numbers cannot hold, are written as the strings "nan", "inf" and "-inf".
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Left  interface{} `json:"left"`
		Right interface{} `json:"right"`
	}{jsonScore(p.Left), jsonScore(p.Right)})
}

func jsonScore(v *float64) interface{} {
	switch {
	case v == nil:
		return nil
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return FormatScore(*v)
	default:
		return *v
	}
}

// MarshalYAML implements yaml.Marshaler.
func (d Differences) MarshalYAML() (interface{}, error) {
	out := yaml.MapSlice{}
	for _, sd := range d {
		branches := yaml.MapSlice{}
		for _, bp := range sd.Branches {
			branches = append(branches, yaml.MapItem{Key: uint32(bp.Branch), Value: bp.Pair})
		}
		out = append(out, yaml.MapItem{Key: sd.Sequence, Value: branches})
	}
	return out, nil
}

// RenderJSON writes r as indented JSON and reports whether it was empty.
func RenderJSON(w io.Writer, r *differ.Report) (bool, error) {
	doc := NewReportDoc(r)
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return doc.OK, fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return doc.OK, err
}

// RenderYAML writes r as YAML and reports whether it was empty.
func RenderYAML(w io.Writer, r *differ.Report) (bool, error) {
	doc := NewReportDoc(r)
	b, err := yaml.Marshal(doc)
	if err != nil {
		return doc.OK, fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = w.Write(b)
	return doc.OK, err
}

func scorePtr(s differ.Score) *float64 {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}
