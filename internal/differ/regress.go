// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/pkdiff/pkdiff/internal/log"
)

// Regression is the outcome of comparing two saved JSON reports.
type Regression struct {
	// Identical is true when the reports match once ignored keys are removed.
	Identical bool
	// Delta is an ASCII rendering of the changes, empty when Identical.
	Delta string
}

// Regress compares two JSON reports produced by `compare --output json`.
// Top-level keys listed in ignore are removed from both sides first, so
// reports of the same dumps at different paths can be compared.
func Regress(before, after []byte, ignore []string, color bool) (Regression, error) {
	oldDoc, err := decodeReport(before, "old")
	if err != nil {
		return Regression{}, err
	}
	newDoc, err := decodeReport(after, "new")
	if err != nil {
		return Regression{}, err
	}

	for _, key := range ignore {
		if key != "" {
			delete(oldDoc, key)
			delete(newDoc, key)
		}
	}

	delta := gojsondiff.New().CompareObjects(oldDoc, newDoc)
	if !delta.Modified() {
		return Regression{Identical: true}, nil
	}
	log.Debugf("reports differ: deltas=%d", len(delta.Deltas()))

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}

	out, err := formatter.NewAsciiFormatter(oldDoc, config).Format(delta)
	if err != nil {
		return Regression{}, fmt.Errorf("failed to format report delta: %w", err)
	}
	return Regression{Delta: out}, nil
}

func decodeReport(b []byte, which string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s report: %w", which, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s report is not a JSON object", which)
	}
	return doc, nil
}
