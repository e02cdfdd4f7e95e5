// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/pkdiff/pkdiff/internal/dump"
)

var statsColumns = []Column{
	{Key: "name", Title: "DUMP"},
	{Key: "sequences", Title: "K-MERS", Format: commaInt},
	{Key: "entries", Title: "ENTRIES", Format: commaInt},
	{Key: "min_score", Title: "MIN", Format: optionalScore},
	{Key: "max_score", Title: "MAX", Format: optionalScore},
	{Key: "size", Title: "SIZE", Format: func(v interface{}) string {
		return humanize.Bytes(uint64(v.(int64)))
	}},
	{Key: "estimated_bytes", Title: "MEMORY", Format: func(v interface{}) string {
		return "~" + humanize.Bytes(uint64(v.(int64)))
	}},
}

// RenderStats writes per-dump statistics. Text and table formats print a
// table sorted by sortSpec (see SortDataset).
func RenderStats(w io.Writer, stats []dump.Stats, format, sortSpec string, opts TableOptions) error {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		_, err = w.Write(b)
		return err
	case FormatText, FormatTable, "":
		rows := StatsRows(stats)
		SortDataset(rows, sortSpec)
		TableWriter(w, rows, statsColumns, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// StatsRows converts stats into table rows.
func StatsRows(stats []dump.Stats) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, map[string]interface{}{
			"name":            s.Name,
			"sequences":       s.Sequences,
			"entries":         s.Entries,
			"min_score":       s.MinScore,
			"max_score":       s.MaxScore,
			"size":            s.Size,
			"estimated_bytes": s.EstimatedBytes,
		})
	}
	return rows
}

func commaInt(v interface{}) string {
	n, _ := v.(int)
	return humanize.Comma(int64(n))
}
