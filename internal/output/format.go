// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"math"

	"github.com/pkdiff/pkdiff/internal/differ"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTable}

// reportColumns are the table columns of a difference report.
var reportColumns = []Column{
	{Key: "sequence", Title: "SEQUENCE"},
	{Key: "branch", Title: "BRANCH", Format: func(v interface{}) string { return fmt.Sprint(v) }},
	{Key: "left", Title: "LEFT", Format: optionalScore},
	{Key: "right", Title: "RIGHT", Format: optionalScore},
	{Key: "delta", Title: "DELTA", Format: optionalScore},
}

// RenderReport writes r in the given format and reports whether the dumps
// were equivalent.
func RenderReport(w io.Writer, r *differ.Report, format string, opts TableOptions) (bool, error) {
	switch format {
	case FormatText, "":
		return Render(w, r)
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatYAML:
		return RenderYAML(w, r)
	case FormatTable:
		return RenderTable(w, r, opts)
	default:
		return false, fmt.Errorf("unknown output format %q", format)
	}
}

// RenderTable writes r as a table. An empty report prints "OK".
func RenderTable(w io.Writer, r *differ.Report, opts TableOptions) (bool, error) {
	if r.Empty() {
		_, err := fmt.Fprintln(w, OK)
		return true, err
	}
	TableWriter(w, ReportRows(r), reportColumns, opts)
	return false, nil
}

// ReportRows flattens r into one row per difference, in report order.
func ReportRows(r *differ.Report) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, rec := range r.All() {
		row := map[string]interface{}{
			"sequence": rec.Sequence,
			"branch":   uint32(rec.Branch),
			"left":     nil,
			"right":    nil,
			"delta":    nil,
		}
		if rec.Left.Valid {
			row["left"] = rec.Left.Value
		}
		if rec.Right.Valid {
			row["right"] = rec.Right.Value
		}
		if rec.Left.Valid && rec.Right.Valid {
			row["delta"] = math.Abs(rec.Left.Value - rec.Right.Value)
		}
		rows = append(rows, row)
	}
	return rows
}

func optionalScore(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return FormatScore(f)
}
