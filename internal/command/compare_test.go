// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/dump"
	"github.com/pkdiff/pkdiff/internal/threshold"
)

func TestCompare_Identical(t *testing.T) {
	isolate(t)
	left, _ := sampleDumps(t)

	stdout, stderr, err := run(t, "", "compare", left, left)

	require.NoError(t, err)
	assert.Equal(t, "OK\n", stdout)
	assert.Empty(t, stderr)
}

func TestCompare_Different(t *testing.T) {
	isolate(t)
	left, right := sampleDumps(t)

	stdout, _, err := run(t, "", "compare", "--threshold", "0.5", left, right)

	assert.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t, report, stdout)
}

func TestCompare_Usage(t *testing.T) {
	isolate(t)
	left, _ := sampleDumps(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no dumps", []string{"compare"}},
		{"one dump", []string{"compare", left}},
		{"three dumps", []string{"compare", left, left, left}},
		{"stdin twice", []string{"compare", "-", "-"}},
		{"bad trace key", []string{"compare", "--trace", "A", left, left}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, "A\n0.1\t1\n", tt.args...)

			var ue *UsageError
			require.True(t, errors.As(err, &ue), "want *UsageError, got %v", err)
			assert.Equal(t, "compare", ue.Command)
			assert.Empty(t, stdout)
		})
	}
}

func TestCompare_LoadErrorsPrintNothing(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	left := writeFile(t, dir, "left.txt", leftDump)
	bad := writeFile(t, dir, "bad.txt", "A\n0.1\tx\n")
	empty := writeFile(t, dir, "empty.txt", "\n")

	stdout, _, err := run(t, "", "compare", left, bad)
	var pe *dump.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Empty(t, stdout)

	stdout, _, err = run(t, "", "compare", empty, left)
	var ee *dump.EmptyInputError
	require.True(t, errors.As(err, &ee))
	assert.Empty(t, stdout)

	stdout, _, err = run(t, "", "compare", left, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stdout)
}

func TestCompare_Stdin(t *testing.T) {
	isolate(t)
	left, right := sampleDumps(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"left", leftDump, []string{"--threshold", "0.5", "-", right}},
		{"right", rightDump, []string{"--threshold", "0.5", left, "-"}},
		{"flag after stdin", leftDump, []string{"-", "--threshold", "0.5", right}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.stdin, append([]string{"compare"}, tt.args...)...)

			assert.ErrorIs(t, err, ErrDifferent)
			assert.Equal(t, report, stdout)
		})
	}
}

func TestCompare_StdinTwice(t *testing.T) {
	isolate(t)

	_, _, err := run(t, leftDump, "compare", "-", "-")

	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Msg, "standard input can be used for only one dump")
}

func TestCompare_Threshold(t *testing.T) {
	tests := []struct {
		name   string
		config string
		env    string
		args   []string
		want   float64
	}{
		{"default", "", "", nil, threshold.Default},
		{"flag", "", "", []string{"--threshold", "0.5"}, 0.5},
		{"env", "", "0.3", nil, 0.3},
		{"namespaced config", "compare:\n  threshold: 0.25\nthreshold: 0.5\n", "", nil, 0.25},
		{"global config", "threshold: 0.5\n", "", nil, 0.5},
		{"flag beats config", "threshold: 0.5\n", "", []string{"--threshold", "0.9"}, 0.9},
		{"build info", "", "", []string{"--build-info", "../threshold/testdata/build.json"}, threshold.Compute(2, 20, 8)},
		{"flag beats build info", "", "", []string{"--threshold", "0.5", "--build-info", "../threshold/testdata/build.json"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.config != "" {
				useConfig(t, tt.config)
			}
			if tt.env != "" {
				t.Setenv("PKDIFF_THRESHOLD", tt.env)
			}
			left, right := sampleDumps(t)

			args := append([]string{"compare", "--output", "json"}, tt.args...)
			stdout, _, err := run(t, "", append(args, left, right)...)

			assert.ErrorIs(t, err, ErrDifferent)
			assert.InDelta(t, tt.want, gjson.Get(stdout, "threshold").Float(), 1e-15)
		})
	}
}

// TestCompare_ThresholdChangesReport verifies a score near the threshold is
// dropped from the report. B is recorded while walking LEFT and A only while
// walking RIGHT, so B comes first.
func TestCompare_ThresholdChangesReport(t *testing.T) {
	isolate(t)
	left, right := sampleDumps(t)

	stdout, _, err := run(t, "", "compare", "--threshold", "0.9", left, right)

	assert.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t, "B\n\t4\t0.2\t\nA\n\t3\t\t0.7\n", stdout)
}

func TestCompare_Symmetric(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	left := writeFile(t, dir, "l.txt", "A\n0.1\t1\n")
	right := writeFile(t, dir, "r.txt", "A\n0.1\t1\nC\n0.7\t2\n")

	stdout, _, err := run(t, "", "compare", left, right)
	require.NoError(t, err)
	assert.Equal(t, "OK\n", stdout)

	stdout, _, err = run(t, "", "compare", "--symmetric", left, right)
	assert.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t, "C\n\t2\t\t0.7\n", stdout)
}

func TestCompare_ZeroAsMissing(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	left := writeFile(t, dir, "l.txt", "A\n0\t1\n")
	right := writeFile(t, dir, "r.txt", "A\n0.5\t2\n")

	_, _, err := run(t, "", "compare", "--threshold", "0.5", left, right)
	assert.ErrorIs(t, err, ErrDifferent)

	stdout, _, err := run(t, "", "compare", "--threshold", "0.5", "--zero-as-missing", left, right)
	require.NoError(t, err)
	assert.Equal(t, "OK\n", stdout)
}

func TestCompare_Epsilon(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	left := writeFile(t, dir, "l.txt", "A\n0.10\t1\n")
	right := writeFile(t, dir, "r.txt", "A\n0.15\t1\n")

	_, _, err := run(t, "", "compare", "--threshold", "0.5", left, right)
	assert.ErrorIs(t, err, ErrDifferent)

	_, _, err = run(t, "", "compare", "--threshold", "0.5", "--epsilon", "0.1", left, right)
	assert.NoError(t, err)
}

func TestCompare_Trace(t *testing.T) {
	isolate(t)
	left, right := sampleDumps(t)

	_, stderr, err := run(t, "", "compare", "--threshold", "0.5", "--trace", "A:1", "--trace", "B:5", left, right)

	assert.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t,
		"trace A:1 left=0.1 right=0.9 negligible=false\n"+
			"trace B:5 left=1.0 right=1.0 negligible=true\n",
		stderr)
}

func TestCompare_TraceFromConfig(t *testing.T) {
	isolate(t)
	useConfig(t, "compare:\n  trace:\n    - \"A:3\"\n")
	left, right := sampleDumps(t)

	_, stderr, err := run(t, "", "compare", "--threshold", "0.5", left, right)

	assert.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t, "trace A:3 left=- right=0.7 negligible=false\n", stderr)
}

func TestCompare_Summary(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	left := writeFile(t, dir, "l.txt", "A\n0.1\t1\n0.2\t2\n")
	right := writeFile(t, dir, "r.txt", "A\n0.1\t1\n")

	stdout, stderr, err := run(t, "", "compare", "--threshold", "0.5", "--summary", left, right)

	assert.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t, "A\n\t2\t0.2\t\n", stdout)
	assert.Regexp(t, `sequences\s+1\s+1\s+OK`, stderr)
	assert.Regexp(t, `entries\s+2\s+1\s+DIFF`, stderr)
	assert.Regexp(t, `reported\s+1`, stderr)
}

func TestCompare_Formats(t *testing.T) {
	isolate(t)
	left, right := sampleDumps(t)

	stdout, _, err := run(t, "", "compare", "--threshold", "0.5", "--output", "yaml", left, right)
	assert.ErrorIs(t, err, ErrDifferent)
	assert.Contains(t, stdout, "ok: false\n")

	stdout, _, err = run(t, "", "compare", "--threshold", "0.5", "-o", "table", "--titles", left, right)
	assert.ErrorIs(t, err, ErrDifferent)
	assert.Contains(t, stdout, "SEQUENCE")

	stdout, _, err = run(t, "", "compare", "-o", "json", left, left)
	require.NoError(t, err)
	assert.True(t, gjson.Get(stdout, "ok").Bool())

	_, _, err = run(t, "", "compare", "-o", "xml", left, left)
	assert.Error(t, err)
}

func TestCompare_OutputFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PKDIFF_OUTPUT", "json")
	left, _ := sampleDumps(t)

	stdout, _, err := run(t, "", "compare", left, left)

	require.NoError(t, err)
	assert.True(t, gjson.Valid(stdout))
}

func TestCompare_ReportFile(t *testing.T) {
	isolate(t)
	left, right := sampleDumps(t)
	dest := filepath.Join(t.TempDir(), "report.txt")

	stdout, _, err := run(t, "", "compare", "--threshold", "0.5", "--report", dest, left, right)

	assert.ErrorIs(t, err, ErrDifferent)
	assert.Empty(t, stdout)
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, report, string(b))
}

func TestCompare_Schema(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "compare", "--schema")

	require.NoError(t, err)
	assert.Contains(t, stdout, "differences.<sequence>.<branch>.left")
	assert.Contains(t, stdout, "files.right")
}

func TestCompare_BadFlagIsUsageError(t *testing.T) {
	isolate(t)
	left, _ := sampleDumps(t)

	stdout, _, err := run(t, "", "compare", "--output", "xml", left, left)

	var ue *UsageError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "compare", ue.Command)
	assert.Empty(t, stdout)
}

func TestCompare_ThresholdUsage(t *testing.T) {
	isolate(t)
	app, err := InitApp(context.Background(), []string{"pkdiff", "compare"})
	require.NoError(t, err)

	cmd := app.Command("compare")
	require.NotNil(t, cmd)

	var usage string
	for _, f := range cmd.Flags {
		if df, ok := f.(cli.DocGenerationFlag); ok && slices.Contains(f.Names(), "threshold") {
			usage = df.GetUsage()
		}
	}
	assert.Contains(t, usage, "within epsilon")
	assert.NotContains(t, usage, "at or below")
}
