// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkdiff/pkdiff/internal/version"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PKDIFF_CFG_FILE", filepath.Join(dir, "missing.yaml"))
	t.Setenv("PKDIFF_CACHE", "0")
	t.Setenv("NO_COLOR", "1")
	for _, env := range []string{"PKDIFF_THRESHOLD", "PKDIFF_EPSILON", "PKDIFF_OUTPUT", "PKDIFF_COLOR"} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	return dir
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func runMain(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"pkdiff"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ExitCodes(t *testing.T) {
	dir := isolate(t)
	left := writeFile(t, dir, "left.txt", "A\n\t0.1\t1\n")
	right := writeFile(t, dir, "right.txt", "A\n\t0.9\t1\n")
	bad := writeFile(t, dir, "bad.txt", "A\n0.1\t1\t2\n")

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"identical", []string{"compare", left, left}, exitOK, "OK\n", ""},
		{"different", []string{"compare", "--threshold", "0.5", left, right}, exitDifferent, "A\n\t1\t0.1\t0.9\n", ""},
		{"root flag", []string{"--threshold", "0.5", left, right}, exitError, "", "Run 'pkdiff --help'"},
		{"bare files", []string{left, right}, exitDifferent, "A\n\t1\t0.1\t0.9\n", ""},
		{"parse error", []string{"compare", left, bad}, exitError, "", bad + ":2:"},
		{"usage", []string{"compare", left}, exitError, "", "pkdiff compare --help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runMain("", tt.args...)

			assert.Equal(t, tt.code, code)
			if tt.code != exitError {
				assert.Equal(t, tt.stdout, stdout)
			} else {
				assert.Empty(t, stdout)
			}
			if tt.stderr != "" {
				assert.Contains(t, stderr, tt.stderr)
			}
		})
	}
}

func TestRun_StdinAsLeft(t *testing.T) {
	dir := isolate(t)
	right := writeFile(t, dir, "right.txt", "A\n\t0.9\t1\n")

	for _, args := range [][]string{{"compare", "-", right}, {"-", right}} {
		code, stdout, stderr := runMain("A\n\t0.1\t1\n", args...)

		assert.Equal(t, exitDifferent, code, stderr)
		assert.Equal(t, "A\n\t1\t0.1\t0.9\n", stdout)
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runMain("", "--version")

	assert.Equal(t, exitOK, code)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestRun_NakedShowsHelp(t *testing.T) {
	isolate(t)

	code, stdout, _ := runMain("")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "compare")
	assert.Contains(t, stdout, "threshold")
}

func TestRun_SetExpansion(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, dir, "pkdiff.yaml", "compare:\n  loose:\n    - --threshold 0.9\n    - --epsilon 0.01\n")
	t.Setenv("PKDIFF_CFG_FILE", cfg)
	left := writeFile(t, dir, "left.txt", "A\n\t0.1\t1\n")
	right := writeFile(t, dir, "right.txt", "A\n\t0.895\t1\n")

	code, _, _ := runMain("", "compare", left, right)
	assert.Equal(t, exitDifferent, code)

	code, stdout, _ := runMain("", "compare", "@loose", left, right)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "OK\n", stdout)
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"pkdiff", "--help"}, handleNakedCommand([]string{"pkdiff"}))
	assert.Equal(t, []string{"pkdiff", "stats"}, handleNakedCommand([]string{"pkdiff", "stats"}))
}

func TestImplicitCompare(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"files", []string{"pkdiff", "a", "b"}, []string{"pkdiff", "compare", "a", "b"}},
		{"command", []string{"pkdiff", "stats", "a"}, []string{"pkdiff", "stats", "a"}},
		{"help", []string{"pkdiff", "help"}, []string{"pkdiff", "help"}},
		{"flag", []string{"pkdiff", "--help"}, []string{"pkdiff", "--help"}},
		{"stdin", []string{"pkdiff", "-", "b"}, []string{"pkdiff", "compare", "-", "b"}},
		{"only program", []string{"pkdiff"}, []string{"pkdiff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, implicitCompare(tt.args))
		})
	}
}

func TestProcessSetOnly(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, dir, "pkdiff.yaml",
		"stats:\n  defaults:\n    - --output json\n  wide:\n    - --titles\n    - --padding 4\n  broken: --titles\n")
	t.Setenv("PKDIFF_CFG_FILE", cfg)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"no set", []string{"pkdiff", "stats", "a"}, []string{"pkdiff", "stats", "a"}},
		{"defaults", []string{"pkdiff", "stats", "@defaults", "a"}, []string{"pkdiff", "stats", "--output", "json", "a"}},
		{"multiple entries", []string{"pkdiff", "stats", "a", "@wide"}, []string{"pkdiff", "stats", "a", "--titles", "--padding", "4"}},
		{"unknown set", []string{"pkdiff", "stats", "@nope", "a"}, []string{"pkdiff", "stats", "a"}},
		{"not a list", []string{"pkdiff", "stats", "@broken", "a"}, []string{"pkdiff", "stats", "a"}},
		{"too short", []string{"pkdiff", "stats"}, []string{"pkdiff", "stats"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSetOnly(tt.args))
		})
	}
}

func TestProcessSetOnly_NoConfig(t *testing.T) {
	isolate(t)

	result := processSetOnly([]string{"pkdiff", "stats", "@defaults", "a"})

	assert.Equal(t, []string{"pkdiff", "stats", "a"}, result)
}
