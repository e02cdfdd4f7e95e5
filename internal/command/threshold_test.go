// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/pkdiff/pkdiff/internal/output"
	"github.com/pkdiff/pkdiff/internal/threshold"
)

const buildInfo = "../threshold/testdata/build.json"

func TestThreshold(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want float64
	}{
		{"default", nil, threshold.Default},
		{"amino", []string{"--states", "amino", "--omega", "2", "--k", "2"}, threshold.Compute(2, 20, 2)},
		{"build info", []string{"--build-info", buildInfo}, threshold.Compute(2, 20, 8)},
		{"flag beats build info", []string{"--build-info", buildInfo, "--k", "3"}, threshold.Compute(2, 20, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			stdout, _, err := run(t, "", append([]string{"threshold"}, tt.args...)...)

			require.NoError(t, err)
			assert.Equal(t, output.FormatScore(tt.want)+"\n", stdout)
		})
	}
}

func TestThreshold_Default(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "threshold")

	require.NoError(t, err)
	assert.Equal(t, "0.002780914306640625\n", stdout)
}

func TestThreshold_FromConfig(t *testing.T) {
	isolate(t)
	useConfig(t, "threshold:\n  k: 2\n  states: amino\n")

	stdout, _, err := run(t, "", "threshold", "--omega", "2")

	require.NoError(t, err)
	assert.Equal(t, output.FormatScore(threshold.Compute(2, 20, 2))+"\n", stdout)
}

func TestThreshold_JSON(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "threshold", "-o", "json", "--build-info", buildInfo)

	require.NoError(t, err)
	assert.Equal(t, 2.0, gjson.Get(stdout, "omega").Float())
	assert.Equal(t, "amino", gjson.Get(stdout, "states").String())
	assert.Equal(t, int64(8), gjson.Get(stdout, "k").Int())
	assert.InDelta(t, threshold.Compute(2, 20, 8), gjson.Get(stdout, "threshold").Float(), 1e-20)
}

func TestThreshold_YAML(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "threshold", "-o", "yaml")

	require.NoError(t, err)
	assert.Contains(t, stdout, "omega: 1.5\n")
	assert.Contains(t, stdout, "states: nucl\n")
	assert.Contains(t, stdout, "k: 6\n")
	assert.Contains(t, stdout, "threshold: ")
}

func TestThreshold_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"states", []string{"--states", "rna"}},
		{"omega", []string{"--omega", "0"}},
		{"k", []string{"--k=-1"}},
		{"argument", []string{"extra"}},
		{"missing build info", []string{"--build-info", "missing.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			stdout, _, err := run(t, "", append([]string{"threshold"}, tt.args...)...)

			assert.Error(t, err)
			assert.Empty(t, stdout)
		})
	}
}
