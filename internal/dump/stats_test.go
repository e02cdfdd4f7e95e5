// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	ds := mustParse(t, "A\n0.1\t1\n0.7\t2\nB\n0.05\t1\n")

	st := ds.Stats()

	assert.Equal(t, "test", st.Name)
	assert.Equal(t, 2, st.Sequences)
	assert.Equal(t, 3, st.Entries)
	assert.Equal(t, 0.05, st.MinScore)
	assert.Equal(t, 0.7, st.MaxScore)
	assert.Equal(t, int64(2*keyBytes+3*entryBytes), st.EstimatedBytes)
	assert.Equal(t, "~40 B", st.HumanEstimate())
	assert.Equal(t, "3", st.HumanEntries())
}

func TestStats_NoEntries(t *testing.T) {
	ds := mustParse(t, "A\nB\n")

	st := ds.Stats()

	assert.Equal(t, 0, st.Entries)
	assert.Equal(t, 0.0, st.MinScore)
	assert.Equal(t, 0.0, st.MaxScore)
}

func TestStats_HumanEntries(t *testing.T) {
	st := Stats{Entries: 1234567, Size: 2048}

	assert.Equal(t, "1,234,567", st.HumanEntries())
	assert.Equal(t, "2.0 kB", st.HumanSize())
}
