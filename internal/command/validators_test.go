// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator FlagValidatorType
		value     any
		wantErr   bool
	}{
		{"output text", OutputValidator, "text", false},
		{"output table", OutputValidator, "table", false},
		{"output raw", OutputValidator, "raw", true},
		{"color auto", ColorValidator, "auto", false},
		{"color blue", ColorValidator, "blue", true},
		{"color not a string", ColorValidator, 1, true},
		{"states amino", StatesValidator, "amino", false},
		{"states rna", StatesValidator, "rna", true},
		{"positive float", PositiveValidator, 0.5, false},
		{"zero float", PositiveValidator, 0.0, true},
		{"positive int", PositiveValidator, 3, false},
		{"negative int", PositiveValidator, -3, true},
		{"zero non negative", NonNegativeValidator, 0.0, false},
		{"negative non negative", NonNegativeValidator, -0.1, true},
		{"string non negative", NonNegativeValidator, "1", true},
		{"infinite non negative", NonNegativeValidator, math.Inf(1), true},
		{"nan non negative", NonNegativeValidator, math.NaN(), true},
		{"infinite positive", PositiveValidator, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlagValidators_StopsAtFirstError(t *testing.T) {
	calls := 0
	count := func(any) error { calls++; return nil }

	err := FlagValidators("raw", count, OutputValidator, count)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestUsageError(t *testing.T) {
	err := usageErrorf("compare", "expected %d dumps", 2)

	assert.EqualError(t, err, "compare: expected 2 dumps")
}

func TestUsageError_Hint(t *testing.T) {
	assert.Equal(t, "Run 'pkdiff --help' for usage.", (&UsageError{Command: "pkdiff"}).Hint())
	assert.Equal(t, "Run 'pkdiff stats --help' for usage.", (&UsageError{Command: "stats"}).Hint())
}
