// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"math"
	"slices"

	"github.com/pkdiff/pkdiff/internal/output"
	"github.com/pkdiff/pkdiff/internal/threshold"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, output.Formats)
}

func ColorValidator(value any) error {
	return oneOf(value, output.ColorModes)
}

func StatesValidator(value any) error {
	s, _ := value.(string)
	_, err := threshold.StatesFor(s)
	return err
}

// PositiveValidator accepts numbers greater than zero.
func PositiveValidator(value any) error {
	switch v := value.(type) {
	case float64:
		if v > 0 && !math.IsInf(v, 0) {
			return nil
		}
	case int:
		if v > 0 {
			return nil
		}
	}
	return fmt.Errorf("must be a finite number greater than 0, got %v", value)
}

// NonNegativeValidator accepts numbers greater than or equal to zero.
func NonNegativeValidator(value any) error {
	switch v := value.(type) {
	case float64:
		if v >= 0 && !math.IsInf(v, 0) {
			return nil
		}
	case int:
		if v >= 0 {
			return nil
		}
	}
	return fmt.Errorf("must be a finite number not below 0, got %v", value)
}

func oneOf(value any, valid []string) error {
	s, ok := value.(string)
	if !ok || !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
