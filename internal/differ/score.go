// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "math"

// DefaultEpsilon is the tolerance used when none is given.
const DefaultEpsilon = 1e-3

// Score is a score that may be absent.
type Score struct {
	Value float64
	Valid bool
}

// Some returns a present score.
func Some(v float64) Score {
	return Score{Value: v, Valid: true}
}

// None returns an absent score.
func None() Score {
	return Score{}
}

// near reports whether a and b are closer than eps.
func near(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// IsNegligible reports whether a difference between s1 and s2 is too small to
// matter. Scores within eps of the threshold are unreliable on either side of
// it, so they never count, and neither do two scores within eps of each other.
// Two absent scores are always negligible.
func IsNegligible(s1, s2 Score, threshold, eps float64) bool {
	switch {
	case s1.Valid && s2.Valid:
		return near(s1.Value, threshold, eps) ||
			near(s2.Value, threshold, eps) ||
			near(s1.Value, s2.Value, eps)
	case s1.Valid:
		return near(s1.Value, threshold, eps)
	case s2.Valid:
		return near(s2.Value, threshold, eps)
	default:
		return true
	}
}
