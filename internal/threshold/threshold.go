// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package threshold computes the score threshold a phylo-k-mer database was
// built with, T = (omega / #states)^k.
package threshold

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pkdiff/pkdiff/internal/log"
)

// Builder defaults. Default is the threshold they produce.
const (
	DefaultOmega  = 1.5
	DefaultStates = "nucl"
	DefaultK      = 6
)

// Default is (1.5/4)^6.
var Default = Compute(DefaultOmega, 4, DefaultK)

// Params are the builder settings the threshold depends on.
type Params struct {
	Omega  float64 `json:"omega" yaml:"omega"`
	States string  `json:"states" yaml:"states"`
	K      int     `json:"k" yaml:"k"`
}

// DefaultParams returns the builder defaults.
func DefaultParams() Params {
	return Params{Omega: DefaultOmega, States: DefaultStates, K: DefaultK}
}

// Compute returns (omega / states)^k.
func Compute(omega float64, states, k int) float64 {
	return math.Pow(omega/float64(states), float64(k))
}

// StatesFor returns the alphabet size for a sequence type.
func StatesFor(kind string) (int, error) {
	switch strings.ToLower(kind) {
	case "nucl", "dna", "nucleotide":
		return 4, nil
	case "amino", "aa", "protein":
		return 20, nil
	default:
		return 0, fmt.Errorf("unknown sequence type %q: want nucl or amino", kind)
	}
}

// Validate checks p can produce a threshold.
func (p Params) Validate() error {
	if p.Omega <= 0 {
		return fmt.Errorf("omega must be positive, got %g", p.Omega)
	}
	if p.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", p.K)
	}
	_, err := StatesFor(p.States)
	return err
}

// Threshold returns the threshold p describes.
func (p Params) Threshold() (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	states, _ := StatesFor(p.States)
	t := Compute(p.Omega, states, p.K)
	log.Debugf("threshold: omega=%g states=%s k=%d T=%g", p.Omega, p.States, p.K, t)
	return t, nil
}

// Merge overlays the settings found in a JSON build descriptor onto p. Keys
// that are absent leave p unchanged. Recognized keys are "omega", "k" and
// "states", either at the top level or under "build".
func (p Params) Merge(doc []byte) (Params, error) {
	if !gjson.ValidBytes(doc) {
		return p, fmt.Errorf("build info is not valid JSON")
	}

	root := gjson.ParseBytes(doc)
	if b := root.Get("build"); b.IsObject() {
		root = b
	}

	if v := root.Get("omega"); v.Exists() {
		if v.Type != gjson.Number {
			return p, fmt.Errorf("build info: omega is not a number: %s", v.Raw)
		}
		p.Omega = v.Float()
	}
	if v := root.Get("k"); v.Exists() {
		if v.Type != gjson.Number {
			return p, fmt.Errorf("build info: k is not a number: %s", v.Raw)
		}
		p.K = int(v.Int())
	}
	if v := root.Get("states"); v.Exists() {
		p.States = v.String()
	}
	return p, nil
}

// FromBuildInfo reads a JSON build descriptor and merges it onto p.
func (p Params) FromBuildInfo(path string) (Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read build info: %w", err)
	}
	merged, err := p.Merge(b)
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return merged, nil
}
