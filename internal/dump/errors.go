// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"fmt"
)

// Reasons reported by ParseError.
const (
	ReasonAmbiguous = "ambiguous line: more than one separator"
	ReasonNoHeader  = "score line before any sequence header"
	ReasonScore     = "invalid score"
	ReasonBranch    = "invalid branch"
	ReasonTooLong   = "line too long"
)

// ParseError reports a line of a dump that cannot be classified as a header
// or a score line, or whose tokens are not numeric.
type ParseError struct {
	File   string
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s: %q", e.File, e.Line, e.Reason, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyInputError reports a dump that holds no sequence at all.
type EmptyInputError struct {
	File string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no sequences found", e.File)
}
