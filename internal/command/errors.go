// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
)

// ErrDifferent is returned by commands whose inputs were compared successfully
// but did not match. The report has already been written when it is returned.
var ErrDifferent = errors.New("inputs differ")

// UsageError reports a malformed command line. It is raised before any input
// is read.
type UsageError struct {
	Command string
	Msg     string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Msg)
}

// Hint points the user at the help for the failing command.
func (e *UsageError) Hint() string {
	if e.Command == "" || e.Command == "pkdiff" {
		return "Run 'pkdiff --help' for usage."
	}
	return fmt.Sprintf("Run 'pkdiff %s --help' for usage.", e.Command)
}

func usageErrorf(command, format string, args ...any) error {
	return &UsageError{Command: command, Msg: fmt.Sprintf(format, args...)}
}
