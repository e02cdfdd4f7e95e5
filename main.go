// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pkdiff/pkdiff/internal/command"
	"github.com/pkdiff/pkdiff/internal/config"
	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/version"
)

// Exit codes.
const (
	exitOK        = 0
	exitDifferent = 1
	exitError     = 2
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = implicitCompare(args)
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)
		return args
	}
}

// implicitCompare inserts the compare command when pkdiff is invoked as
// `pkdiff LEFT RIGHT`.
func implicitCompare(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "@") {
		return args
	}
	if strings.HasPrefix(args[1], "-") && args[1] != "-" {
		return args
	}
	if slices.Contains(command.Commands, args[1]) || args[1] == "help" || args[1] == "h" {
		return args
	}
	return append([]string{args[0], "compare"}, args[1:]...)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitError
	}
	app.Reader = stdin
	app.Writer = stdout
	app.ErrWriter = stderr

	err = command.Run(ctx, app, args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, command.ErrDifferent):
		return exitDifferent
	}

	fmt.Fprintln(stderr, err)
	var ue *command.UsageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ue.Hint())
	}
	log.Debugf("app run err: err=%v", err)
	return exitError
}

// run is realMain with its process state passed in.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, stdout) {
		return exitOK
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args, stdin, stdout, stderr)
}

func realMain() int {
	log.InitLogger()
	return run(os.Args, os.Stdin, os.Stdout, os.Stderr)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments from the <command>.<set> config list at the @set position.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := ""
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	// Remove the @set argument.
	args = append(args[:removeIdx:removeIdx], args[removeIdx+1:]...)

	if _, err := config.Load(); err != nil {
		log.Warnf("ignoring @%s: %v", set, err)
		return args
	}

	// Expand the set arguments at the removeIdx position.
	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Warnf("ignoring @%s: %v", set, err)
		return args
	}
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:removeIdx:removeIdx], append(parts, args[removeIdx:]...)...)
		removeIdx += len(parts)
	}
	return args
}
