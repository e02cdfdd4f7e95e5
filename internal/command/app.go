// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/config"
	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/meta"
	"github.com/pkdiff/pkdiff/internal/source"
)

// Commands lists the subcommand names InitApp registers.
var Commands = []string{"compare", "stats", "threshold", "regress", "completion"}

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the pkdiff
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config = config.Type{Namespace: ns}
	if _, err := config.Load(); err != nil {
		log.Debugf("running without config: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "pkdiff",
		Usage: "phylo-k-mer score dump comparison",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "pkdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		compareCommandBuilder(meta),
		statsCommandBuilder(meta),
		thresholdCommandBuilder(meta),
		regressCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	app.OnUsageError = onUsageError

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		cmd.OnUsageError = onUsageError
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// onUsageError turns flag parsing failures into a UsageError so the caller
// decides what to print. Help text is never written to stdout.
func onUsageError(_ context.Context, cmd *cli.Command, err error, _ bool) error {
	return &UsageError{Command: cmd.Name, Msg: err.Error()}
}

// Run runs app with args. cli stops reading the command line at a lone "-",
// so every "-" after the program name is passed on as source.StdinPath.
func Run(ctx context.Context, app *cli.Command, args []string) error {
	return app.Run(ctx, stdinArgs(args))
}

func stdinArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if i > 0 && a == source.Stdin {
			a = source.StdinPath
		}
		out[i] = a
	}
	return out
}
