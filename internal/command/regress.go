// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/differ"
	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/meta"
	"github.com/pkdiff/pkdiff/internal/source"
)

// Identical is printed by regress when the reports match.
const Identical = "The reports are identical."

// regressCommandAction compares two JSON reports saved by
// `compare --output json`.
func regressCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.NArg() != 2 {
		return usageErrorf(cmd.Name, "expected OLD and NEW reports, got %d argument(s)", cmd.NArg())
	}
	if source.IsStdin(cmd.Args().Get(0)) && source.IsStdin(cmd.Args().Get(1)) {
		return usageErrorf(cmd.Name, "standard input can be used for only one report")
	}

	before, err := readSpec(ctx, cmd, cmd.Args().Get(0))
	if err != nil {
		return err
	}
	after, err := readSpec(ctx, cmd, cmd.Args().Get(1))
	if err != nil {
		return err
	}

	color, err := useColor(cmd, cmd.Root().Writer)
	if err != nil {
		return err
	}

	var ignore []string
	for _, key := range strings.Split(cmd.String("ignore"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			ignore = append(ignore, key)
		}
	}

	reg, err := differ.Regress(before, after, ignore, color)
	if err != nil {
		return err
	}

	if reg.Identical {
		return writeOut(cmd, []byte(Identical+"\n"))
	}
	if err := writeOut(cmd, []byte(reg.Delta)); err != nil {
		return err
	}
	return ErrDifferent
}

// regressCommandBuilder constructs the cli.Command for "regress".
func regressCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "regress"
	cfg := meta.ConfigSource()

	ignoreFlag := &cli.StringFlag{
		Name:    "ignore",
		Aliases: []string{"i"},
		Usage:   "comma separated top-level report keys to ignore",
		Value:   "files",
	}
	ignoreFlag = NameSpacedValueChainFlagFromConfigFile(ns, cfg, ignoreFlag)

	colorFlag := &cli.StringFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "colorize the delta (auto, always, never)",
		Value:   "auto",
		Sources: cli.NewValueSourceChain(cli.EnvVar("PKDIFF_COLOR")),
		Validator: func(value string) error {
			return FlagValidators(value, ColorValidator)
		},
	}
	colorFlag = NameSpacedValueChainFlagFromConfigFile(ns, cfg, colorFlag)

	flags := append([]cli.Flag{ignoreFlag, colorFlag}, NewRemoteFlags()...)

	return &cli.Command{
		Name:      "regress",
		Usage:     "compare two saved JSON reports",
		UsageText: "pkdiff regress [options] OLD.json NEW.json",
		Description: "Detects whether the differences between two dumps changed, e.g.\n" +
			"between two builder revisions. Exits 0 when the reports match and 1\n" +
			"when they do not.",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: regressCommandAction,
	}
}

// readSpec reads a whole file, s3 object or stdin.
func readSpec(ctx context.Context, cmd *cli.Command, spec string) ([]byte, error) {
	src, err := source.New(spec, sourceOptions(cmd)...)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return b, nil
}
