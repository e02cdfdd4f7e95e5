// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/dump"
	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/meta"
	"github.com/pkdiff/pkdiff/internal/output"
)

// statsCommandAction loads each dump and prints its counts and sizes.
func statsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf([]dump.Stats{})) {
		return nil
	}

	if cmd.NArg() == 0 {
		return usageErrorf(cmd.Name, "expected at least one dump")
	}

	sets, err := loadDumps(ctx, cmd, cmd.Args().Slice())
	if err != nil {
		return err
	}

	stats := make([]dump.Stats, 0, len(sets))
	for _, ds := range sets {
		stats = append(stats, ds.Stats())
	}

	opts, err := tableOptions(cmd)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := output.RenderStats(&buf, stats, cmd.String("output"), cmd.String("sort"), opts); err != nil {
		return err
	}
	return writeOut(cmd, buf.Bytes())
}

// statsCommandBuilder constructs the cli.Command for "stats".
func statsCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "stats"
	cfg := meta.ConfigSource()

	sortFlag := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma separated sort keys, - prefix for descending (e.g. -entries,name)",
	}
	sortFlag = NameSpacedValueChainFlagFromConfigFile(ns, cfg, sortFlag)

	flags := append([]cli.Flag{sortFlag, schemaFlag()}, NewGlobalFlags(ns, cfg)...)
	flags = append(flags, NewRemoteFlags()...)

	return &cli.Command{
		Name:      "stats",
		Usage:     "summarize phylo-k-mer score dumps",
		UsageText: "pkdiff stats [options] FILE...",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: statsCommandAction,
	}
}
