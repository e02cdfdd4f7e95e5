// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/config"
	"github.com/pkdiff/pkdiff/internal/differ"
	"github.com/pkdiff/pkdiff/internal/dump"
	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/meta"
	"github.com/pkdiff/pkdiff/internal/output"
	"github.com/pkdiff/pkdiff/internal/threshold"
)

// compareCommandAction loads both dumps, compares them and writes the report.
// It returns ErrDifferent when the report is not empty.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(output.ReportDoc{})) {
		return nil
	}

	if cmd.NArg() != 2 {
		return usageErrorf(cmd.Name, "expected LEFT and RIGHT dumps, got %d argument(s)", cmd.NArg())
	}

	t, err := resolveThreshold(cmd)
	if err != nil {
		return err
	}

	eps := cmd.Float("epsilon")
	if eps < 0 {
		return usageErrorf(cmd.Name, "epsilon must not be negative")
	}

	opts := []differ.Option{differ.WithEpsilon(eps)}
	if cmd.Bool("symmetric") {
		opts = append(opts, differ.WithSymmetric())
	}
	if cmd.Bool("zero-as-missing") {
		opts = append(opts, differ.WithZeroAsMissing())
	}

	trace, err := traceOption(cmd)
	if err != nil {
		return err
	}
	if trace != nil {
		opts = append(opts, trace)
	}

	// Load everything before writing anything so a bad input never leaves a
	// partial report behind.
	sets, err := loadDumps(ctx, cmd, cmd.Args().Slice())
	if err != nil {
		return err
	}
	left, right := sets[0], sets[1]

	report := differ.Compare(left, right, t, opts...)

	tableOpts, err := tableOptions(cmd)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	ok, err := output.RenderReport(&buf, report, cmd.String("output"), tableOpts)
	if err != nil {
		return err
	}

	dest := cmd.String("report")
	if dest != "" {
		if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil { //nolint:mnd
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := writeOut(cmd, buf.Bytes()); err != nil {
		return err
	}

	if cmd.Bool("summary") {
		writeSummary(cmd.Root().ErrWriter, left, right, report)
	}

	if !ok {
		return ErrDifferent
	}
	return nil
}

// compareCommandBuilder constructs the cli.Command for "compare".
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "compare"
	cfg := meta.ConfigSource()

	thresholdFlag := &cli.FloatFlag{
		Name:    "threshold",
		Aliases: []string{"T"},
		Usage:   "score threshold; differences involving a score within epsilon of it are ignored",
		Value:   threshold.Default,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PKDIFF_THRESHOLD")),
		Validator: func(value float64) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	configSources(ns, cfg, thresholdFlag.Name, &thresholdFlag.Sources)

	epsilonFlag := &cli.FloatFlag{
		Name:    "epsilon",
		Aliases: []string{"e"},
		Usage:   "absolute tolerance for score equality",
		Value:   differ.DefaultEpsilon,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PKDIFF_EPSILON")),
		Validator: func(value float64) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	configSources(ns, cfg, epsilonFlag.Name, &epsilonFlag.Sources)

	symmetricFlag := &cli.BoolFlag{
		Name:  "symmetric",
		Usage: "also report sequences found only in RIGHT",
	}
	configSources(ns, cfg, symmetricFlag.Name, &symmetricFlag.Sources)

	zeroFlag := &cli.BoolFlag{
		Name:  "zero-as-missing",
		Usage: "treat a stored 0 score as an absent entry",
	}
	configSources(ns, cfg, zeroFlag.Name, &zeroFlag.Sources)

	flags := append([]cli.Flag{
		thresholdFlag,
		epsilonFlag,
		symmetricFlag,
		zeroFlag,
		&cli.StringFlag{
			Name:  "build-info",
			Usage: "derive the threshold from a database build info JSON file",
		},
		&cli.StringSliceFlag{
			Name:  "trace",
			Usage: "print the comparison of SEQ:BRANCH to stderr (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "print sequence and entry count checks to stderr",
		},
		&cli.StringFlag{
			Name:  "report",
			Usage: "write the report to `FILE` instead of stdout",
		},
		schemaFlag(),
	}, NewGlobalFlags(ns, cfg)...)
	flags = append(flags, NewRemoteFlags()...)

	return &cli.Command{
		Name:      "compare",
		Usage:     "compare two phylo-k-mer score dumps",
		UsageText: "pkdiff compare [options] LEFT RIGHT",
		Description: "Reports every (sequence, branch) pair of LEFT whose score differs\n" +
			"from RIGHT beyond the threshold and tolerance. Either dump may be a\n" +
			"path, an s3://bucket/key[?versionId=V] URL or - for standard input.\n" +
			"Exits 0 when the dumps match, 1 when they differ and 2 on error.",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: compareCommandAction,
	}
}

// resolveThreshold picks the threshold from, in order, an explicit
// --threshold (flag, env or config), --build-info, then the default.
func resolveThreshold(cmd *cli.Command) (float64, error) {
	if cmd.IsSet("threshold") {
		return cmd.Float("threshold"), nil
	}
	if path := cmd.String("build-info"); path != "" {
		p, err := threshold.DefaultParams().FromBuildInfo(path)
		if err != nil {
			return 0, err
		}
		t, err := p.Threshold()
		if err != nil {
			return 0, err
		}
		log.Debugf("threshold from build info: omega=%g states=%s k=%d t=%g", p.Omega, p.States, p.K, t)
		return t, nil
	}
	return threshold.Default, nil
}

// traceOption builds the trace hook. Keys come from --trace or, when the flag
// is absent, the config "trace" list. With PKDIFF_LOG=trace and no keys every
// pair is logged.
func traceOption(cmd *cli.Command) (differ.Option, error) {
	specs := cmd.StringSlice("trace")
	if len(specs) == 0 {
		specs, _ = config.GetStringSlice("trace", nil)
	}

	keys := make([]differ.Key, 0, len(specs))
	for _, s := range specs {
		k, err := differ.ParseKey(s)
		if err != nil {
			return nil, usageErrorf(cmd.Name, "%v", err)
		}
		keys = append(keys, k)
	}

	if len(keys) > 0 {
		w := cmd.Root().ErrWriter
		return differ.WithTrace(func(key differ.Key, left, right differ.Score, negligible bool) {
			fmt.Fprintf(w, "trace %s left=%s right=%s negligible=%t\n",
				key, traceScore(left), traceScore(right), negligible)
		}, keys...), nil
	}

	if log.TraceEnabled() {
		return differ.WithTrace(func(key differ.Key, left, right differ.Score, negligible bool) {
			log.WithFields(map[string]interface{}{
				"key":        key.String(),
				"left":       traceScore(left),
				"right":      traceScore(right),
				"negligible": negligible,
			}).Debug("TRACE: pair")
		}), nil
	}

	return nil, nil
}

func traceScore(s differ.Score) string {
	if !s.Valid {
		return "-"
	}
	return output.FormatScore(s.Value)
}

// writeSummary prints the sequence and entry count checks.
func writeSummary(w io.Writer, left, right *dump.Dataset, report *differ.Report) {
	check := func(name string, l, r int) {
		status := "OK"
		if l != r {
			status = "DIFF"
		}
		fmt.Fprintf(w, "%-10s %12d %12d  %s\n", name, l, r, status)
	}
	check("sequences", left.Len(), right.Len())
	check("entries", left.Entries(), right.Entries())
	fmt.Fprintf(w, "%-10s %12d\n", "reported", report.Len())
}
