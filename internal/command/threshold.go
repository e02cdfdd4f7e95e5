// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/meta"
	"github.com/pkdiff/pkdiff/internal/output"
	"github.com/pkdiff/pkdiff/internal/threshold"
)

// thresholdResult is the structured form of the threshold command's output.
type thresholdResult struct {
	threshold.Params `yaml:",inline"`
	Threshold        float64 `json:"threshold" yaml:"threshold"`
}

// thresholdCommandAction computes the score threshold a database build uses.
// Explicit flags override --build-info, which overrides the defaults.
func thresholdCommandAction(_ context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.NArg() != 0 {
		return usageErrorf(cmd.Name, "unexpected argument %q", cmd.Args().First())
	}

	p := threshold.DefaultParams()
	if path := cmd.String("build-info"); path != "" {
		var err error
		if p, err = p.FromBuildInfo(path); err != nil {
			return err
		}
	}
	if cmd.IsSet("omega") {
		p.Omega = cmd.Float("omega")
	}
	if cmd.IsSet("states") {
		p.States = cmd.String("states")
	}
	if cmd.IsSet("k") {
		p.K = cmd.Int("k")
	}

	t, err := p.Threshold()
	if err != nil {
		return err
	}
	res := thresholdResult{Params: p, Threshold: t}

	var buf bytes.Buffer
	switch format := cmd.String("output"); format {
	case output.FormatJSON:
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal threshold: %w", err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	case output.FormatYAML:
		b, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to marshal threshold: %w", err)
		}
		buf.Write(b)
	case output.FormatTable:
		rows := []map[string]interface{}{{
			"omega": p.Omega, "states": p.States, "k": p.K, "threshold": t,
		}}
		opts, err := tableOptions(cmd)
		if err != nil {
			return err
		}
		output.TableWriter(&buf, rows, thresholdColumns, opts)
	default:
		fmt.Fprintln(&buf, output.FormatScore(t))
	}

	return writeOut(cmd, buf.Bytes())
}

var thresholdColumns = []output.Column{
	{Key: "omega", Title: "OMEGA"},
	{Key: "states", Title: "STATES"},
	{Key: "k", Title: "K"},
	{Key: "threshold", Title: "THRESHOLD"},
}

// thresholdCommandBuilder constructs the cli.Command for "threshold".
func thresholdCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "threshold"
	cfg := meta.ConfigSource()

	omegaFlag := &cli.FloatFlag{
		Name:  "omega",
		Usage: "score threshold parameter used by the builder",
		Value: threshold.DefaultOmega,
		Validator: func(value float64) error {
			return FlagValidators(value, PositiveValidator)
		},
	}
	configSources(ns, cfg, omegaFlag.Name, &omegaFlag.Sources)

	statesFlag := &cli.StringFlag{
		Name:  "states",
		Usage: "sequence type, nucl or amino",
		Value: threshold.DefaultStates,
		Validator: func(value string) error {
			return FlagValidators(value, StatesValidator)
		},
	}
	statesFlag = NameSpacedValueChainFlagFromConfigFile(ns, cfg, statesFlag)

	kFlag := &cli.IntFlag{
		Name:  "k",
		Usage: "k-mer size",
		Value: threshold.DefaultK,
		Validator: func(value int) error {
			return FlagValidators(value, PositiveValidator)
		},
	}
	configSources(ns, cfg, kFlag.Name, &kFlag.Sources)

	flags := append([]cli.Flag{
		omegaFlag,
		statesFlag,
		kFlag,
		&cli.StringFlag{
			Name:  "build-info",
			Usage: "read omega, states and k from a database build info JSON `FILE`",
		},
	}, NewGlobalFlags(ns, cfg)...)

	return &cli.Command{
		Name:      "threshold",
		Usage:     "compute the score threshold (omega/states)^k",
		UsageText: "pkdiff threshold [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: thresholdCommandAction,
	}
}
