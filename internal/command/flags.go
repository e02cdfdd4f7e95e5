// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/output"
)

// NewGlobalFlags returns the presentation flags shared by every command that
// prints results. params[0] is the command namespace and params[1] the config
// file; when both are given, values can also come from the config file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml, table)",
		Value:   output.FormatText,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PKDIFF_OUTPUT")),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	colorFlag := &cli.StringFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "colorize table and delta output (auto, always, never)",
		Value:   output.ColorAuto,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PKDIFF_COLOR")),
		Validator: func(value string) error {
			return FlagValidators(value, ColorValidator)
		},
	}
	paddingFlag := &cli.IntFlag{
		Name:  "padding",
		Usage: "spaces between table columns",
		Value: 2,
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}

	if len(params) == 2 {
		outputFlag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], outputFlag)
		colorFlag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], colorFlag)
		configSources(params[0], params[1], paddingFlag.Name, &paddingFlag.Sources)
	}

	flags = []cli.Flag{
		outputFlag,
		colorFlag,
		paddingFlag,
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show column titles with table output",
			Value:   false,
		},
	}

	return
}

// NewRemoteFlags returns the flags that tune how s3:// dumps are fetched.
func NewRemoteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "profile",
			Usage: "AWS shared config profile for s3:// dumps",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PKDIFF_AWS_PROFILE"),
			),
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for s3:// dumps",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PKDIFF_AWS_REGION"),
			),
		},
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "S3-compatible endpoint URL for s3:// dumps",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PKDIFF_S3_ENDPOINT"),
			),
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	configSources(ns, path, flag.Name, &flag.Sources)
	return flag
}

// configSources appends the config file lookups for name to chain, namespaced
// key first ("compare.threshold") then the global key ("threshold"). A
// missing config file adds nothing.
func configSources(ns, path, name string, chain *cli.ValueSourceChain) {
	if path == "" {
		return
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}
