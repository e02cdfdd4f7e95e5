// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"

	awsx "github.com/pkdiff/pkdiff/internal/aws"
	"github.com/pkdiff/pkdiff/internal/dump"
	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/meta"
	"github.com/pkdiff/pkdiff/internal/output"
	"github.com/pkdiff/pkdiff/internal/source"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// sourceOptions builds the dump source options from the remote flags and the
// root command's reader.
func sourceOptions(cmd *cli.Command) []source.Option {
	opts := []source.Option{
		source.WithAWS(
			awsx.WithProfile(cmd.String("profile")),
			awsx.WithRegion(cmd.String("region")),
			awsx.WithEndpoint(cmd.String("endpoint")),
		),
	}
	if r := cmd.Root().Reader; r != nil {
		opts = append(opts, source.WithStdin(r))
	}
	return opts
}

// loadDumps loads every spec in order. At most one spec may be stdin.
func loadDumps(ctx context.Context, cmd *cli.Command, specs []string) ([]*dump.Dataset, error) {
	stdin := 0
	for _, s := range specs {
		if source.IsStdin(s) {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, usageErrorf(cmd.Name, "standard input can be used for only one dump")
	}

	opts := sourceOptions(cmd)
	sets := make([]*dump.Dataset, 0, len(specs))
	for _, s := range specs {
		ds, err := dump.Load(ctx, s, opts...)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded %s: sequences=%d entries=%d", ds.Name, ds.Len(), ds.Entries())
		sets = append(sets, ds)
	}
	return sets, nil
}

// tableOptions resolves the presentation flags against the root writer.
func tableOptions(cmd *cli.Command) (output.TableOptions, error) {
	color, err := useColor(cmd, cmd.Root().Writer)
	if err != nil {
		return output.TableOptions{}, err
	}
	return output.TableOptions{
		Color:   color,
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
	}, nil
}

func useColor(cmd *cli.Command, w io.Writer) (bool, error) {
	f, _ := w.(*os.File)
	return output.UseColor(cmd.String("color"), f)
}

// writeOut copies a fully rendered buffer to the root writer.
func writeOut(cmd *cli.Command, b []byte) error {
	if _, err := cmd.Root().Writer.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// DumpSchemaIfRequested writes the document schema for the provided type to
// the root writer when --schema is set, and returns true if it handled the
// request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, cmd.Root().Writer)
		return true
	}
	return false
}

func schemaFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "schema",
		Usage: "print the fields of the json and yaml output, then exit",
	}
}
