// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes Markdown and man page references for every pkdiff
// subcommand, read from the live command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/command"
	"github.com/pkdiff/pkdiff/internal/version"
)

type Subcommand struct {
	ID          string
	Short       string
	Description string
	Usage       string
	Flags       []Flag
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const markdownTemplate = `# pkdiff {{ .ID }}

{{ .Short }}

## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `
{{ if .Description }}
{{ .Description }}
{{ end }}
## Flags
{{ range .Flags }}
- ` + "`{{ .Syntax }}`" + ` {{ .Description }}{{ if .Default }} (default: {{ .Default }}){{ end }}{{ if .Env }} [{{ .Env }}]{{ end }}
{{- end }}

_pkdiff {{ .Version }}, {{ .Date }}_
`

const manTemplate = `.TH PKDIFF-{{ .IDUpper }} 1 "{{ .Date }}" "pkdiff {{ .Version }}"
.SH NAME
pkdiff-{{ .ID }} \- {{ .Short }}
.SH SYNOPSIS
{{ .Usage }}
{{- if .Description }}
.SH DESCRIPTION
{{ .Description }}
{{- end }}
.SH OPTIONS
{{- range .Flags }}
.TP
.B {{ .Syntax }}
{{ .Description }}{{ if .Default }} Default: {{ .Default }}.{{ end }}
{{- end }}
`

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(2)
	}

	subs, err := subcommands(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	written, err := generate(os.Args[1], subs, getVersion(), time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Println("Generated", path)
	}
}

// subcommands reads every subcommand and its flags from the pkdiff app.
func subcommands(ctx context.Context) ([]Subcommand, error) {
	app, err := command.InitApp(ctx, []string{"pkdiff"})
	if err != nil {
		return nil, err
	}

	var subs []Subcommand
	for _, cmd := range app.Commands {
		sub := Subcommand{
			ID:          cmd.Name,
			Short:       cmd.Usage,
			Description: cmd.Description,
			Usage:       cmd.UsageText,
		}
		for _, f := range cmd.Flags {
			sub.Flags = append(sub.Flags, flagDoc(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs, nil
}

func flagDoc(f cli.Flag) Flag {
	names := f.Names()
	syntax := make([]string, 0, len(names))
	for _, n := range names {
		if len(n) == 1 {
			syntax = append(syntax, "-"+n)
		} else {
			syntax = append(syntax, "--"+n)
		}
	}

	doc := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
	if df, ok := f.(cli.DocGenerationFlag); ok {
		doc.Description = df.GetUsage()
		if df.TakesValue() {
			doc.Syntax += " VALUE"
			doc.Default = df.GetValue()
		}
		doc.Env = strings.Join(df.GetEnvVars(), ", ")
	}
	return doc
}

// generate renders every output type for every subcommand beneath dir and
// returns the written paths.
func generate(dir string, subs []Subcommand, version string, now time.Time) ([]string, error) {
	types := []Outputs{
		{Template: markdownTemplate, Folder: filepath.Join(dir, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(dir, "man", "share", "man1"), Prefix: "pkdiff-", Suffix: ".1"},
	}

	var written []string
	for _, t := range types {
		tmpl, err := template.New(t.Suffix).Parse(t.Template)
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(t.Folder, 0o755); err != nil {
			return written, err
		}

		for _, sub := range subs {
			metadata := TemplateData{
				Subcommand: sub,
				Date:       now.Format("January 2, 2006"),
				Version:    version,
				IDUpper:    strings.ToUpper(sub.ID),
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			file, err := os.Create(path)
			if err != nil {
				return written, err
			}
			err = tmpl.Execute(file, metadata)
			if cerr := file.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return written, fmt.Errorf("failed to render %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to the build version if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return version.Version
	}

	v := strings.TrimSpace(string(out))
	return strings.TrimPrefix(v, "v")
}
