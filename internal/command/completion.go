// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pkdiff/pkdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for pkdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_pkdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "compare stats threshold regress completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --padding --titles -t"
    local remote="--endpoint --profile --region"

    case "$cmd" in
        compare)
            local opts="$common $remote --build-info --epsilon -e --report --schema --summary --symmetric --threshold -T --trace --zero-as-missing"
            ;;
        stats)
            local opts="$common $remote --schema --sort -s"
            ;;
        threshold)
            local opts="$common --build-info --k --omega --states"
            ;;
        regress)
            local opts="$remote --color -c --ignore -i"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml table" -- "$cur") )
            return 0
            ;;
        --color|-c)
            COMPREPLY=( $(compgen -W "auto always never" -- "$cur") )
            return 0
            ;;
        --states)
            COMPREPLY=( $(compgen -W "nucl amino" -- "$cur") )
            return 0
            ;;
        --build-info|--report)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Dumps and reports are plain files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _pkdiff pkdiff
`

const zshCompletionScript = `#compdef pkdiff

_pkdiff() {
  local -a cmds
  cmds=(
    'compare:compare two phylo-k-mer score dumps'
    'stats:summarize phylo-k-mer score dumps'
    'threshold:compute the score threshold'
    'regress:compare two saved JSON reports'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[colorize output]:mode:(auto always never)'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml table)'
  '--padding[spaces between table columns]:padding'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a remote
  remote=(
  '--endpoint[S3-compatible endpoint URL]:url'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'pkdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    compare)
      _arguments -C \
        $common \
        $remote \
        '--build-info[database build info JSON]:file:_files' \
        '(-e --epsilon)'{-e,--epsilon}'[score tolerance]:epsilon' \
        '--report[write the report to a file]:file:_files' \
        '--schema[print the output fields]' \
        '--summary[print count checks to stderr]' \
        '--symmetric[also report sequences only in RIGHT]' \
        '(-T --threshold)'{-T,--threshold}'[score threshold]:threshold' \
        '*--trace[trace SEQ:BRANCH]:key' \
        '--zero-as-missing[treat 0 scores as absent]' \
        '1:LEFT:_files' \
        '2:RIGHT:_files'
      ;;
    stats)
      _arguments -C \
        $common \
        $remote \
        '--schema[print the output fields]' \
        '(-s --sort)'{-s,--sort}'[sort keys]:keys' \
        '*:FILE:_files'
      ;;
    threshold)
      _arguments -C \
        $common \
        '--build-info[database build info JSON]:file:_files' \
        '--k[k-mer size]:k' \
        '--omega[score threshold parameter]:omega' \
        '--states[sequence type]:type:(nucl amino)'
      ;;
    regress)
      _arguments -C \
        $remote \
        '(-c --color)'{-c,--color}'[colorize the delta]:mode:(auto always never)' \
        '(-i --ignore)'{-i,--ignore}'[top-level keys to ignore]:keys' \
        '1:OLD:_files' \
        '2:NEW:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _pkdiff pkdiff
`

func completionCommandAction(_ context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return usageErrorf(cmd.Name, "cannot detect shell, use pkdiff completion [bash|zsh]")
		}
	default:
		return usageErrorf(cmd.Name, "unsupported shell %q, want bash or zsh", shell)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "pkdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
