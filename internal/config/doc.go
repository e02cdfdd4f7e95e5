// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for pkdiff's user
// configuration. The configuration is an optional YAML document located in
// the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/pkdiff.yaml or $HOME/.config/pkdiff.yaml
//   - Windows: %APPDATA%/pkdiff.yaml
//
// PKDIFF_CFG_FILE overrides the location. The same file also feeds command
// flag defaults (see internal/command).
package config
