// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders difference reports and dump statistics as plain
// text, JSON, YAML or a table.
package output
