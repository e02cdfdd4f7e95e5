// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two score dumps under a tolerance rule and collects
// the entries that differ meaningfully into a Report. It also compares two
// saved JSON reports against each other (see Regress).
package differ
