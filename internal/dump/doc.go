// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dump loads plain-text phylo-k-mer score dumps into an immutable,
// ordered Dataset.
//
// A dump is line oriented. A line without a TAB names a sequence (k-mer) and
// starts its block; each following "score<TAB>branch" line scores that
// sequence on one branch of the reference tree:
//
//	ACGTAC
//		0.0031	12
//		0.0107	13
//	ACGTAG
//		0.0029	4
//
// Surrounding whitespace is ignored, blank lines are skipped, and a repeated
// header resets the earlier block for that sequence.
package dump
