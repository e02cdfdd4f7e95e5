// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source resolves a dump argument into something that can be read.
//
// Three forms are understood:
//
//	db.txt                          a local file
//	-                               standard input
//	s3://bucket/key?versionId=v     an S3 object, optionally pinned to a version
//
// Pinned S3 objects are immutable, so their bodies are kept in the local cache
// (see internal/cacheutil) and later runs read them from disk.
package source
