// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other pkdiff packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version recorded in the build info, or "dev" for
// local builds. It can be overridden with -ldflags "-X ...version.Version=".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()
