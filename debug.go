// Copyright (c) 2025 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// This file raises the default GODEBUG settings when building with newer Go
// releases so the security updates and behavior changes that are disabled by
// default for backwards compatibility are enabled for this program.
//
// Toolchains newer than the version declared in go.mod compile with GODEBUG
// flags that preserve the old behaviors.  Nothing here depends on any of the
// preserved behaviors, so the new defaults are opted into explicitly.
//
// The gated version below must be checked against the release notes for each
// new Go release before it is bumped.

//go:build go1.25

//go:debug default=go1.25

package main
