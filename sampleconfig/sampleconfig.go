// Copyright (c) 2017-2022 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sampleconfig provides a single function that returns the contents
// of the sample configuration file for sigfixer.  This is provided for tools
// that perform automatic configuration and would like to ensure the generated
// configuration file not only includes the specifically configured values, but
// also provides samples of other configuration options.
package sampleconfig

import (
	_ "embed"
)

// sampleSigfixerConf is a string containing the commented example config for
// sigfixer.
//
//go:embed sample-sigfixer.conf
var sampleSigfixerConf string

// Sigfixer returns a string containing the commented example config for
// sigfixer.
func Sigfixer() string {
	return sampleSigfixerConf
}
