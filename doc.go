// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
sigfixer is an ECDSA signature security-analysis tool written in Go.

It strictly parses DER signatures and reports every encoding deviation,
generates the deterministic malleability variants of a canonical signature,
recovers private keys from nonce reuse or a known nonce, and runs
Wycheproof-format conformance vector files and targeted BER-acceptance
probes against pluggable verification libraries.

The default options are sane for most users.  The long form of all options
(except -C) can also be specified in a configuration file that is
automatically parsed when sigfixer starts up.  By default, the configuration
file is located at ~/.sigfixer/sigfixer.conf.  The -C (--configfile) flag can
be used to override this location.

Usage:

	sigfixer [OPTIONS] <command> [COMMAND OPTIONS]

Application Options:

	-V, --version        Display version information and exit
	-C, --configfile=    Path to configuration file
	    --logdir=        Directory to log output
	    --nofilelogging  Disable file logging
	    --cpuprofile=    Write CPU profile to the specified file
	-d, --debuglevel=    Logging level for all subsystems {trace, debug, info,
	                     warn, error, critical} -- You may also specify
	                     <subsystem>=<level>,<subsystem2>=<level>,... to set
	                     the log level for individual subsystems -- Use show
	                     to list available subsystems (info)

Commands:

	analyze       Strictly parse a DER signature and report every encoding
	              deviation
	variants      Generate the malleability variant catalogue for a canonical
	              signature
	recover       Recover a private key from two signatures sharing a nonce
	recovernonce  Recover a private key from one signature with a known nonce
	wycheproof    Run a Wycheproof vector file against a verification library
	cve42461      Probe a verification library for BER signature acceptance

Help Options:

	-h, --help           Show this help message
*/
package main
