// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package conformance drives third-party ECDSA verification libraries through
known-good and known-bad signature vectors.

The library under test is injected behind the single-method Verifier
interface, so runner logic never depends on a particular binding.  Two
runners are provided.  RunSuite plays Wycheproof-style vector sets,
classifying each case as valid, invalid, or acceptable and scoring the
library verdict against the classification; every case is additionally
parsed with the local strict DER analyzer so mismatches come annotated
with the structural findings that most likely explain the disagreement.
RunCVE42461 probes a library with deterministic malleability mutations of
one canonical signature and reports whether any BER-style variant is
accepted, which is the CVE-2024-42461 class of signature malleability bug.

Cases are independent, so RunSuite optionally fans out across a bounded
number of goroutines.  A panic inside the injected adapter is caught per
case and normalized to a rejection, keeping one faulty vector or flaky
binding from aborting a whole run.

This package performs no I/O.  Loading vector files, hashing messages with
the digest function a vector group names, and mapping curve identifiers
are the caller's responsibility.
*/
package conformance
