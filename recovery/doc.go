// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package recovery solves the ECDSA signing equations for the private key
when the nonce discipline has been violated.

Two attacks are implemented.  Nonce reuse takes two signatures sharing an R
component and eliminates the private key between their signing equations to
solve first for the nonce and then for the key.  Known nonce takes a single
signature together with its leaked nonce and solves the one remaining
equation directly.

Both solvers validate that the recovered scalars lie in (0, N) and that
they actually reproduce the provided R component before reporting success,
so arithmetic coincidences on garbage inputs are rejected rather than
presented as keys.  Every algebraic step is recorded in order on the result
as a first-class audit trail.

Recovered keys are returned together with the derived public key and its
wallet encodings (WIF, legacy address, and where the network supports it a
v0 witness address) so a finding can be checked against a target address
directly.

All failures are reported as typed errors distinguishing unusable inputs
from engine faults; nothing in this package panics on adversarial input.
*/
package recovery
