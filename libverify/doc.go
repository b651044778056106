// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package libverify provides concrete conformance.Verifier bindings over the
verification libraries this project can exercise out of the box.

Four adapters are available.  Local verifies with this module's own strict
DER codec and curve arithmetic and serves as the reference behavior.
Decred binds the decred secp256k1 module, whose DER parser enforces exact
lengths.  BtcecS256 binds the btcec implementation, whose parser trims the
input to the declared sequence length and therefore tolerates trailing
bytes, which makes it a useful in-tree subject for malleability probes.
StdLib binds crypto/ecdsa for the secp256r1 curve.

Every adapter follows the conformance contract: verification never
panics, and unknown curves, unparseable keys, and unparseable signatures
are reported as rejections rather than errors.
*/
package libverify
