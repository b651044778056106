// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libverify

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"strings"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
)

// stdlibVerifier implements conformance.Verifier over crypto/ecdsa.
type stdlibVerifier struct{}

// Verify evaluates crypto/ecdsa.VerifyASN1 over the P-256 curve.  The
// point is parsed with the curvemath codec since the standard library
// offers no parser that covers both the compressed and uncompressed
// forms without going through deprecated helpers.
func (stdlibVerifier) Verify(curveID string, digest, sig, pubKey []byte) bool {
	switch strings.ToLower(curveID) {
	case "secp256r1", "p-256", "p256":
	default:
		return false
	}

	point, err := curvemath.ParsePoint(pubKey, curvemath.Secp256r1())
	if err != nil || point.IsInfinity() {
		return false
	}
	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: point.X, Y: point.Y}
	return ecdsa.VerifyASN1(pub, digest, sig)
}

// StdLib returns the verifier bound to crypto/ecdsa for the secp256r1
// curve, also recognized under its P-256 aliases.  VerifyASN1 enforces
// strict DER.
func StdLib() conformance.Verifier {
	return stdlibVerifier{}
}
