// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libverify

import (
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
)

// decredVerifier implements conformance.Verifier over the decred secp256k1
// module.
type decredVerifier struct{}

// Verify parses the key and signature with the decred secp256k1 module and
// evaluates its verification routine.  Only the secp256k1 curve is
// supported; anything else is rejected.
func (decredVerifier) Verify(curveID string, digest, sig, pubKey []byte) bool {
	if strings.ToLower(curveID) != "secp256k1" {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return signature.Verify(digest, pub)
}

// Decred returns the verifier bound to the decred secp256k1 module.  Its
// DER parser requires the declared sequence length to cover the input
// exactly, so trailing bytes and BER paddings are rejected.
func Decred() conformance.Verifier {
	return decredVerifier{}
}
