// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libverify

import (
	"strings"

	"github.com/btcsuite/btcd/btcec"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
)

// btcecVerifier implements conformance.Verifier over btcec.
type btcecVerifier struct{}

// Verify parses the key and signature with btcec and evaluates its
// verification routine.  Only the secp256k1 curve is supported; anything
// else is rejected.
func (btcecVerifier) Verify(curveID string, digest, sig, pubKey []byte) bool {
	if strings.ToLower(curveID) != "secp256k1" {
		return false
	}
	pub, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return false
	}
	signature, err := btcec.ParseDERSignature(sig, btcec.S256())
	if err != nil {
		return false
	}
	return signature.Verify(digest, pub)
}

// BtcecS256 returns the verifier bound to btcec.  Note that its parser
// trims the input to the declared sequence length before any other check,
// so signatures followed by trailing bytes are accepted even in DER mode.
// Malleability probes against this adapter are expected to report it
// vulnerable through the trailing-garbage variant.
func BtcecS256() conformance.Verifier {
	return btcecVerifier{}
}
