// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/base58"
	"github.com/decred/dcrd/bech32"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/crypto/ripemd160"
)

// checkPubKey validates that the bytes are a plausible SEC 1 serialized
// public key: 33 bytes with an 0x02/0x03 prefix or 65 bytes with an 0x04
// prefix.  Curve membership is the caller's concern; address hashing only
// needs the right container.
func checkPubKey(serializedPubKey []byte) error {
	switch {
	case len(serializedPubKey) == 33 &&
		(serializedPubKey[0] == 0x02 || serializedPubKey[0] == 0x03):
		return nil
	case len(serializedPubKey) == 65 && serializedPubKey[0] == 0x04:
		return nil
	}
	str := fmt.Sprintf("%d bytes with prefix %#02x is not a serialized "+
		"public key", len(serializedPubKey), leadingByte(serializedPubKey))
	return makeError(ErrInvalidPubKey, str)
}

// leadingByte returns the first byte or zero for empty input, for error
// messages only.
func leadingByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// Hash160 returns the address digest of the serialized public key for the
// network family: RIPEMD-160 over SHA-256 for Bitcoin, RIPEMD-160 over
// BLAKE-256 for Decred.
func Hash160(buf []byte, params *Params) []byte {
	hasher := ripemd160.New()
	switch params.Family {
	case FamilyDecred:
		inner := blake256.Sum256(buf)
		hasher.Write(inner[:])
	default:
		inner := sha256.Sum256(buf)
		hasher.Write(inner[:])
	}
	return hasher.Sum(nil)
}

// PubKeyHashAddr returns the pay-to-pubkey-hash address of the serialized
// public key on the given network.  Bitcoin-family addresses are the version
// prefix, the 20-byte key hash, and a double SHA-256 checksum in Base58;
// Decred-family addresses carry a two-byte version and a double BLAKE-256
// checksum.
func PubKeyHashAddr(serializedPubKey []byte, params *Params) (string, error) {
	if err := checkPubKey(serializedPubKey); err != nil {
		return "", err
	}
	pkHash := Hash160(serializedPubKey, params)

	if params.Family == FamilyDecred {
		var netID [2]byte
		copy(netID[:], params.PubKeyHashAddrID)
		return base58.CheckEncode(pkHash[:ripemd160.Size], netID), nil
	}

	a := make([]byte, 0, len(params.PubKeyHashAddrID)+ripemd160.Size+4)
	a = append(a, params.PubKeyHashAddrID...)
	a = append(a, pkHash...)
	a = append(a, checksumDoubleSHA256(a)...)
	return base58.Encode(a), nil
}

// WitnessPubKeyHashAddr returns the native pay-to-witness-pubkey-hash
// address of the serialized public key: a bech32 encoding of the witness
// version 0 and the 20-byte key hash under the network's human-readable
// part.  Witness programs commit to the compressed key form, so the
// uncompressed form is rejected here rather than deriving an unspendable
// address.
func WitnessPubKeyHashAddr(serializedPubKey []byte, params *Params) (string, error) {
	if params.Bech32HRP == "" {
		str := fmt.Sprintf("network %s has no segwit address form",
			params.Name)
		return "", makeError(ErrUnsupportedNetwork, str)
	}
	if err := checkPubKey(serializedPubKey); err != nil {
		return "", err
	}
	if len(serializedPubKey) != 33 {
		return "", makeError(ErrInvalidPubKey,
			"witness programs require the compressed public key form")
	}

	pkHash := Hash160(serializedPubKey, params)
	converted, err := bech32.ConvertBits(pkHash, 8, 5, true)
	if err != nil {
		return "", err
	}
	program := make([]byte, 0, len(converted)+1)
	program = append(program, 0x00)
	program = append(program, converted...)
	return bech32.Encode(params.Bech32HRP, program)
}
