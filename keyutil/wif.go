// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyutil

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/decred/base58"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// privKeyBytesLen is the serialized length of a private key scalar.
const privKeyBytesLen = 32

// sigTypeSecp256k1 is the Decred WIF signature type byte for secp256k1
// ECDSA keys.
const sigTypeSecp256k1 = 0x00

// checksumDoubleSHA256 returns the first four bytes of SHA-256 applied
// twice, the checksum used throughout the Bitcoin family.
func checksumDoubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// privKeyBytes serializes the private key as a zero-padded 32-byte
// big-endian scalar, rejecting values that cannot fit.
func privKeyBytes(privKey *big.Int) ([privKeyBytesLen]byte, error) {
	var key [privKeyBytesLen]byte
	if privKey == nil || privKey.Sign() <= 0 {
		return key, makeError(ErrInvalidPrivateKey,
			"private key must be a positive scalar")
	}
	if len(privKey.Bytes()) > privKeyBytesLen {
		str := fmt.Sprintf("private key is %d bytes which exceeds the "+
			"32-byte key field", len(privKey.Bytes()))
		return key, makeError(ErrInvalidPrivateKey, str)
	}
	privKey.FillBytes(key[:])
	return key, nil
}

// EncodeWIF returns the wallet import format string for the private key on
// the given network.
//
// The Bitcoin family encodes:
//
//	prefix byte || 32-byte key || optional 0x01 compression marker ||
//	first 4 bytes of double SHA-256
//
// where the compression marker records that the corresponding address is
// derived from the compressed public key.
//
// The Decred family encodes:
//
//	2 prefix bytes || signature type byte || 32-byte key ||
//	first 4 bytes of BLAKE-256
//
// with no compression marker since Decred keys are always compressed; the
// compressed argument is ignored for such networks.
func EncodeWIF(privKey *big.Int, compressed bool, params *Params) (string, error) {
	key, err := privKeyBytes(privKey)
	if err != nil {
		return "", err
	}

	switch params.Family {
	case FamilyDecred:
		a := make([]byte, 0, len(params.PrivateKeyID)+1+privKeyBytesLen+4)
		a = append(a, params.PrivateKeyID...)
		a = append(a, sigTypeSecp256k1)
		a = append(a, key[:]...)
		cksum := chainhash.HashB(a)
		a = append(a, cksum[:4]...)
		return base58.Encode(a), nil

	default:
		a := make([]byte, 0, len(params.PrivateKeyID)+privKeyBytesLen+1+4)
		a = append(a, params.PrivateKeyID...)
		a = append(a, key[:]...)
		if compressed {
			a = append(a, 0x01)
		}
		a = append(a, checksumDoubleSHA256(a)...)
		return base58.Encode(a), nil
	}
}
