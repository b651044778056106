// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curvemath

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// CurveParams houses the parameters of a short Weierstrass curve
// y^2 = x^3 + A*x + B over the prime field P, along with the order N of the
// subgroup generated by the base point (Gx, Gy).
//
// All fields are treated as read-only once registered.  Callers must not
// mutate the big integers a params instance points to.
type CurveParams struct {
	// Name is the canonical lowercase name of the curve.
	Name string

	// P is the prime of the underlying field.
	P *big.Int

	// N is the prime order of the base point subgroup.
	N *big.Int

	// HalfN is N >> 1, provided since signature canonicality checks
	// compare S against it constantly.
	HalfN *big.Int

	// A and B are the curve equation coefficients.  A is zero for
	// secp256k1.
	A *big.Int
	B *big.Int

	// Gx and Gy are the affine coordinates of the base point.
	Gx *big.Int
	Gy *big.Int

	// BitSize is the size of the field in bits.
	BitSize int
}

// ByteSize returns the number of bytes required to represent a full-width
// field element or scalar.
func (c *CurveParams) ByteSize() int {
	return (c.BitSize + 7) / 8
}

// Generator returns the base point of the curve as a fresh Point.
func (c *CurveParams) Generator() *Point {
	return NewPoint(new(big.Int).Set(c.Gx), new(big.Int).Set(c.Gy))
}

// fromHex converts the passed hex string into a big integer pointer and will
// panic if there is an error.  This is only provided for the hard-coded
// constants so errors in the source code can be detected.  It will only (and
// must only) be called with hard-coded values.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

// secp256k1 is the Koblitz curve used by Bitcoin and Decred signatures.
// Parameters are from SEC 2, Version 2.0, section 2.4.1.
var secp256k1 = &CurveParams{
	Name:    "secp256k1",
	P:       fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
	N:       fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
	HalfN:   fromHex("7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0"),
	A:       big.NewInt(0),
	B:       big.NewInt(7),
	Gx:      fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
	Gy:      fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
	BitSize: 256,
}

// secp256r1 is NIST P-256, included so conformance vectors targeting it can
// be analyzed with the same code paths.  Parameters are from SEC 2, Version
// 2.0, section 2.4.2.
var secp256r1 = &CurveParams{
	Name:    "secp256r1",
	P:       fromHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
	N:       fromHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
	HalfN:   fromHex("7fffffff800000007fffffffffffffffde737d56d38bcf4279dce5617e3192a8"),
	A:       fromHex("ffffffff00000001000000000000000000000000fffffffffffffffffffffffc"),
	B:       fromHex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
	Gx:      fromHex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
	Gy:      fromHex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
	BitSize: 256,
}

// namedCurves maps every recognized curve name, including aliases, to its
// parameter entry.
var namedCurves = map[string]*CurveParams{
	"secp256k1": secp256k1,
	"secp256r1": secp256r1,
	"p-256":     secp256r1,
	"p256":      secp256r1,
}

// Secp256k1 returns the parameters for the secp256k1 curve, the default for
// all signature analysis in this module.
func Secp256k1() *CurveParams {
	return secp256k1
}

// Secp256r1 returns the parameters for the secp256r1 (NIST P-256) curve.
func Secp256r1() *CurveParams {
	return secp256r1
}

// CurveByName returns the parameters for the given named curve.  Matching is
// case-insensitive and common aliases such as "P-256" are recognized.
func CurveByName(name string) (*CurveParams, error) {
	params, ok := namedCurves[strings.ToLower(name)]
	if !ok {
		str := fmt.Sprintf("no curve parameters registered for %q", name)
		return nil, makeError(ErrUnknownCurve, str)
	}
	return params, nil
}

// HashToInt converts a message digest to an integer suitable for use in the
// signature equations over the given curve.  Per SEC 1, the digest is
// truncated to the bit length of the group order when it is longer, matching
// the behavior of OpenSSL and crypto/ecdsa.
func HashToInt(hash []byte, curve *CurveParams) *big.Int {
	orderBits := curve.N.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(hash) > orderBytes {
		hash = hash[:orderBytes]
	}

	ret := new(big.Int).SetBytes(hash)
	excess := len(hash)*8 - orderBits
	if excess > 0 {
		ret.Rsh(ret, uint(excess))
	}
	return ret
}

// ScalarFromHex decodes a hex-encoded scalar after validating it at the
// boundary: the string must be non-empty, even length, and consist only of
// hex digits in either case.  The decoded value is interpreted as an
// unsigned big-endian integer and is NOT reduced by any modulus.
func ScalarFromHex(s string) (*big.Int, error) {
	if len(s) == 0 {
		return nil, makeError(ErrInvalidHex, "hex value is empty")
	}
	if len(s)%2 != 0 {
		str := fmt.Sprintf("hex value %q has odd length %d", s, len(s))
		return nil, makeError(ErrInvalidHex, str)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		str := fmt.Sprintf("hex value %q is malformed: %v", s, err)
		return nil, makeError(ErrInvalidHex, str)
	}
	return new(big.Int).SetBytes(b), nil
}

// BytesFromHex decodes a hex-encoded byte string with the same boundary
// validation as ScalarFromHex.  An empty string decodes to an empty, non-nil
// byte slice.
func BytesFromHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		str := fmt.Sprintf("hex value %q has odd length %d", s, len(s))
		return nil, makeError(ErrInvalidHex, str)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		str := fmt.Sprintf("hex value %q is malformed: %v", s, err)
		return nil, makeError(ErrInvalidHex, str)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}
