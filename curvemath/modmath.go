// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curvemath

import (
	"fmt"
	"math/big"
)

var bigOne = big.NewInt(1)

// ModAdd returns (a + b) mod m.  The result is a fresh integer in [0, m) and
// the operands are not mutated.
func ModAdd(a, b, m *big.Int) *big.Int {
	sum := new(big.Int).Add(a, b)
	return sum.Mod(sum, m)
}

// ModSub returns (a - b) mod m.  big.Int.Mod performs Euclidean division, so
// the result is a fresh integer in [0, m) even when a < b; a negative
// representation is never returned.
func ModSub(a, b, m *big.Int) *big.Int {
	diff := new(big.Int).Sub(a, b)
	return diff.Mod(diff, m)
}

// ModMul returns (a * b) mod m as a fresh integer in [0, m).
func ModMul(a, b, m *big.Int) *big.Int {
	prod := new(big.Int).Mul(a, b)
	return prod.Mod(prod, m)
}

// ModInverse returns the multiplicative inverse of a modulo m using the
// extended Euclidean algorithm, as a fresh integer in [0, m).
//
// The moduli used in this module are prime, so the only failure case that
// can occur in practice is a ≡ 0 (mod m).  It is reported explicitly as
// ErrNotInvertible rather than producing an unusable value, since a wrong
// inverse would silently corrupt every recovery formula built on top of it.
// A composite modulus sharing a factor with a is rejected the same way.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		str := fmt.Sprintf("modulus %v is not positive", m)
		return nil, makeError(ErrNotInvertible, str)
	}

	reduced := new(big.Int).Mod(a, m)
	if reduced.Sign() == 0 {
		return nil, makeError(ErrNotInvertible,
			"operand is congruent to zero and has no inverse")
	}

	// Iterative extended Euclidean algorithm.  Loop invariant:
	//   oldR = oldS*reduced (mod m) and r = s*reduced (mod m).
	oldR, r := new(big.Int).Set(reduced), new(big.Int).Set(m)
	oldS, s := big.NewInt(1), big.NewInt(0)
	for r.Sign() != 0 {
		q := new(big.Int).Quo(oldR, r)

		nextR := new(big.Int).Mul(q, r)
		nextR.Sub(oldR, nextR)
		oldR, r = r, nextR

		nextS := new(big.Int).Mul(q, s)
		nextS.Sub(oldS, nextS)
		oldS, s = s, nextS
	}

	// gcd(reduced, m) landed in oldR.  Anything other than one means the
	// operand is not invertible for this modulus.
	if oldR.Cmp(bigOne) != 0 {
		str := fmt.Sprintf("operand shares factor gcd=%v with the modulus", oldR)
		return nil, makeError(ErrNotInvertible, str)
	}

	return oldS.Mod(oldS, m), nil
}
