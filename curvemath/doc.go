// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package curvemath provides exact modular and affine elliptic curve arithmetic
over the short Weierstrass curves used by ECDSA signature analysis.

Unlike a production signing implementation, the arithmetic here favors
auditability over speed: every operation works on arbitrary-precision
integers in affine coordinates, values are always fully reduced into
[0, modulus), and nothing is cached between calls.  This makes the package
suitable as an independent cross-check against optimized libraries and as
the numeric foundation for private key recovery, where a silent off-by-one
would produce a wrong key rather than a crash.

# Curves

Curve parameters are provided through a small named-curve table.  The
secp256k1 parameters are the primary entry; secp256r1 (NIST P-256) is
included so conformance vectors targeting that curve can be analyzed with
the same tooling.  Use CurveByName to look up an entry and Secp256k1 for
direct access to the default curve.

# Errors

Errors returned by this package have full support for errors.Is via the
ErrorKind type, so callers can distinguish, for example, a non-invertible
operand (ErrNotInvertible) from a malformed hex scalar (ErrInvalidHex)
without string matching.
*/
package curvemath
