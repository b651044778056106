// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libverify

import (
	"math/big"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/dersig"
)

// localVerifier implements conformance.Verifier over this module's own
// codec and arithmetic.
type localVerifier struct{}

// strictlyEncoded reports whether the analysis carries no structural
// deviations.  The high-S warning is a policy finding rather than an
// encoding defect, so it does not count against strictness here, while a
// trailing sighash byte does: it is not part of DER.
func strictlyEncoded(analysis *dersig.SignatureAnalysis) bool {
	if analysis.HasSigHash {
		return false
	}
	for _, issue := range analysis.Issues {
		if issue.Kind != dersig.IssueNonCanonical {
			return false
		}
	}
	return true
}

// Verify parses the signature with the strict DER analyzer and evaluates
// the ECDSA verification equations over the named curve.
func (localVerifier) Verify(curveID string, digest, sig, pubKey []byte) bool {
	curve, err := curvemath.CurveByName(curveID)
	if err != nil {
		return false
	}

	// The signature must be exact DER with both components in [1, N-1].
	// High-S signatures are accepted: the low-S rule is a transaction
	// relay policy, not part of the verification equations.
	analysis := dersig.ParseSignatureStrict(sig, curve)
	if !strictlyEncoded(analysis) || !analysis.RangeValid {
		return false
	}
	r := new(big.Int).SetBytes(analysis.R)
	s := new(big.Int).SetBytes(analysis.S)

	// The remainder is algorithm 4.30 in [GECC]:
	//
	// 1. Fail if R and S are not in [1, N-1] (checked above)
	// 2. e = H(m)
	// 3. w = S^-1 mod N
	// 4. u1 = e * w mod N
	//    u2 = R * w mod N
	// 5. X = u1G + u2Q
	// 6. Fail if X is the point at infinity
	// 7. x = X.x mod N
	// 8. Verified if x == R
	q, err := curvemath.ParsePoint(pubKey, curve)
	if err != nil || q.IsInfinity() {
		return false
	}

	e := curvemath.HashToInt(digest, curve)
	w, err := curvemath.ModInverse(s, curve.N)
	if err != nil {
		return false
	}
	u1 := curvemath.ModMul(e, w, curve.N)
	u2 := curvemath.ModMul(r, w, curve.N)

	x := curvemath.AddPoints(curvemath.ScalarBaseMult(u1, curve),
		curvemath.ScalarMult(u2, q, curve), curve)
	if x.IsInfinity() {
		return false
	}
	return new(big.Int).Mod(x.X, curve.N).Cmp(r) == 0
}

// Local returns the verifier backed by this module's own strict DER codec
// and affine curve arithmetic.  It accepts any curve the curvemath
// parameter table knows.
func Local() conformance.Verifier {
	return localVerifier{}
}
