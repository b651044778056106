// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recovery

import (
	"fmt"
	"math/big"

	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/keyutil"
)

// CalculationStep records one line of the recovery algebra: the quantity it
// produced, the formula that was applied, and the computed value rendered as
// fixed-width hex.  The ordered step list is a first-class output intended
// for audit trails and operator-facing explanations rather than a logging
// side effect.
type CalculationStep struct {
	Name    string
	Formula string
	Value   string
}

// Result carries a successfully recovered private key along with everything
// derived from it.  All fields are freshly allocated by the solver, so the
// caller may retain or modify them freely.
type Result struct {
	// PrivateKey and Nonce are the solved scalars.  Both are guaranteed
	// to lie in the open interval (0, N).
	PrivateKey *big.Int
	Nonce      *big.Int

	// PublicKey is PrivateKey*G along with its two serialized forms.
	PublicKey             *curvemath.Point
	PublicKeyCompressed   []byte
	PublicKeyUncompressed []byte

	// WIF and Address encode the recovered key for the configured
	// network.  WitnessAddress is only populated for compressed
	// derivation on networks that define a bech32 prefix.
	WIF            string
	Address        string
	WitnessAddress string

	// Steps is the ordered audit trail of the algebra that produced the
	// key.
	Steps []CalculationStep
}

// Options customizes the solvers.  The zero value (and a nil pointer)
// selects the secp256k1 curve, Bitcoin mainnet encodings, and compressed
// key derivation.
type Options struct {
	// Curve is the group the signatures were made over.  Nil selects
	// secp256k1.
	Curve *curvemath.CurveParams

	// Network selects the WIF and address encodings applied to the
	// recovered key.  Nil selects Bitcoin mainnet.
	Network *keyutil.Params

	// Uncompressed switches the WIF compression marker and the legacy
	// address to the uncompressed public key form.  Witness addresses
	// commit to compressed keys only and are skipped in this mode.
	Uncompressed bool
}

func (o *Options) curve() *curvemath.CurveParams {
	if o != nil && o.Curve != nil {
		return o.Curve
	}
	return curvemath.Secp256k1()
}

func (o *Options) network() *keyutil.Params {
	if o != nil && o.Network != nil {
		return o.Network
	}
	return &keyutil.BitcoinMainNet
}

func (o *Options) compressed() bool {
	return o == nil || !o.Uncompressed
}

// formatScalar renders v as lowercase hex zero padded to the curve byte
// size, the form used throughout the calculation steps.
func formatScalar(v *big.Int, curve *curvemath.CurveParams) string {
	return fmt.Sprintf("%0*x", curve.ByteSize()*2, v)
}

// checkParam rejects nil and negative inputs.  The solvers reduce
// everything modulo the group order, but a negative value almost certainly
// means the caller mixed up a subtraction, so it is refused rather than
// silently wrapped.
func checkParam(name string, v *big.Int) error {
	if v == nil {
		str := fmt.Sprintf("parameter %s must not be nil", name)
		return makeError(ErrValueOutOfRange, str)
	}
	if v.Sign() < 0 {
		str := fmt.Sprintf("parameter %s must not be negative", name)
		return makeError(ErrValueOutOfRange, str)
	}
	return nil
}

// checkSecret enforces the scalar range invariant 0 < v < N required of
// private keys and nonces.
func checkSecret(name string, v *big.Int, curve *curvemath.CurveParams) error {
	if v.Sign() <= 0 || v.Cmp(curve.N) >= 0 {
		str := fmt.Sprintf("%s %s is not in the range (0, N)", name,
			formatScalar(v, curve))
		return makeError(ErrValueOutOfRange, str)
	}
	return nil
}

// inverseMod wraps curvemath.ModInverse with this package's error kind so
// degenerate algebra surfaces as a recovery failure.
func inverseMod(name string, v *big.Int, curve *curvemath.CurveParams) (*big.Int, error) {
	inv, err := curvemath.ModInverse(v, curve.N)
	if err != nil {
		str := fmt.Sprintf("%s is not invertible modulo N", name)
		return nil, makeError(ErrNotInvertible, str)
	}
	return inv, nil
}

// checkNonceCommitment recomputes the signature R component from the
// candidate nonce, records it as a step, and fails when it does not match
// the provided R.  A mismatch means the inputs do not actually describe
// signatures made with the claimed nonce, so the solved values are
// arithmetic noise rather than usable key material.
func checkNonceCommitment(k, r *big.Int, steps []CalculationStep, curve *curvemath.CurveParams) ([]CalculationStep, error) {
	commitment := curvemath.ScalarBaseMult(k, curve)
	rPrime := new(big.Int).Mod(commitment.X, curve.N)
	steps = append(steps, CalculationStep{
		Name:    "nonce commitment",
		Formula: "r' = x(k*G) mod n",
		Value:   formatScalar(rPrime, curve),
	})
	if rPrime.Cmp(r) != 0 {
		str := fmt.Sprintf("recovered values do not reproduce the "+
			"signature: x(k*G) mod n = %s, want %s",
			formatScalar(rPrime, curve), formatScalar(r, curve))
		return nil, makeError(ErrInconsistentInputs, str)
	}
	return steps, nil
}

// deriveResult turns the solved scalars into the final result: the public
// point, both serialized forms, and the WIF and address encodings for the
// configured network.
func deriveResult(d, k *big.Int, steps []CalculationStep, curve *curvemath.CurveParams, network *keyutil.Params, compressed bool) (*Result, error) {
	pub := curvemath.ScalarBaseMult(d, curve)
	pubCompressed := curvemath.SerializeCompressed(pub, curve)
	pubUncompressed := curvemath.SerializeUncompressed(pub, curve)
	steps = append(steps, CalculationStep{
		Name:    "public key",
		Formula: "Q = d*G",
		Value:   fmt.Sprintf("%x", pubCompressed),
	})

	wif, err := keyutil.EncodeWIF(d, compressed, network)
	if err != nil {
		return nil, err
	}
	serialized := pubCompressed
	if !compressed {
		serialized = pubUncompressed
	}
	addr, err := keyutil.PubKeyHashAddr(serialized, network)
	if err != nil {
		return nil, err
	}
	var witnessAddr string
	if compressed && network.Bech32HRP != "" {
		witnessAddr, err = keyutil.WitnessPubKeyHashAddr(pubCompressed,
			network)
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		PrivateKey:            d,
		Nonce:                 k,
		PublicKey:             pub,
		PublicKeyCompressed:   pubCompressed,
		PublicKeyUncompressed: pubUncompressed,
		WIF:                   wif,
		Address:               addr,
		WitnessAddress:        witnessAddr,
		Steps:                 steps,
	}, nil
}

// RecoverFromNonceReuse solves for the private key given two signatures
// that share the same R component and therefore were produced with the
// same nonce.  The inputs are the shared R, both S components, and both
// message digests interpreted as integers.  All inputs are reduced modulo
// the group order before use.
//
// Writing the two signing equations with the shared nonce k
//
//	s1 = k^-1 * (m1 + d*r) mod n
//	s2 = k^-1 * (m2 + d*r) mod n
//
// and subtracting them eliminates the private key d, giving
//
//	k = (m1 - m2) * (s1 - s2)^-1 mod n
//	d = (s1*k - m1) * r^-1 mod n
//
// Identical S values leave the nonce unconstrained and fail with
// ErrIdenticalS.  The solved nonce and key must both lie in (0, N) and
// must reproduce the provided R component; violations fail with
// ErrValueOutOfRange and ErrInconsistentInputs respectively.  The result
// records every algebraic step in order and includes the key material
// derived for the configured network.
func RecoverFromNonceReuse(r, s1, s2, m1, m2 *big.Int, opts *Options) (*Result, error) {
	for _, param := range []struct {
		name  string
		value *big.Int
	}{{"r", r}, {"s1", s1}, {"s2", s2}, {"m1", m1}, {"m2", m2}} {
		if err := checkParam(param.name, param.value); err != nil {
			return nil, err
		}
	}

	curve := opts.curve()
	n := curve.N
	rv := new(big.Int).Mod(r, n)

	// k = (m1 - m2) * (s1 - s2)^-1 mod n.
	sDiff := curvemath.ModSub(s1, s2, n)
	if sDiff.Sign() == 0 {
		str := "identical S values modulo N leave the nonce unconstrained"
		return nil, makeError(ErrIdenticalS, str)
	}
	steps := make([]CalculationStep, 0, 8)
	steps = append(steps, CalculationStep{
		Name:    "s difference",
		Formula: "sdiff = (s1 - s2) mod n",
		Value:   formatScalar(sDiff, curve),
	})

	sDiffInv, err := inverseMod("s1 - s2", sDiff, curve)
	if err != nil {
		return nil, err
	}
	steps = append(steps, CalculationStep{
		Name:    "s difference inverse",
		Formula: "sdinv = sdiff^-1 mod n",
		Value:   formatScalar(sDiffInv, curve),
	})

	mDiff := curvemath.ModSub(m1, m2, n)
	steps = append(steps, CalculationStep{
		Name:    "digest difference",
		Formula: "mdiff = (m1 - m2) mod n",
		Value:   formatScalar(mDiff, curve),
	})

	k := curvemath.ModMul(mDiff, sDiffInv, n)
	steps = append(steps, CalculationStep{
		Name:    "nonce",
		Formula: "k = mdiff * sdinv mod n",
		Value:   formatScalar(k, curve),
	})
	if err := checkSecret("recovered nonce", k, curve); err != nil {
		return nil, err
	}

	// d = (s1*k - m1) * r^-1 mod n.
	rInv, err := inverseMod("r", rv, curve)
	if err != nil {
		return nil, err
	}
	steps = append(steps, CalculationStep{
		Name:    "r inverse",
		Formula: "rinv = r^-1 mod n",
		Value:   formatScalar(rInv, curve),
	})

	d := curvemath.ModMul(curvemath.ModSub(curvemath.ModMul(s1, k, n), m1, n),
		rInv, n)
	steps = append(steps, CalculationStep{
		Name:    "private key",
		Formula: "d = (s1*k - m1) * rinv mod n",
		Value:   formatScalar(d, curve),
	})
	if err := checkSecret("recovered private key", d, curve); err != nil {
		return nil, err
	}

	steps, err = checkNonceCommitment(k, rv, steps, curve)
	if err != nil {
		return nil, err
	}

	return deriveResult(d, k, steps, curve, opts.network(), opts.compressed())
}

// RecoverFromKnownNonce solves for the private key given a single
// signature whose nonce is known, for example from a broken random number
// generator or a disclosed deterministic scheme:
//
//	d = (s*k - m) * r^-1 mod n
//
// The validity checks and result contents match RecoverFromNonceReuse.
func RecoverFromKnownNonce(r, s, m, k *big.Int, opts *Options) (*Result, error) {
	for _, param := range []struct {
		name  string
		value *big.Int
	}{{"r", r}, {"s", s}, {"m", m}, {"k", k}} {
		if err := checkParam(param.name, param.value); err != nil {
			return nil, err
		}
	}

	curve := opts.curve()
	n := curve.N
	rv := new(big.Int).Mod(r, n)

	kv := new(big.Int).Mod(k, n)
	steps := make([]CalculationStep, 0, 4)
	steps = append(steps, CalculationStep{
		Name:    "nonce",
		Formula: "k mod n",
		Value:   formatScalar(kv, curve),
	})
	if err := checkSecret("provided nonce", kv, curve); err != nil {
		return nil, err
	}

	rInv, err := inverseMod("r", rv, curve)
	if err != nil {
		return nil, err
	}
	steps = append(steps, CalculationStep{
		Name:    "r inverse",
		Formula: "rinv = r^-1 mod n",
		Value:   formatScalar(rInv, curve),
	})

	d := curvemath.ModMul(curvemath.ModSub(curvemath.ModMul(s, kv, n), m, n),
		rInv, n)
	steps = append(steps, CalculationStep{
		Name:    "private key",
		Formula: "d = (s*k - m) * rinv mod n",
		Value:   formatScalar(d, curve),
	})
	if err := checkSecret("recovered private key", d, curve); err != nil {
		return nil, err
	}

	steps, err = checkNonceCommitment(kv, rv, steps, curve)
	if err != nil {
		return nil, err
	}

	return deriveResult(d, kv, steps, curve, opts.network(), opts.compressed())
}

// scalarArg validates and decodes one hex-encoded parameter for the string
// boundary constructors.
func scalarArg(name, value string) (*big.Int, error) {
	v, err := curvemath.ScalarFromHex(value)
	if err != nil {
		str := fmt.Sprintf("parameter %s: %v", name, err)
		return nil, makeError(ErrInvalidHex, str)
	}
	return v, nil
}

// RecoverFromNonceReuseHex is the string boundary form of
// RecoverFromNonceReuse.  Every parameter must be a non-empty, even-length
// hex string in either case; validation failures are reported with
// ErrInvalidHex before any recovery math runs.
func RecoverFromNonceReuseHex(r, s1, s2, m1, m2 string, opts *Options) (*Result, error) {
	names := [5]string{"r", "s1", "s2", "m1", "m2"}
	args := [5]string{r, s1, s2, m1, m2}
	var values [5]*big.Int
	for i, arg := range args {
		v, err := scalarArg(names[i], arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return RecoverFromNonceReuse(values[0], values[1], values[2], values[3],
		values[4], opts)
}

// RecoverFromKnownNonceHex is the string boundary form of
// RecoverFromKnownNonce with the same hex validation rules as
// RecoverFromNonceReuseHex.
func RecoverFromKnownNonceHex(r, s, m, k string, opts *Options) (*Result, error) {
	names := [4]string{"r", "s", "m", "k"}
	args := [4]string{r, s, m, k}
	var values [4]*big.Int
	for i, arg := range args {
		v, err := scalarArg(names[i], arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return RecoverFromKnownNonce(values[0], values[1], values[2], values[3],
		opts)
}
