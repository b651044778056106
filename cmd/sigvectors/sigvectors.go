// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// sigvectors generates nonce-reuse signature fixtures: two ECDSA signatures
// made with the same nonce over distinct digests, along with every value
// needed to recover the private key from them with the sigfixer recover
// command.
package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/decred/dcrd/crypto/rand"
	flags "github.com/jessevdk/go-flags"

	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/dersig"
	"github.com/bakaxbaka/SignatureFixer-sub000/keyutil"
	"github.com/bakaxbaka/SignatureFixer-sub000/recovery"
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

type config struct {
	Key          string `short:"k" long:"key" description:"private key to sign with as hex; random when omitted"`
	Nonce        string `short:"n" long:"nonce" description:"nonce both signatures share as hex; random when omitted"`
	Curve        string `short:"c" long:"curve" description:"curve to sign over"`
	Network      string `short:"N" long:"network" description:"network for the WIF and address encodings"`
	Uncompressed bool   `short:"u" long:"uncompressed" description:"use uncompressed key encodings"`
	Verify       bool   `short:"v" long:"verify" description:"run the solver on the generated fixture and require it to return the key"`
}

// scalarOrRandom parses a hex scalar and checks it lies in [1, n-1], or
// draws a uniformly random one from that range when no value was given.
func scalarOrRandom(value string, curve *curvemath.CurveParams) (*big.Int, error) {
	if value == "" {
		max := new(big.Int).Sub(curve.N, big.NewInt(1))
		return new(big.Int).Add(rand.BigInt(max), big.NewInt(1)), nil
	}
	v, err := curvemath.ScalarFromHex(value)
	if err != nil {
		return nil, err
	}
	if v.Sign() <= 0 || v.Cmp(curve.N) >= 0 {
		return nil, fmt.Errorf("value %s is not in the range (0, N)", value)
	}
	return v, nil
}

// sign produces the two components of an ECDSA signature over the digest.
// The raw s is returned without low-S canonicalization so both generated
// signatures really share the same nonce.
func sign(priv, nonce *big.Int, digest []byte, curve *curvemath.CurveParams) (r, s *big.Int) {
	n := curve.N
	m := curvemath.HashToInt(digest, curve)
	point := curvemath.ScalarBaseMult(nonce, curve)
	r = new(big.Int).Mod(point.X, n)
	if r.Sign() == 0 {
		fatalf("nonce produces a zero r component; pick another nonce\n")
	}
	kInv, err := curvemath.ModInverse(nonce, n)
	if err != nil {
		fatalf("nonce is not invertible modulo the group order\n")
	}
	s = curvemath.ModMul(kInv,
		curvemath.ModAdd(m, curvemath.ModMul(priv, r, n), n), n)
	if s.Sign() == 0 {
		fatalf("digest produces a zero s component; rerun for new digests\n")
	}
	return r, s
}

func main() {
	cfg := config{
		Curve:   "secp256k1",
		Network: "bitcoin-mainnet",
	}
	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) {
			if e.Type != flags.ErrHelp {
				os.Exit(1)
			}
			os.Exit(0)
		}
		os.Exit(1)
	}

	curve, err := curvemath.CurveByName(cfg.Curve)
	if err != nil {
		fatalf("%s\n", err)
	}
	network := keyutil.ParamsByName(cfg.Network)
	if network == nil {
		fatalf("unknown network %q\n", cfg.Network)
	}

	priv, err := scalarOrRandom(cfg.Key, curve)
	if err != nil {
		fatalf("private key: %s\n", err)
	}
	nonce, err := scalarOrRandom(cfg.Nonce, curve)
	if err != nil {
		fatalf("nonce: %s\n", err)
	}

	// Two distinct digests signed with the same nonce leak the key.
	m1 := make([]byte, curve.ByteSize())
	m2 := make([]byte, curve.ByteSize())
	rand.Read(m1)
	rand.Read(m2)

	r, s1 := sign(priv, nonce, m1, curve)
	_, s2 := sign(priv, nonce, m2, curve)
	if s1.Cmp(s2) == 0 {
		fatalf("degenerate fixture: both digests produce the same s\n")
	}

	pub := curvemath.ScalarBaseMult(priv, curve)
	serialized := curvemath.SerializeCompressed(pub, curve)
	if cfg.Uncompressed {
		serialized = curvemath.SerializeUncompressed(pub, curve)
	}
	wif, err := keyutil.EncodeWIF(priv, !cfg.Uncompressed, network)
	if err != nil {
		fatalf("encode WIF: %s\n", err)
	}
	addr, err := keyutil.PubKeyHashAddr(serialized, network)
	if err != nil {
		fatalf("encode address: %s\n", err)
	}

	width := curve.ByteSize() * 2
	fmt.Printf("Curve: %s\n", curve.Name)
	fmt.Printf("Network: %s\n", network.Name)
	fmt.Printf("Private key: %0*x\n", width, priv)
	fmt.Printf("Nonce: %0*x\n", width, nonce)
	fmt.Printf("Public key: %x\n", serialized)
	fmt.Printf("WIF: %s\n", wif)
	fmt.Printf("Address: %s\n", addr)
	fmt.Printf("m1: %x\n", m1)
	fmt.Printf("m2: %x\n", m2)
	fmt.Printf("r: %0*x\n", width, r)
	fmt.Printf("s1: %0*x\n", width, s1)
	fmt.Printf("s2: %0*x\n", width, s2)
	fmt.Printf("DER signature 1: %x\n", dersig.SerializeSignatureValues(r, s1))
	fmt.Printf("DER signature 2: %x\n", dersig.SerializeSignatureValues(r, s2))
	fmt.Println()
	fmt.Println("Recover with:")
	fmt.Printf("  sigfixer recover --r %0*x --s1 %0*x --s2 %0*x --m1 %x "+
		"--m2 %x --network %s\n", width, r, width, s1, width, s2, m1, m2,
		network.Name)

	if cfg.Verify {
		opts := &recovery.Options{
			Curve:        curve,
			Network:      network,
			Uncompressed: cfg.Uncompressed,
		}
		result, err := recovery.RecoverFromNonceReuse(r, s1, s2,
			new(big.Int).SetBytes(m1), new(big.Int).SetBytes(m2), opts)
		if err != nil {
			fatalf("solver failed on the generated fixture: %s\n", err)
		}
		if result.PrivateKey.Cmp(priv) != 0 {
			fatalf("solver recovered a different key: %0*x\n", width,
				result.PrivateKey)
		}
		fmt.Println()
		fmt.Println("Solver check: OK")
	}
}
