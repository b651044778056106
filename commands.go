// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/dersig"
	"github.com/bakaxbaka/SignatureFixer-sub000/keyutil"
	"github.com/bakaxbaka/SignatureFixer-sub000/libverify"
	"github.com/bakaxbaka/SignatureFixer-sub000/recovery"
)

// supportedNetworks lists the network names accepted by the recovery
// commands in the order they are shown to the user.
var supportedNetworks = []string{"bitcoin-mainnet", "bitcoin-testnet3",
	"decred-mainnet"}

// supportedLibraries returns the registered verification library adapter
// names in sorted order for inclusion in error messages.
func supportedLibraries() string {
	names := libverify.Names()
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// analyzeCmd defines the options for the analyze subcommand.
type analyzeCmd struct {
	Sig   string `long:"sig" description:"DER signature to analyze as hex" required:"true"`
	Curve string `long:"curve" description:"Curve whose order bounds the component range checks" default:"secp256k1"`
}

// run strictly parses the provided signature and prints every encoding
// deviation found along with the extracted components.
func (c *analyzeCmd) run(ctx context.Context) error {
	sig, err := curvemath.BytesFromHex(c.Sig)
	if err != nil {
		return err
	}
	curve, err := curvemath.CurveByName(c.Curve)
	if err != nil {
		return err
	}

	analysis := dersig.ParseSignatureStrict(sig, curve)
	sfxrLog.Debugf("Full analysis: %v", spew.Sdump(analysis))

	fmt.Printf("Signature (%d bytes): %x\n", len(sig), sig)
	fmt.Printf("Curve: %s\n", curve.Name)
	if len(analysis.R) > 0 {
		fmt.Printf("r: %x\n", analysis.R)
	}
	if len(analysis.S) > 0 {
		fmt.Printf("s: %x\n", analysis.S)
	}
	if analysis.HasSigHash {
		fmt.Printf("Sighash type: %s\n", analysis.SigHash)
	}
	fmt.Printf("Canonical: %v\n", analysis.IsCanonical)
	fmt.Printf("Components in range: %v\n", analysis.RangeValid)
	fmt.Printf("High s: %v\n", analysis.IsHighS)
	if len(analysis.Issues) == 0 {
		fmt.Println("No encoding issues found")
		return nil
	}

	fmt.Printf("Issues (%d):\n", len(analysis.Issues))
	for _, issue := range analysis.Issues {
		fmt.Printf("  %s\n", issue)
	}
	return nil
}

// variantsCmd defines the options for the variants subcommand.
type variantsCmd struct {
	Sig string `long:"sig" description:"Canonical DER signature to mutate as hex" required:"true"`
}

// run generates the malleability variant catalogue for the provided
// signature and prints one line per variant.
func (c *variantsCmd) run(ctx context.Context) error {
	sig, err := curvemath.BytesFromHex(c.Sig)
	if err != nil {
		return err
	}

	variants, err := dersig.GenerateMalleabilityVariants(sig)
	if err != nil {
		return err
	}
	for _, variant := range variants {
		fmt.Printf("%d %-20s %x\n", variant.ID, variant.Kind, variant.Bytes)
	}
	return nil
}

// recoveryOptions converts the shared network and compression flags of the
// recovery subcommands into solver options.
func recoveryOptions(networkName string, uncompressed bool) (*recovery.Options, error) {
	network := keyutil.ParamsByName(networkName)
	if network == nil {
		return nil, fmt.Errorf("unknown network %q -- supported networks: %s",
			networkName, strings.Join(supportedNetworks, ", "))
	}
	return &recovery.Options{
		Network:      network,
		Uncompressed: uncompressed,
	}, nil
}

// printRecoveryResult prints the audit trail and every derived encoding of a
// successfully recovered private key.
func printRecoveryResult(result *recovery.Result) {
	fmt.Println("Calculation steps:")
	for _, step := range result.Steps {
		fmt.Printf("  %s = %s = %s\n", step.Name, step.Formula, step.Value)
	}
	fmt.Printf("Private key: %064x\n", result.PrivateKey)
	fmt.Printf("Nonce: %064x\n", result.Nonce)
	fmt.Printf("Public key (compressed): %x\n", result.PublicKeyCompressed)
	fmt.Printf("Public key (uncompressed): %x\n", result.PublicKeyUncompressed)
	fmt.Printf("WIF: %s\n", result.WIF)
	fmt.Printf("Address: %s\n", result.Address)
	if result.WitnessAddress != "" {
		fmt.Printf("Witness address: %s\n", result.WitnessAddress)
	}
}

// recoverCmd defines the options for the recover subcommand.
type recoverCmd struct {
	R            string `long:"r" description:"Shared r component of both signatures as hex" required:"true"`
	S1           string `long:"s1" description:"s component of the first signature as hex" required:"true"`
	S2           string `long:"s2" description:"s component of the second signature as hex" required:"true"`
	M1           string `long:"m1" description:"Digest signed by the first signature as hex" required:"true"`
	M2           string `long:"m2" description:"Digest signed by the second signature as hex" required:"true"`
	Network      string `long:"network" description:"Network for the WIF and address encodings" default:"bitcoin-mainnet"`
	Uncompressed bool   `long:"uncompressed" description:"Derive the uncompressed public key forms"`
}

// run solves for the private key behind two signatures that reused a nonce
// and prints the result.
func (c *recoverCmd) run(ctx context.Context) error {
	opts, err := recoveryOptions(c.Network, c.Uncompressed)
	if err != nil {
		return err
	}

	result, err := recovery.RecoverFromNonceReuseHex(c.R, c.S1, c.S2, c.M1,
		c.M2, opts)
	if err != nil {
		return err
	}
	sfxrLog.Infof("Recovered private key from nonce reuse on %s", c.Network)
	printRecoveryResult(result)
	return nil
}

// recoverNonceCmd defines the options for the recovernonce subcommand.
type recoverNonceCmd struct {
	R            string `long:"r" description:"r component of the signature as hex" required:"true"`
	S            string `long:"s" description:"s component of the signature as hex" required:"true"`
	M            string `long:"m" description:"Digest the signature signs as hex" required:"true"`
	K            string `long:"k" description:"Known nonce the signature was made with as hex" required:"true"`
	Network      string `long:"network" description:"Network for the WIF and address encodings" default:"bitcoin-mainnet"`
	Uncompressed bool   `long:"uncompressed" description:"Derive the uncompressed public key forms"`
}

// run solves for the private key behind one signature whose nonce is known
// and prints the result.
func (c *recoverNonceCmd) run(ctx context.Context) error {
	opts, err := recoveryOptions(c.Network, c.Uncompressed)
	if err != nil {
		return err
	}

	result, err := recovery.RecoverFromKnownNonceHex(c.R, c.S, c.M, c.K, opts)
	if err != nil {
		return err
	}
	sfxrLog.Infof("Recovered private key from known nonce on %s", c.Network)
	printRecoveryResult(result)
	return nil
}

// cveCmd defines the options for the cve42461 subcommand.
type cveCmd struct {
	Sig     string `long:"sig" description:"Canonical DER signature as hex" required:"true"`
	Digest  string `long:"digest" description:"Digest the signature verifies against as hex" required:"true"`
	PubKey  string `long:"pubkey" description:"Serialized public key as hex" required:"true"`
	Library string `long:"library" description:"Verification library adapter to probe" required:"true"`
	Curve   string `long:"curve" description:"Curve identifier passed to the library" default:"secp256k1"`
}

// run probes the selected verification library with every malleability
// variant of the provided signature and reports whether any mutated encoding
// is accepted.
func (c *cveCmd) run(ctx context.Context) error {
	sig, err := curvemath.BytesFromHex(c.Sig)
	if err != nil {
		return err
	}
	digest, err := curvemath.BytesFromHex(c.Digest)
	if err != nil {
		return err
	}
	pubKey, err := curvemath.BytesFromHex(c.PubKey)
	if err != nil {
		return err
	}
	verifier, err := libverify.ByName(c.Library)
	if err != nil {
		return fmt.Errorf("%v -- registered libraries: %s", err,
			supportedLibraries())
	}
	if shutdownRequested(ctx) {
		return nil
	}

	report, err := conformance.RunCVE42461(sig, digest, pubKey, verifier,
		c.Curve)
	if err != nil {
		return err
	}

	fmt.Printf("Library: %s\n", c.Library)
	fmt.Printf("Curve: %s\n", c.Curve)
	for _, outcome := range report.Outcomes {
		verdict := "rejected"
		if outcome.Accepted {
			verdict = "accepted"
		}
		fmt.Printf("  variant %d %-20s %s\n", outcome.ID, outcome.Kind,
			verdict)
	}
	fmt.Printf("Accepts canonical DER: %v\n", report.AcceptsCanonicalDER)
	fmt.Printf("Accepts BER variants: %v\n", report.AcceptsBERVariants)
	if report.Vulnerable {
		fmt.Println("Verdict: VULNERABLE")
		str := fmt.Sprintf("library %q accepts mutated signature encodings",
			c.Library)
		return errSuppressUsage(str)
	}
	fmt.Println("Verdict: not vulnerable")
	return nil
}
