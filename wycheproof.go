// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/internal/progresslog"
	"github.com/bakaxbaka/SignatureFixer-sub000/libverify"
)

// wycheproofKey is the public key block shared by every vector of a test
// group.
type wycheproofKey struct {
	Curve        string `json:"curve"`
	KeySize      int    `json:"keySize"`
	Type         string `json:"type"`
	Uncompressed string `json:"uncompressed"`
	Wx           string `json:"wx"`
	Wy           string `json:"wy"`
}

// wycheproofTest is a single vector of a test group.
type wycheproofTest struct {
	TcID    int      `json:"tcId"`
	Comment string   `json:"comment"`
	Msg     string   `json:"msg"`
	Sig     string   `json:"sig"`
	Result  string   `json:"result"`
	Flags   []string `json:"flags"`
}

// wycheproofGroup is one test group: a public key, a digest algorithm, and
// the vectors probing them.
type wycheproofGroup struct {
	Key    wycheproofKey    `json:"key"`
	KeyDER string           `json:"keyDer"`
	Sha    string           `json:"sha"`
	Type   string           `json:"type"`
	Tests  []wycheproofTest `json:"tests"`
}

// wycheproofFile is the top-level structure of a Wycheproof-format vector
// file.
type wycheproofFile struct {
	Algorithm     string            `json:"algorithm"`
	Version       string            `json:"generatorVersion"`
	NumberOfTests int               `json:"numberOfTests"`
	TestGroups    []wycheproofGroup `json:"testGroups"`
}

// loadWycheproofFile reads and decodes a Wycheproof-format ECDSA
// verification vector file.
func loadWycheproofFile(path string) (*wycheproofFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}
	var vectors wycheproofFile
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("failed to decode vector file %s: %w", path,
			err)
	}
	if vectors.Algorithm != "" && !strings.EqualFold(vectors.Algorithm, "ECDSA") {
		return nil, fmt.Errorf("vector file %s is for %s, not ECDSA", path,
			vectors.Algorithm)
	}
	if len(vectors.TestGroups) == 0 {
		return nil, fmt.Errorf("vector file %s has no test groups", path)
	}
	return &vectors, nil
}

// digestFuncByName maps the digest algorithm names used by the vector files
// to hash functions.
func digestFuncByName(name string) (func([]byte) []byte, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SHA-224", "SHA224":
		return func(msg []byte) []byte {
			digest := sha256.Sum224(msg)
			return digest[:]
		}, nil
	case "SHA-256", "SHA256":
		return func(msg []byte) []byte {
			digest := sha256.Sum256(msg)
			return digest[:]
		}, nil
	case "SHA-384", "SHA384":
		return func(msg []byte) []byte {
			digest := sha512.Sum384(msg)
			return digest[:]
		}, nil
	case "SHA-512", "SHA512":
		return func(msg []byte) []byte {
			digest := sha512.Sum512(msg)
			return digest[:]
		}, nil
	}
	return nil, fmt.Errorf("unsupported digest algorithm %q", name)
}

// canonicalCurveID returns the canonical lowercase identifier for a curve
// name from a vector file, resolving aliases such as "P-256" when the curve
// is known locally and lowercasing otherwise.
func canonicalCurveID(name string) string {
	if params, err := curvemath.CurveByName(name); err == nil {
		return params.Name
	}
	return strings.ToLower(name)
}

// sameCurve reports whether two curve names refer to the same group.
func sameCurve(a, b string) bool {
	return canonicalCurveID(a) == canonicalCurveID(b)
}

// groupPubKey extracts the serialized public key probed by every vector of
// the group.  The uncompressed point form is used since every registered
// adapter understands it.
func groupPubKey(group *wycheproofGroup) ([]byte, error) {
	if group.Key.Uncompressed == "" {
		return nil, fmt.Errorf("test group has no uncompressed public key")
	}
	pubKey, err := curvemath.BytesFromHex(group.Key.Uncompressed)
	if err != nil {
		return nil, fmt.Errorf("test group public key: %w", err)
	}
	return pubKey, nil
}

// conformanceCases converts the vectors of one test group into conformance
// cases, hashing each message with the group digest algorithm.
func conformanceCases(group *wycheproofGroup, digestFn func([]byte) []byte) ([]conformance.Case, error) {
	pubKey, err := groupPubKey(group)
	if err != nil {
		return nil, err
	}

	cases := make([]conformance.Case, 0, len(group.Tests))
	for i := range group.Tests {
		test := &group.Tests[i]
		expected, err := conformance.ParseClassification(test.Result)
		if err != nil {
			return nil, fmt.Errorf("tcId %d: %w", test.TcID, err)
		}
		msg, err := curvemath.BytesFromHex(test.Msg)
		if err != nil {
			return nil, fmt.Errorf("tcId %d msg: %w", test.TcID, err)
		}
		sig, err := curvemath.BytesFromHex(test.Sig)
		if err != nil {
			return nil, fmt.Errorf("tcId %d sig: %w", test.TcID, err)
		}
		cases = append(cases, conformance.Case{
			ID:       test.TcID,
			Comment:  test.Comment,
			Digest:   digestFn(msg),
			Sig:      sig,
			PubKey:   pubKey,
			Expected: expected,
		})
	}
	return cases, nil
}

// wycheproofCmd defines the options for the wycheproof subcommand.
type wycheproofCmd struct {
	Vectors string `long:"vectors" description:"Path to a Wycheproof-format ECDSA verification vector file" required:"true"`
	Library string `long:"library" description:"Verification library adapter to test" required:"true"`
	Curve   string `long:"curve" description:"Only run test groups for the named curve"`
	Jobs    int    `long:"jobs" description:"Number of vectors to probe concurrently" default:"1"`
}

// run loads the vector file and probes the selected verification library
// with every test group, aggregating the verdicts into one report.
func (c *wycheproofCmd) run(ctx context.Context) error {
	verifier, err := libverify.ByName(c.Library)
	if err != nil {
		return fmt.Errorf("%v -- registered libraries: %s", err,
			supportedLibraries())
	}
	vectors, err := loadWycheproofFile(c.Vectors)
	if err != nil {
		return err
	}
	sfxrLog.Infof("Loaded %d test groups (%d vectors) from %s",
		len(vectors.TestGroups), vectors.NumberOfTests, c.Vectors)

	progress := progresslog.New("Verified", confLog)
	var total, passed, failed int
	var mismatches []conformance.CaseResult
	for i := range vectors.TestGroups {
		group := &vectors.TestGroups[i]
		if c.Curve != "" && !sameCurve(group.Key.Curve, c.Curve) {
			sfxrLog.Debugf("Skipping test group %d for curve %s", i,
				group.Key.Curve)
			continue
		}
		if shutdownRequested(ctx) {
			sfxrLog.Warnf("Aborting run early after %d vectors", total)
			break
		}

		digestFn, err := digestFuncByName(group.Sha)
		if err != nil {
			sfxrLog.Warnf("Skipping test group %d: %v", i, err)
			continue
		}
		cases, err := conformanceCases(group, digestFn)
		if err != nil {
			return err
		}

		summary := conformance.RunSuite(cases, verifier, &conformance.Options{
			CurveID:     canonicalCurveID(group.Key.Curve),
			Concurrency: c.Jobs,
			Progress: func(done, groupTotal int) {
				progress.LogProgress(done, groupTotal, done == groupTotal)
			},
		})
		total += summary.Total
		passed += summary.Passed
		failed += summary.Failed
		mismatches = append(mismatches, summary.Mismatches...)
	}

	fmt.Printf("Library: %s\n", c.Library)
	fmt.Printf("Vectors: %s\n", c.Vectors)
	fmt.Printf("Total: %d\n", total)
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	for i := range mismatches {
		mismatch := &mismatches[i]
		fmt.Printf("  tcId %d (%s): expected %s, library accepted=%v\n",
			mismatch.CaseID, mismatch.Comment, mismatch.Expected,
			mismatch.Accepted)
		for _, issue := range mismatch.Issues {
			fmt.Printf("    %s\n", issue)
		}
	}
	if failed > 0 {
		str := fmt.Sprintf("%d of %d conformance vectors mismatched", failed,
			total)
		return errSuppressUsage(str)
	}
	return nil
}
