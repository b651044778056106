// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package conformance

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/dersig"
)

// buildCase signs the given digest with the provided key and nonce and
// returns a vector carrying the canonical low-S DER encoding of the
// result.
func buildCase(t *testing.T, id int, comment string, d, k *big.Int, digest []byte, expected Classification) Case {
	t.Helper()

	curve := curvemath.Secp256k1()
	n := curve.N
	m := curvemath.HashToInt(digest, curve)
	point := curvemath.ScalarBaseMult(k, curve)
	r := new(big.Int).Mod(point.X, n)
	if r.Sign() == 0 {
		t.Fatal("nonce produced a zero R component")
	}
	kInv, err := curvemath.ModInverse(k, n)
	if err != nil {
		t.Fatalf("nonce is not invertible: %v", err)
	}
	s := curvemath.ModMul(kInv,
		curvemath.ModAdd(m, curvemath.ModMul(d, r, n), n), n)
	if s.Sign() == 0 {
		t.Fatal("signature produced a zero S component")
	}
	if s.Cmp(curve.HalfN) > 0 {
		s = new(big.Int).Sub(n, s)
	}

	pub := curvemath.ScalarBaseMult(d, curve)
	return Case{
		ID:       id,
		Comment:  comment,
		Digest:   digest,
		Sig:      dersig.SerializeSignatureValues(r, s),
		PubKey:   curvemath.SerializeCompressed(pub, curve),
		Expected: expected,
	}
}

// structuralVerifier accepts exactly the byte strings the strict analyzer
// reports as canonical, mimicking a correctly strict library without any
// curve math.
func structuralVerifier(curveID string, digest, sig, pubKey []byte) bool {
	analysis := dersig.ParseSignatureStrict(sig, curvemath.Secp256k1())
	return analysis.IsCanonical && analysis.RangeValid && !analysis.HasSigHash
}

// TestClassification exercises parsing, formatting, and the verdict policy
// including its intentional asymmetry for acceptable vectors.
func TestClassification(t *testing.T) {
	parseTests := []struct {
		in   string
		want Classification
		err  error
	}{
		{"valid", ClassValid, nil},
		{"Valid", ClassValid, nil},
		{"INVALID", ClassInvalid, nil},
		{" acceptable ", ClassAcceptable, nil},
		{"maybe", 0, ErrUnknownClassification},
		{"", 0, ErrUnknownClassification},
	}
	for _, test := range parseTests {
		got, err := ParseClassification(test.in)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: unexpected error -- got %v, want %v", test.in,
				err, test.err)
			continue
		}
		if err == nil && got != test.want {
			t.Errorf("%q: got %v, want %v", test.in, got, test.want)
		}
	}

	if s := ClassAcceptable.String(); s != "acceptable" {
		t.Errorf("String: got %q, want acceptable", s)
	}
	if s := Classification(250).String(); s != "classification(250)" {
		t.Errorf("String: got %q", s)
	}

	policyTests := []struct {
		class    Classification
		accepted bool
		want     bool
	}{
		{ClassValid, true, true},
		{ClassValid, false, false},
		{ClassInvalid, true, false},
		{ClassInvalid, false, true},
		{ClassAcceptable, true, true},
		// Rejecting an acceptable vector is reported, not tolerated.
		{ClassAcceptable, false, false},
	}
	for _, test := range policyTests {
		if got := test.class.Satisfied(test.accepted); got != test.want {
			t.Errorf("%v accepted=%v: got %v, want %v", test.class,
				test.accepted, got, test.want)
		}
	}
}

// TestRunSuitePolicy runs a small suite against the constant verifiers and
// checks totals, mismatch ordering, and the attached diagnostics.
func TestRunSuitePolicy(t *testing.T) {
	validCase := buildCase(t, 1, "well formed", big.NewInt(0x1337),
		big.NewInt(5), bytes.Repeat([]byte{0x11}, 32), ClassValid)
	invalidCase := buildCase(t, 2, "signature over other digest",
		big.NewInt(0x1337), big.NewInt(7), bytes.Repeat([]byte{0x22}, 32),
		ClassInvalid)

	// The acceptable vector carries a BER padded encoding so the local
	// diagnostics have something to say about it.
	acceptableCase := buildCase(t, 3, "ber padded", big.NewInt(0x1337),
		big.NewInt(9), bytes.Repeat([]byte{0x33}, 32), ClassAcceptable)
	variants, err := dersig.GenerateMalleabilityVariants(acceptableCase.Sig)
	if err != nil {
		t.Fatalf("variant generation: %v", err)
	}
	acceptableCase.Sig = variants[1].Bytes

	cases := []Case{validCase, invalidCase, acceptableCase}
	alwaysAccept := VerifierFunc(func(string, []byte, []byte, []byte) bool {
		return true
	})
	alwaysReject := VerifierFunc(func(string, []byte, []byte, []byte) bool {
		return false
	})

	summary := RunSuite(cases, alwaysAccept, nil)
	if summary.Total != 3 || summary.Passed != 2 || summary.Failed != 1 {
		t.Fatalf("accept-all summary: %+v", summary)
	}
	if len(summary.Mismatches) != 1 || summary.Mismatches[0].CaseID != 2 {
		t.Fatalf("accept-all mismatches: %+v", summary.Mismatches)
	}
	if !summary.Mismatches[0].Accepted {
		t.Error("accept-all mismatch does not record the acceptance")
	}

	summary = RunSuite(cases, alwaysReject, nil)
	if summary.Total != 3 || summary.Passed != 1 || summary.Failed != 2 {
		t.Fatalf("reject-all summary: %+v", summary)
	}
	if len(summary.Mismatches) != 2 {
		t.Fatalf("reject-all mismatches: %+v", summary.Mismatches)
	}
	if summary.Mismatches[0].CaseID != 1 || summary.Mismatches[1].CaseID != 3 {
		t.Fatalf("reject-all mismatch order: %+v", summary.Mismatches)
	}

	// The rejected acceptable vector must arrive annotated with the
	// padding finding that likely explains a strict library's verdict.
	found := false
	for _, issue := range summary.Mismatches[1].Issues {
		if issue.Kind == dersig.IssueExtraPaddingR {
			found = true
		}
	}
	if !found {
		t.Errorf("mismatch diagnostics lack the padding issue: %+v",
			summary.Mismatches[1].Issues)
	}
}

// TestRunSuitePanicRecovery ensures an adapter panic is confined to its
// case and scored as a rejection.
func TestRunSuitePanicRecovery(t *testing.T) {
	cases := []Case{
		buildCase(t, 1, "before", big.NewInt(3), big.NewInt(5),
			bytes.Repeat([]byte{0x44}, 32), ClassValid),
		buildCase(t, 2, "panics", big.NewInt(3), big.NewInt(7),
			bytes.Repeat([]byte{0x55}, 32), ClassValid),
		buildCase(t, 3, "after", big.NewInt(3), big.NewInt(9),
			bytes.Repeat([]byte{0x66}, 32), ClassInvalid),
	}
	verifier := VerifierFunc(func(_ string, digest, _, _ []byte) bool {
		if digest[0] == 0x55 {
			panic("adapter exploded")
		}
		return true
	})

	summary := RunSuite(cases, verifier, nil)
	if summary.Total != 3 {
		t.Fatalf("total %d, want 3", summary.Total)
	}
	// Case 1 passes, case 2 is normalized to rejected and mismatches its
	// valid classification, case 3 is accepted and mismatches invalid.
	if summary.Passed != 1 || summary.Failed != 2 {
		t.Fatalf("summary: %+v", summary)
	}
	if summary.Mismatches[0].CaseID != 2 || summary.Mismatches[0].Accepted {
		t.Fatalf("panicking case result: %+v", summary.Mismatches[0])
	}
}

// TestRunSuiteFilter ensures skipped cases do not count toward any total.
func TestRunSuiteFilter(t *testing.T) {
	var cases []Case
	for i := 1; i <= 6; i++ {
		cases = append(cases, buildCase(t, i, "filtered suite",
			big.NewInt(11), big.NewInt(int64(2*i+1)),
			bytes.Repeat([]byte{byte(i)}, 32), ClassValid))
	}
	alwaysAccept := VerifierFunc(func(string, []byte, []byte, []byte) bool {
		return true
	})

	summary := RunSuite(cases, alwaysAccept, &Options{
		Filter: func(c *Case) bool { return c.ID%2 == 0 },
	})
	if summary.Total != 3 || summary.Passed != 3 || summary.Failed != 0 {
		t.Fatalf("summary: %+v", summary)
	}
}

// TestRunSuiteConcurrency runs the same suite sequentially and fanned out
// and requires identical summaries, plus a serialized monotonic progress
// feed.
func TestRunSuiteConcurrency(t *testing.T) {
	var cases []Case
	for i := 0; i < 40; i++ {
		expected := ClassValid
		switch i % 3 {
		case 1:
			expected = ClassInvalid
		case 2:
			expected = ClassAcceptable
		}
		digest := bytes.Repeat([]byte{byte(i)}, 32)
		cases = append(cases, buildCase(t, i, "fanout", big.NewInt(0xa1),
			big.NewInt(int64(2*i+3)), digest, expected))
	}
	verifier := VerifierFunc(func(_ string, digest, _, _ []byte) bool {
		return digest[0]%2 == 0
	})

	sequential := RunSuite(cases, verifier, nil)

	var progressed []int
	concurrent := RunSuite(cases, verifier, &Options{
		Concurrency: 8,
		Progress: func(done, total int) {
			if total != 40 {
				t.Errorf("progress total %d, want 40", total)
			}
			progressed = append(progressed, done)
		},
	})

	if concurrent.Total != sequential.Total ||
		concurrent.Passed != sequential.Passed ||
		concurrent.Failed != sequential.Failed {
		t.Fatalf("summaries diverge: sequential %+v, concurrent %+v",
			sequential, concurrent)
	}
	if len(concurrent.Mismatches) != len(sequential.Mismatches) {
		t.Fatalf("mismatch counts diverge: %d vs %d",
			len(sequential.Mismatches), len(concurrent.Mismatches))
	}
	for i := range concurrent.Mismatches {
		if concurrent.Mismatches[i].CaseID != sequential.Mismatches[i].CaseID {
			t.Fatalf("mismatch order diverges at %d", i)
		}
	}

	if len(progressed) != 40 {
		t.Fatalf("progress fired %d times, want 40", len(progressed))
	}
	for i, done := range progressed {
		if done != i+1 {
			t.Fatalf("progress feed not monotonic: %v", progressed)
		}
	}
}

// TestRunCVE42461 checks the malleability probe against the synthetic
// always-true, canonical-only, and always-false verifiers.
func TestRunCVE42461(t *testing.T) {
	c := buildCase(t, 1, "probe subject", big.NewInt(0xfeed),
		big.NewInt(21), bytes.Repeat([]byte{0x77}, 32), ClassValid)

	alwaysAccept := VerifierFunc(func(string, []byte, []byte, []byte) bool {
		return true
	})
	report, err := RunCVE42461(c.Sig, c.Digest, c.PubKey, alwaysAccept, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.AcceptsCanonicalDER || !report.AcceptsBERVariants ||
		!report.Vulnerable {
		t.Fatalf("accept-all report: %+v", report)
	}
	if len(report.Outcomes) != 7 {
		t.Fatalf("got %d outcomes, want 7", len(report.Outcomes))
	}
	wantKinds := []dersig.VariantKind{
		dersig.VariantCanonical, dersig.VariantPaddedR,
		dersig.VariantPaddedS, dersig.VariantPaddedBoth,
		dersig.VariantLengthMismatch, dersig.VariantWrongSeqTag,
		dersig.VariantTrailingGarbage,
	}
	for i, outcome := range report.Outcomes {
		if outcome.Kind != wantKinds[i] {
			t.Errorf("outcome %d kind %v, want %v", i, outcome.Kind,
				wantKinds[i])
		}
		if outcome.ID != i {
			t.Errorf("outcome %d carries ID %d", i, outcome.ID)
		}
		if !outcome.Accepted {
			t.Errorf("outcome %d not accepted by the accept-all verifier",
				i)
		}
	}

	report, err = RunCVE42461(c.Sig, c.Digest, c.PubKey,
		VerifierFunc(structuralVerifier), "secp256k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.AcceptsCanonicalDER {
		t.Error("strict verifier rejected the canonical encoding")
	}
	if report.AcceptsBERVariants || report.Vulnerable {
		t.Fatalf("strict verifier reported vulnerable: %+v", report)
	}
	for _, outcome := range report.Outcomes[1:] {
		if outcome.Accepted {
			t.Errorf("strict verifier accepted variant %d (%s)",
				outcome.ID, outcome.Kind)
		}
	}

	alwaysReject := VerifierFunc(func(string, []byte, []byte, []byte) bool {
		return false
	})
	report, err = RunCVE42461(c.Sig, c.Digest, c.PubKey, alwaysReject, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.AcceptsCanonicalDER || report.AcceptsBERVariants ||
		report.Vulnerable {
		t.Fatalf("reject-all report: %+v", report)
	}
}

// TestRunCVE42461CurveID ensures the default curve name reaches the
// verifier and explicit names pass through verbatim.
func TestRunCVE42461CurveID(t *testing.T) {
	c := buildCase(t, 1, "curve id", big.NewInt(5), big.NewInt(9),
		bytes.Repeat([]byte{0x88}, 32), ClassValid)

	var seen []string
	capture := VerifierFunc(func(curveID string, _, _, _ []byte) bool {
		seen = append(seen, curveID)
		return false
	})

	if _, err := RunCVE42461(c.Sig, c.Digest, c.PubKey, capture, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := RunCVE42461(c.Sig, c.Digest, c.PubKey, capture, "secp256r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 14 {
		t.Fatalf("verifier called %d times, want 14", len(seen))
	}
	for _, id := range seen[:7] {
		if id != "secp256k1" {
			t.Fatalf("default curve id %q", id)
		}
	}
	for _, id := range seen[7:] {
		if id != "secp256r1" {
			t.Fatalf("explicit curve id %q", id)
		}
	}
}

// TestRunCVE42461Malformed ensures only a structurally unusable input
// yields an error.
func TestRunCVE42461Malformed(t *testing.T) {
	alwaysAccept := VerifierFunc(func(string, []byte, []byte, []byte) bool {
		return true
	})
	report, err := RunCVE42461([]byte{0x30, 0x02, 0xff}, nil, nil,
		alwaysAccept, "")
	if !errors.Is(err, dersig.ErrSigMalformed) {
		t.Fatalf("unexpected error -- got %v, want %v", err,
			dersig.ErrSigMalformed)
	}
	if report != nil {
		t.Fatal("got a report alongside the error")
	}
}
