// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package conformance

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
	"github.com/bakaxbaka/SignatureFixer-sub000/dersig"
)

// Verifier is the injected capability under test: an adapter over some
// third-party ECDSA verification library.  Implementations report whether
// the library accepts the DER signature over the digest for the given
// serialized public key.  The curve is identified by name so a single
// adapter can cover several groups; adapters must return false for curves
// they do not support.
//
// The runners never call Verify concurrently for the same case, but
// distinct cases may probe the adapter from multiple goroutines, so
// implementations must be safe for concurrent use.
type Verifier interface {
	Verify(curveID string, digest, sig, pubKey []byte) bool
}

// VerifierFunc is an adapter to allow the use of an ordinary function as a
// Verifier.
type VerifierFunc func(curveID string, digest, sig, pubKey []byte) bool

// Verify calls f with the provided arguments.
func (f VerifierFunc) Verify(curveID string, digest, sig, pubKey []byte) bool {
	return f(curveID, digest, sig, pubKey)
}

// Classification is the expected verdict attached to a conformance vector.
type Classification byte

// These constants define the vector classifications in the Wycheproof
// nomenclature.
const (
	// ClassValid marks a well-formed vector the library must accept.
	ClassValid Classification = iota

	// ClassInvalid marks a malformed or forged vector the library must
	// reject.
	ClassInvalid

	// ClassAcceptable marks a legal-but-edge-case encoding whose
	// acceptance is tolerated but not required.
	ClassAcceptable
)

// classificationStrings maps the classifications to the strings used by the
// vector files.
var classificationStrings = map[Classification]string{
	ClassValid:      "valid",
	ClassInvalid:    "invalid",
	ClassAcceptable: "acceptable",
}

// String returns the Classification as a human-readable string.
func (c Classification) String() string {
	s, ok := classificationStrings[c]
	if !ok {
		return fmt.Sprintf("classification(%d)", byte(c))
	}
	return s
}

// ParseClassification converts an expected-result string from a vector file
// into a Classification.  Matching is case-insensitive.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid":
		return ClassValid, nil
	case "invalid":
		return ClassInvalid, nil
	case "acceptable":
		return ClassAcceptable, nil
	}
	str := fmt.Sprintf("unknown vector classification %q", s)
	return 0, makeError(ErrUnknownClassification, str)
}

// Satisfied reports whether a library verdict satisfies the classification.
// Valid vectors must be accepted and invalid vectors must be rejected.
//
// Acceptable vectors pass only when accepted.  The asymmetry is
// intentional and differs from a three-state pass/neutral model: a library
// that rejects an acceptable edge encoding is reported as a mismatch so
// the divergence stays visible in the summary, rather than being silently
// folded into the pass count.
func (c Classification) Satisfied(accepted bool) bool {
	switch c {
	case ClassValid:
		return accepted
	case ClassInvalid:
		return !accepted
	case ClassAcceptable:
		return accepted
	}
	return false
}

// Case is one conformance vector: a digest, a DER signature over it, the
// claimed public key, and the expected verdict.
type Case struct {
	ID       int
	Comment  string
	Digest   []byte
	Sig      []byte
	PubKey   []byte
	Expected Classification
}

// CaseResult records the outcome of a single vector, including the locally
// diagnosed DER issues for debugging verifier disagreements.
type CaseResult struct {
	CaseID   int
	Comment  string
	Expected Classification
	Accepted bool
	Pass     bool
	Issues   []dersig.Issue
}

// Summary aggregates a suite run.  Mismatches holds the full result of
// every case that did not pass, in case order.
type Summary struct {
	Total      int
	Passed     int
	Failed     int
	Mismatches []CaseResult
}

// Options customizes a suite run.  The zero value (and a nil pointer) runs
// every case sequentially against secp256k1.
type Options struct {
	// CurveID names the curve the vectors belong to and is passed through
	// to the verifier verbatim.  Empty selects secp256k1.
	CurveID string

	// Filter, when non-nil, selects which cases run.  Skipped cases do
	// not count toward any total.
	Filter func(*Case) bool

	// Concurrency bounds the number of cases probed at once.  Values
	// below two run the suite sequentially.  Cases are independent, so
	// any bound is safe provided the verifier tolerates concurrent use.
	Concurrency int

	// Progress, when non-nil, is called with the number of completed
	// cases and the total after each case finishes.  Calls are
	// serialized.
	Progress func(done, total int)
}

// runCase produces the result for a single vector.  The strict local parse
// is diagnostic only and has no bearing on the verdict.
func runCase(c *Case, verifier Verifier, curveID string, curve *curvemath.CurveParams) CaseResult {
	analysis := dersig.ParseSignatureStrict(c.Sig, curve)
	accepted := safeVerify(verifier, curveID, c.Digest, c.Sig, c.PubKey, c.ID)
	return CaseResult{
		CaseID:   c.ID,
		Comment:  c.Comment,
		Expected: c.Expected,
		Accepted: accepted,
		Pass:     c.Expected.Satisfied(accepted),
		Issues:   analysis.Issues,
	}
}

// safeVerify invokes the injected verifier and converts a panic in the
// adapter into a rejection so one faulty vector or library hiccup cannot
// abort an entire suite run.
func safeVerify(verifier Verifier, curveID string, digest, sig, pubKey []byte, caseID int) (accepted bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("Verifier panicked on case %d, treating as "+
				"rejected: %v", caseID, r)
			accepted = false
		}
	}()
	return verifier.Verify(curveID, digest, sig, pubKey)
}

// RunSuite probes the verifier with every selected case and aggregates the
// verdicts under the Satisfied policy.  Adapter panics are normalized to
// rejections per case.  The summary lists mismatching cases in input order
// regardless of the concurrency setting.
func RunSuite(cases []Case, verifier Verifier, opts *Options) *Summary {
	curveID := "secp256k1"
	if opts != nil && opts.CurveID != "" {
		curveID = opts.CurveID
	}
	curve, err := curvemath.CurveByName(curveID)
	if err != nil {
		// The injected library may understand curves the local engine
		// has no parameters for.  Diagnostics fall back to secp256k1
		// bounds while the verifier still receives the requested name.
		log.Warnf("No local parameters for curve %q, diagnosing DER "+
			"structure with secp256k1 bounds", curveID)
		curve = curvemath.Secp256k1()
	}

	run := make([]*Case, 0, len(cases))
	for i := range cases {
		if opts != nil && opts.Filter != nil && !opts.Filter(&cases[i]) {
			continue
		}
		run = append(run, &cases[i])
	}
	total := len(run)

	workers := 1
	if opts != nil && opts.Concurrency > workers {
		workers = opts.Concurrency
	}
	if workers > total {
		workers = total
	}
	log.Debugf("Running %d of %d conformance cases on %s", total,
		len(cases), curveID)

	var progressMtx sync.Mutex
	done := 0
	progress := func() {
		if opts == nil || opts.Progress == nil {
			return
		}
		progressMtx.Lock()
		done++
		opts.Progress(done, total)
		progressMtx.Unlock()
	}

	// Each case writes only its own slot, so no synchronization is needed
	// beyond joining the workers.
	results := make([]CaseResult, total)
	if workers <= 1 {
		for i, c := range run {
			results[i] = runCase(c, verifier, curveID, curve)
			progress()
		}
	} else {
		indexes := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range indexes {
					results[i] = runCase(run[i], verifier, curveID, curve)
					progress()
				}
			}()
		}
		for i := range run {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	summary := &Summary{Total: total}
	for i := range results {
		result := &results[i]
		if result.Pass {
			summary.Passed++
			continue
		}
		summary.Failed++
		summary.Mismatches = append(summary.Mismatches, *result)
		log.Debugf("Case %d (%s): expected %v, library accepted=%v, "+
			"local issues=%v", result.CaseID, result.Comment,
			result.Expected, result.Accepted, result.Issues)
	}
	log.Debugf("Suite finished: %d/%d passed", summary.Passed,
		summary.Total)
	return summary
}
