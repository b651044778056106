// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package conformance

import (
	"github.com/bakaxbaka/SignatureFixer-sub000/dersig"
)

// VariantOutcome records the verifier verdict for one malleability variant.
type VariantOutcome struct {
	ID       int
	Kind     dersig.VariantKind
	Accepted bool
}

// CVE42461Report summarizes a malleability probe of a single verifier.  A
// correct strict-DER verifier accepts the canonical encoding and rejects
// every mutated variant; accepting any BER-style variant is the
// CVE-2024-42461 class of bug, since it makes third parties able to
// mutate a signature without invalidating it.
type CVE42461Report struct {
	// AcceptsCanonicalDER reports whether the unmodified input was
	// accepted.  False usually means the digest or public key does not
	// match the signature, which makes the rest of the probe moot.
	AcceptsCanonicalDER bool

	// AcceptsBERVariants reports whether at least one non-canonical
	// variant was accepted.
	AcceptsBERVariants bool

	// Vulnerable is the verdict of the probe and is true exactly when
	// AcceptsBERVariants is.
	Vulnerable bool

	// Outcomes holds the per-variant verdicts in catalogue order.
	Outcomes []VariantOutcome
}

// RunCVE42461 generates the malleability variant catalogue from one
// canonical signature and probes the verifier with every entry.  The
// digest and public key are passed through to the verifier unchanged.  The
// only error condition is a structurally unusable input signature; adapter
// panics are normalized to per-variant rejections just as in RunSuite.
func RunCVE42461(canonical, digest, pubKey []byte, verifier Verifier, curveID string) (*CVE42461Report, error) {
	if curveID == "" {
		curveID = "secp256k1"
	}

	variants, err := dersig.GenerateMalleabilityVariants(canonical)
	if err != nil {
		return nil, err
	}

	report := &CVE42461Report{
		Outcomes: make([]VariantOutcome, 0, len(variants)),
	}
	for i := range variants {
		variant := &variants[i]
		accepted := safeVerify(verifier, curveID, digest, variant.Bytes,
			pubKey, variant.ID)
		report.Outcomes = append(report.Outcomes, VariantOutcome{
			ID:       variant.ID,
			Kind:     variant.Kind,
			Accepted: accepted,
		})
		log.Tracef("Variant %d (%s): accepted=%v", variant.ID,
			variant.Kind, accepted)

		if variant.Kind == dersig.VariantCanonical {
			report.AcceptsCanonicalDER = accepted
		} else if accepted {
			report.AcceptsBERVariants = true
		}
	}
	report.Vulnerable = report.AcceptsBERVariants

	log.Debugf("Malleability probe on %s: canonical=%v, ber=%v, "+
		"vulnerable=%v", curveID, report.AcceptsCanonicalDER,
		report.AcceptsBERVariants, report.Vulnerable)
	return report, nil
}
