// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dersig

import (
	"fmt"
	"math/big"

	"github.com/bakaxbaka/SignatureFixer-sub000/curvemath"
)

// References:
//   [ISO/IEC 8825-1]: Information technology — ASN.1 encoding rules:
//     Specification of Basic Encoding Rules (BER), Canonical Encoding Rules
//     (CER) and Distinguished Encoding Rules (DER)
//
//   [BIP62]: Dealing with malleability
//     https://github.com/bitcoin/bips/blob/master/bip-0062.mediawiki

const (
	// asn1SequenceID is the ASN.1 identifier for a sequence and is used when
	// parsing and serializing signatures.
	asn1SequenceID = 0x30

	// asn1IntegerID is the ASN.1 identifier for an integer and is used when
	// parsing and serializing signatures.
	asn1IntegerID = 0x02
)

// IssueKind identifies one class of encoding deviation found while analyzing
// a DER signature.  Deviations accumulate on a SignatureAnalysis; they are
// findings, not errors, and any number of them can attach to one parse.
type IssueKind string

// These constants identify the specific classes of encoding deviation.
const (
	// IssueNonCanonical indicates the s component exceeds half the group
	// order.  Both s and its negation verify, so high-s encodings are
	// malleable per [BIP62].  This is a policy warning rather than a
	// structural defect.
	IssueNonCanonical = IssueKind("IssueNonCanonical")

	// IssueExtraPaddingR indicates the r integer carries a leading zero byte
	// that is not required to keep the value positive.
	IssueExtraPaddingR = IssueKind("IssueExtraPaddingR")

	// IssueExtraPaddingS is the s counterpart of IssueExtraPaddingR.
	IssueExtraPaddingS = IssueKind("IssueExtraPaddingS")

	// IssueBadSeqTag indicates the signature does not open with the ASN.1
	// SEQUENCE identifier.
	IssueBadSeqTag = IssueKind("IssueBadSeqTag")

	// IssueBadLength indicates a length field disagrees with the actual
	// buffer: a declared sequence or integer length that does not match, a
	// missing integer tag at the expected position, or a truncated buffer.
	IssueBadLength = IssueKind("IssueBadLength")

	// IssueTrailingGarbage indicates bytes remain after the s integer that
	// are not accounted for by the structure.
	IssueTrailingGarbage = IssueKind("IssueTrailingGarbage")

	// IssueOutOfRangeR indicates the r value is not in [1, n-1] for the
	// group order n of the curve under analysis.
	IssueOutOfRangeR = IssueKind("IssueOutOfRangeR")

	// IssueOutOfRangeS is the s counterpart of IssueOutOfRangeR.
	IssueOutOfRangeS = IssueKind("IssueOutOfRangeS")
)

// String returns the IssueKind as a human-readable string.
func (k IssueKind) String() string {
	return string(k)
}

// Issue pairs an issue kind with a human-readable description of the
// specific finding.
type Issue struct {
	Kind    IssueKind
	Message string
}

// String returns the issue in a "kind: message" form suitable for reports.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// SigHashType represents the single trailing byte some transaction formats
// append to a DER signature to commit to a signature hash algorithm.
type SigHashType byte

// Signature hash types and flags per the Bitcoin transaction format.
const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80
)

// String returns the sighash type as a human-readable string such as
// "SIGHASH_ALL" or "SIGHASH_SINGLE|ANYONECANPAY".
func (t SigHashType) String() string {
	var name string
	switch t &^ SigHashAnyOneCanPay {
	case SigHashAll:
		name = "SIGHASH_ALL"
	case SigHashNone:
		name = "SIGHASH_NONE"
	case SigHashSingle:
		name = "SIGHASH_SINGLE"
	default:
		return fmt.Sprintf("SIGHASH_UNKNOWN(0x%02x)", byte(t))
	}
	if t&SigHashAnyOneCanPay != 0 {
		name += "|ANYONECANPAY"
	}
	return name
}

// SignatureAnalysis is the immutable result of strictly analyzing one DER
// signature.  It is created once per parse and reports every encoding
// deviation found rather than stopping at the first.  The zero values of the
// flag fields describe a signature that failed before the corresponding
// check could run.
type SignatureAnalysis struct {
	// R and S hold the raw big-endian content bytes of the two integers as
	// they appear in the encoding, including any padding.  They are copies
	// with no aliasing into the parsed buffer and are empty when the
	// structure was too damaged to locate them.
	R []byte
	S []byte

	// IsCanonical reports whether the encoding is fully canonical: no
	// structural issue of any kind and a low s component.
	IsCanonical bool

	// RangeValid reports whether both r and s lie in [1, n-1].
	RangeValid bool

	// IsHighS reports whether s exceeds half the group order.
	IsHighS bool

	// HasSigHash reports whether a trailing signature hash type byte was
	// detected and stripped before structural analysis, and SigHash holds
	// its value when so.
	HasSigHash bool
	SigHash    SigHashType

	// Issues is the ordered list of deviations found during the parse.  A
	// fully canonical signature has none.
	Issues []Issue
}

// HasIssue returns whether the analysis contains at least one issue of the
// given kind.
func (a *SignatureAnalysis) HasIssue(kind IssueKind) bool {
	for _, issue := range a.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

// RInt returns the r component interpreted as an unsigned big-endian integer,
// or nil when the parse could not locate it.  Redundant padding does not
// change the value, so the result is comparable across encodings.
func (a *SignatureAnalysis) RInt() *big.Int {
	if len(a.R) == 0 {
		return nil
	}
	return new(big.Int).SetBytes(a.R)
}

// SInt is the s counterpart of RInt.
func (a *SignatureAnalysis) SInt() *big.Int {
	if len(a.S) == 0 {
		return nil
	}
	return new(big.Int).SetBytes(a.S)
}

// hasStructuralIssue returns whether any issue other than the high-s policy
// warning was found.
func (a *SignatureAnalysis) hasStructuralIssue() bool {
	for _, issue := range a.Issues {
		if issue.Kind != IssueNonCanonical {
			return true
		}
	}
	return false
}

// addIssue appends a formatted finding to the analysis.
func (a *SignatureAnalysis) addIssue(kind IssueKind, format string, args ...interface{}) {
	a.Issues = append(a.Issues, Issue{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// ParseSignatureStrict analyzes the provided bytes as a DER signature of the
// form:
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// optionally followed by a single signature hash type byte, which is
// detected when the declared sequence length covers everything except the
// header pair and that one byte.
//
// The walk is positional and never fails: every deviation from strict DER is
// recorded on the returned analysis and parsing continues as far as the
// buffer allows, so a single call reports all diagnosable problems at once.
// Component values are additionally checked against the order of the
// provided curve, and an s component above half the order is flagged as
// malleable.  Integers are treated as unsigned throughout, matching how
// OpenSSL and the Bitcoin ecosystem read signature components, so a leading
// byte with the high bit set is not itself a deviation.
func ParseSignatureStrict(sig []byte, curve *curvemath.CurveParams) *SignatureAnalysis {
	analysis := parseStrict(sig, curve)
	analysis.IsCanonical = !analysis.IsHighS && !analysis.hasStructuralIssue()
	return analysis
}

// parseStrict performs the positional walk for ParseSignatureStrict and
// populates everything except the final canonical determination.
func parseStrict(sig []byte, curve *curvemath.CurveParams) *SignatureAnalysis {
	analysis := &SignatureAnalysis{R: []byte{}, S: []byte{}}

	if len(sig) == 0 {
		analysis.addIssue(IssueBadLength, "signature is empty")
		return analysis
	}

	// Strip the optional trailing sighash byte so the structural checks see
	// only the ASN.1 portion.
	body := sig
	if len(sig) >= 3 && int(sig[1]) == len(sig)-3 {
		analysis.HasSigHash = true
		analysis.SigHash = SigHashType(sig[len(sig)-1])
		body = sig[:len(sig)-1]
	}

	if body[0] != asn1SequenceID {
		analysis.addIssue(IssueBadSeqTag, "leading tag is %#02x, want %#02x "+
			"(SEQUENCE)", body[0], asn1SequenceID)
	}
	if len(body) < 2 {
		analysis.addIssue(IssueBadLength,
			"signature ends before the sequence length")
		return analysis
	}
	if int(body[1]) != len(body)-2 {
		analysis.addIssue(IssueBadLength, "declared sequence length %d does "+
			"not cover the %d remaining bytes", body[1], len(body)-2)
	}

	// R integer: tag, length, content.
	index := 2
	if index >= len(body) {
		analysis.addIssue(IssueBadLength, "signature ends before the r tag")
		return analysis
	}
	if body[index] != asn1IntegerID {
		analysis.addIssue(IssueBadLength, "r tag is %#02x, want %#02x "+
			"(INTEGER)", body[index], asn1IntegerID)
	}
	index++
	if index >= len(body) {
		analysis.addIssue(IssueBadLength, "signature ends before the r length")
		return analysis
	}
	rLen := int(body[index])
	index++
	if rLen > len(body)-index {
		analysis.addIssue(IssueBadLength, "declared r length %d overruns "+
			"the %d remaining bytes", rLen, len(body)-index)
		return analysis
	}
	rBytes := body[index : index+rLen]
	index += rLen

	// S integer: tag, length, content.
	if index >= len(body) {
		analysis.addIssue(IssueBadLength, "signature ends before the s tag")
		return analysis
	}
	if body[index] != asn1IntegerID {
		analysis.addIssue(IssueBadLength, "s tag is %#02x, want %#02x "+
			"(INTEGER)", body[index], asn1IntegerID)
	}
	index++
	if index >= len(body) {
		analysis.addIssue(IssueBadLength, "signature ends before the s length")
		return analysis
	}
	sLen := int(body[index])
	index++
	if sLen > len(body)-index {
		analysis.addIssue(IssueBadLength, "declared s length %d overruns "+
			"the %d remaining bytes", sLen, len(body)-index)
		return analysis
	}
	sBytes := body[index : index+sLen]
	index += sLen

	if index != len(body) {
		analysis.addIssue(IssueTrailingGarbage,
			"%d unparsed bytes after the s integer", len(body)-index)
	}

	// Non-minimal padding: a leading zero is only required when the next
	// byte would otherwise flip the sign bit.
	if len(rBytes) > 1 && rBytes[0] == 0x00 && rBytes[1]&0x80 != 0x80 {
		analysis.addIssue(IssueExtraPaddingR,
			"r has a redundant leading zero byte")
	}
	if len(sBytes) > 1 && sBytes[0] == 0x00 && sBytes[1]&0x80 != 0x80 {
		analysis.addIssue(IssueExtraPaddingS,
			"s has a redundant leading zero byte")
	}

	analysis.R = make([]byte, len(rBytes))
	copy(analysis.R, rBytes)
	analysis.S = make([]byte, len(sBytes))
	copy(analysis.S, sBytes)

	// Component range checks against the group order.
	r := new(big.Int).SetBytes(rBytes)
	s := new(big.Int).SetBytes(sBytes)
	rInRange := r.Sign() > 0 && r.Cmp(curve.N) < 0
	if !rInRange {
		analysis.addIssue(IssueOutOfRangeR, "r value %x is not in [1, n-1]", r)
	}
	sInRange := s.Sign() > 0 && s.Cmp(curve.N) < 0
	if !sInRange {
		analysis.addIssue(IssueOutOfRangeS, "s value %x is not in [1, n-1]", s)
	}
	analysis.RangeValid = rInRange && sInRange

	if s.Cmp(curve.HalfN) > 0 {
		analysis.IsHighS = true
		analysis.addIssue(IssueNonCanonical,
			"s value exceeds half the group order (high-s, malleable)")
	}

	return analysis
}

// ParseSignatureLoose scans the provided bytes for the first two plausible
// ASN.1 INTEGER elements without validating any surrounding structure and
// returns their content bytes.  It exists for best-effort extraction from
// damaged buffers and must never feed a security decision; use
// ParseSignatureStrict for anything that matters.
func ParseSignatureLoose(sig []byte) (rBytes, sBytes []byte, err error) {
	r, next, ok := scanInteger(sig, 0)
	if !ok {
		return nil, nil, makeError(ErrSigNoIntegers,
			"no ASN.1 integer found in the signature bytes")
	}
	s, _, ok := scanInteger(sig, next)
	if !ok {
		return nil, nil, makeError(ErrSigNoIntegers,
			"only one ASN.1 integer found in the signature bytes")
	}
	return r, s, nil
}

// scanInteger searches for an INTEGER tag at or after start whose declared
// length is nonzero and fits in the buffer, returning a copy of the content
// and the offset one past it.  Zero-length integers are skipped since they
// carry no value worth extracting.
func scanInteger(b []byte, start int) (content []byte, next int, ok bool) {
	for i := start; i+1 < len(b); i++ {
		if b[i] != asn1IntegerID {
			continue
		}
		l := int(b[i+1])
		if l == 0 || i+2+l > len(b) {
			continue
		}
		content = make([]byte, l)
		copy(content, b[i+2:])
		return content, i + 2 + l, true
	}
	return nil, 0, false
}

// SerializeSignature encodes the r and s component bytes into a minimal DER
// signature:
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// Redundant leading zeros are trimmed from each component and exactly one
// zero byte is kept in front of a leading byte with the high bit set so the
// value cannot be read as negative.  The encoder applies no signature
// policy: a high s component is re-encoded as given, which keeps
// serialization the exact inverse of a strict parse.
func SerializeSignature(r, s []byte) []byte {
	canonR := canonicalizeInt(r)
	canonS := canonicalizeInt(s)

	// Total length of returned signature is 1 byte for each magic and length
	// (6 total), plus lengths of R and S.
	totalLen := 6 + len(canonR) + len(canonS)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID)
	b = append(b, byte(totalLen-2))
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonR)))
	b = append(b, canonR...)
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonS)))
	b = append(b, canonS...)
	return b
}

// SerializeSignatureValues is SerializeSignature for big integer components.
func SerializeSignatureValues(r, s *big.Int) []byte {
	return SerializeSignature(r.Bytes(), s.Bytes())
}

// canonicalizeInt returns the minimal unsigned DER content encoding of the
// big-endian value: leading zero bytes are trimmed so long as the following
// byte does not have the high bit set and it is not the final byte.  The
// scratch zero prepended here is what survives for values whose leading byte
// would otherwise read as a sign bit, and an empty input canonicalizes to
// the single zero byte.
func canonicalizeInt(v []byte) []byte {
	buf := make([]byte, len(v)+1)
	copy(buf[1:], v)
	out := buf
	for len(out) > 1 && out[0] == 0x00 && out[1]&0x80 == 0 {
		out = out[1:]
	}
	return out
}
