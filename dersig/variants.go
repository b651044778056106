// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dersig

import (
	"fmt"
)

// asn1SetID is the ASN.1 identifier for a set.  It is one tag past the
// sequence identifier and is what the wrong-tag variant substitutes for it.
const asn1SetID = 0x31

// VariantKind names one entry of the fixed malleability variant catalogue.
type VariantKind string

// The complete catalogue of variant kinds, in generation order.
const (
	// VariantCanonical is the unmodified input signature.
	VariantCanonical = VariantKind("canonical")

	// VariantPaddedR re-encodes the signature with a redundant leading zero
	// byte on the r integer, a BER encoding DER forbids.
	VariantPaddedR = VariantKind("ber-padding-r")

	// VariantPaddedS is the s counterpart of VariantPaddedR.
	VariantPaddedS = VariantKind("ber-padding-s")

	// VariantPaddedBoth pads both integers.
	VariantPaddedBoth = VariantKind("ber-padding-both")

	// VariantLengthMismatch increments the declared sequence length by one
	// so it no longer matches the actual content.
	VariantLengthMismatch = VariantKind("ber-length-mismatch")

	// VariantWrongSeqTag replaces the SEQUENCE tag with the SET tag.
	VariantWrongSeqTag = VariantKind("wrong-seq-tag")

	// VariantTrailingGarbage appends four fixed garbage bytes after the
	// complete signature.
	VariantTrailingGarbage = VariantKind("trailing-garbage")
)

// String returns the VariantKind as a human-readable string.
func (k VariantKind) String() string {
	return string(k)
}

// MalleabilityVariant is one deterministic byte mutation of a canonical
// signature.  ID is the position in the generated catalogue, so the same
// input always yields the same (ID, Kind, Bytes) triples.
type MalleabilityVariant struct {
	ID    int
	Kind  VariantKind
	Bytes []byte
}

// trailingGarbage is the fixed suffix appended by the trailing-garbage
// variant.
var trailingGarbage = []byte{0xde, 0xad, 0xbe, 0xef}

// numVariants is the size of the generated catalogue.
const numVariants = 7

// derParts is a structurally validated signature split into its component
// byte strings for reassembly.
type derParts struct {
	r       []byte
	s       []byte
	sigHash []byte
}

// splitParts validates that the provided bytes have the exact
// SEQUENCE/INTEGER/INTEGER layout with consistent single-byte length fields,
// optionally followed by one sighash byte, and returns copies of the
// component byte strings.  Unlike the strict parser this is all-or-nothing:
// variant generation performs byte surgery at fixed offsets and cannot
// operate on a damaged structure.
func splitParts(sig []byte) (*derParts, error) {
	// Minimal structure is 0x30 len 0x02 0x01 <byte> 0x02 0x01 <byte>.
	if len(sig) < 8 {
		str := fmt.Sprintf("signature is %d bytes which is below the "+
			"minimal structure size of 8", len(sig))
		return nil, makeError(ErrSigMalformed, str)
	}

	parts := &derParts{sigHash: []byte{}}
	body := sig
	if int(sig[1]) == len(sig)-3 {
		parts.sigHash = []byte{sig[len(sig)-1]}
		body = sig[:len(sig)-1]
	}

	if body[0] != asn1SequenceID {
		str := fmt.Sprintf("leading tag is %#02x, want %#02x", body[0],
			asn1SequenceID)
		return nil, makeError(ErrSigMalformed, str)
	}
	if int(body[1]) != len(body)-2 {
		str := fmt.Sprintf("declared sequence length %d does not cover the "+
			"%d remaining bytes", body[1], len(body)-2)
		return nil, makeError(ErrSigMalformed, str)
	}
	if body[2] != asn1IntegerID {
		str := fmt.Sprintf("r tag is %#02x, want %#02x", body[2],
			asn1IntegerID)
		return nil, makeError(ErrSigMalformed, str)
	}
	rLen := int(body[3])
	if rLen == 0 || 4+rLen+2 > len(body) {
		str := fmt.Sprintf("r length %d does not fit the signature", rLen)
		return nil, makeError(ErrSigMalformed, str)
	}
	if body[4+rLen] != asn1IntegerID {
		str := fmt.Sprintf("s tag is %#02x, want %#02x", body[4+rLen],
			asn1IntegerID)
		return nil, makeError(ErrSigMalformed, str)
	}
	sLen := int(body[5+rLen])
	if sLen == 0 || 6+rLen+sLen != len(body) {
		str := fmt.Sprintf("s length %d does not end the signature", sLen)
		return nil, makeError(ErrSigMalformed, str)
	}

	parts.r = dupBytes(body[4 : 4+rLen])
	parts.s = dupBytes(body[6+rLen:])
	return parts, nil
}

// dupBytes returns an independent copy of the provided bytes.
func dupBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// assembleRaw emits the signature structure around the provided component
// bytes exactly as given, without any canonicalization, so deliberately
// padded components survive into the output.  The length fields are
// recomputed to stay self-consistent.
func assembleRaw(r, s, sigHash []byte) []byte {
	totalLen := 6 + len(r) + len(s)
	b := make([]byte, 0, totalLen+len(sigHash))
	b = append(b, asn1SequenceID)
	b = append(b, byte(totalLen-2))
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(r)))
	b = append(b, r...)
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(s)))
	b = append(b, s...)
	return append(b, sigHash...)
}

// GenerateMalleabilityVariants deterministically derives the fixed catalogue
// of encoding variants from one canonical DER signature, in fixed order: the
// canonical input itself, the r integer padded with a redundant zero, the s
// integer likewise, both padded, the sequence length incremented by one, the
// SEQUENCE tag replaced with SET, and the input with four garbage bytes
// appended.  A trailing sighash byte on the input is preserved at the end of
// every variant whose structure allows it.
//
// The variants are not alternate encodings of the same signature in any
// accepted sense.  They exist to probe whether a verifier accepts
// BER-but-not-DER input, the CVE-2024-42461 class of defect, and none of
// them share bytes with the input or each other.
//
// The input must be structurally well-formed; a signature the strict parser
// reports structural issues for cannot be mutated at fixed offsets and is
// rejected with ErrSigMalformed.
func GenerateMalleabilityVariants(canonical []byte) ([]MalleabilityVariant, error) {
	parts, err := splitParts(canonical)
	if err != nil {
		return nil, err
	}

	paddedR := append([]byte{0x00}, parts.r...)
	paddedS := append([]byte{0x00}, parts.s...)

	variants := make([]MalleabilityVariant, 0, numVariants)
	add := func(kind VariantKind, b []byte) {
		variants = append(variants, MalleabilityVariant{
			ID:    len(variants),
			Kind:  kind,
			Bytes: b,
		})
	}

	add(VariantCanonical, dupBytes(canonical))
	add(VariantPaddedR, assembleRaw(paddedR, parts.s, parts.sigHash))
	add(VariantPaddedS, assembleRaw(parts.r, paddedS, parts.sigHash))
	add(VariantPaddedBoth, assembleRaw(paddedR, paddedS, parts.sigHash))

	lengthBumped := dupBytes(canonical)
	lengthBumped[1]++
	add(VariantLengthMismatch, lengthBumped)

	wrongTag := dupBytes(canonical)
	wrongTag[0] = asn1SetID
	add(VariantWrongSeqTag, wrongTag)

	add(VariantTrailingGarbage, append(dupBytes(canonical), trailingGarbage...))

	return variants, nil
}
