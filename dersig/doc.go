// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package dersig provides a strict DER signature codec oriented toward security
analysis rather than consensus validation.

Signatures arriving at an analysis tool are adversarial input, so the strict
parser in this package never rejects outright.  It walks the ASN.1
SEQUENCE/INTEGER structure positionally and records every deviation it finds
as an additive issue on the returned analysis: a wrong tag, a length field
that disagrees with the buffer, redundant integer padding, trailing bytes,
and out-of-range or high-s component values can all be reported for a single
input.  Callers that need a hard accept/reject decision derive it from the
analysis flags instead of an error.

The package also provides the inverse direction: a canonical encoder that
emits minimal DER from raw component bytes, a tolerant scanner that extracts
integers from damaged buffers, and a deterministic generator that derives the
fixed catalogue of BER-style malleability variants from one canonical
signature for exercising third-party verifiers.
*/
package dersig
