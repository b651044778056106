// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curvemath

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrUnknownCurve is returned when a curve name has no entry in the
	// named-curve table.
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")

	// ErrNotInvertible is returned when a modular inverse is requested for
	// an operand that is congruent to zero or otherwise shares a factor
	// with the modulus.
	ErrNotInvertible = ErrorKind("ErrNotInvertible")

	// ErrInvalidHex is returned when a hex string fails boundary
	// validation: odd length, non-hex digits, or an empty value where one
	// is required.
	ErrInvalidHex = ErrorKind("ErrInvalidHex")

	// ErrInvalidPointEncoding is returned when serialized point bytes do
	// not follow the SEC 1 compressed or uncompressed format.
	ErrInvalidPointEncoding = ErrorKind("ErrInvalidPointEncoding")

	// ErrPointNotOnCurve is returned when deserialized coordinates do not
	// satisfy the curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an arithmetic or encoding error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error kind.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
