// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dersig

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrSigMalformed indicates a signature buffer does not have the exact
	// SEQUENCE/INTEGER/INTEGER structure required for deterministic byte
	// surgery, such as variant generation.
	ErrSigMalformed = ErrorKind("ErrSigMalformed")

	// ErrSigNoIntegers indicates the tolerant scanner could not locate two
	// plausible ASN.1 integers in the provided bytes.
	ErrSigNoIntegers = ErrorKind("ErrSigNoIntegers")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to signature encoding or decoding.  It
// has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.
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
