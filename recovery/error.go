// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recovery

// ErrorKind identifies a kind of error.  It has full support for
// errors.Is and errors.As, so the caller can directly check against an
// error kind when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrInvalidHex indicates a hex-encoded parameter failed validation at
	// the string boundary before any recovery math was attempted.
	ErrInvalidHex = ErrorKind("ErrInvalidHex")

	// ErrIdenticalS indicates the two signatures carry identical S values
	// modulo the group order, so the nonce-difference equation degenerates
	// and no key material can be recovered.
	ErrIdenticalS = ErrorKind("ErrIdenticalS")

	// ErrNotInvertible indicates a modular inverse required by the
	// recovery equations does not exist, for example when the provided R
	// component is congruent to zero.
	ErrNotInvertible = ErrorKind("ErrNotInvertible")

	// ErrValueOutOfRange indicates either a provided parameter or a
	// computed private key or nonce falls outside the open interval
	// (0, N) required of secret scalars.
	ErrValueOutOfRange = ErrorKind("ErrValueOutOfRange")

	// ErrInconsistentInputs indicates the recovered key and nonce fail to
	// reproduce the provided signature R component, meaning the inputs do
	// not actually describe signatures made with a shared or known nonce.
	ErrInconsistentInputs = ErrorKind("ErrInconsistentInputs")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a recovery failure.  It has full support for errors.Is
// and errors.As, so the caller can ascertain the specific reason for the
// error by checking the underlying error.
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
