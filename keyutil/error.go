// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyutil

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrInvalidPrivateKey indicates a private key is zero, negative, or too
	// large to serialize into the 32-byte key field.
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrInvalidPubKey indicates serialized public key bytes are not in the
	// 33-byte compressed or 65-byte uncompressed SEC 1 form.
	ErrInvalidPubKey = ErrorKind("ErrInvalidPubKey")

	// ErrUnsupportedNetwork indicates the requested encoding does not exist
	// on the target network, such as a segwit address on a chain without a
	// bech32 human-readable part.
	ErrUnsupportedNetwork = ErrorKind("ErrUnsupportedNetwork")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a key or address encoding error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
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
