// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package keyutil derives spendable-key presentations from recovered private
keys: wallet import format (WIF) strings, pay-to-pubkey-hash addresses, and
native segwit addresses, across the Bitcoin and Decred encoding families.

The two families differ in more than magic bytes.  Bitcoin builds both WIF
and address checksums from double SHA-256 and hashes public keys with
RIPEMD-160 over SHA-256, while Decred checksums its WIF with a single
BLAKE-256, its addresses with double BLAKE-256, and hashes public keys with
RIPEMD-160 over BLAKE-256.  The Params table captures those conventions per
network so recovery output can name where a broken signature's key is
spendable without the caller juggling prefixes.

This package performs no scalar range validation beyond rejecting values
that cannot fit a 32-byte key; establishing 0 < d < n is the recovery
engine's contract.
*/
package keyutil
