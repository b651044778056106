// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recovery_test

import (
	"fmt"

	"github.com/bakaxbaka/SignatureFixer-sub000/recovery"
)

// This example demonstrates recovering a private key from two signatures that
// were made with the same nonce.  The shared r component gives the reuse
// away; the two signing equations then have exactly two unknowns.
func ExampleRecoverFromNonceReuseHex() {
	// Two signatures over distinct digests sharing one r component.
	r := "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	s1 := "8b1dae0f8dbfa2e518db54072b94ab3943a4f047dc94019564e7dbe16b51bcb9"
	s2 := "bba70bb1c4cf483400174806de3ce3a5945461924164a89a5313d27b8c54d992"
	m1 := "1be60c46d70627e9c5dcba26181522a5c01d1289e93a93052dbc9f4b9b7c126b"
	m2 := "4c6f69e90e15cd38ad18ae25cabd5b1210cc83d44e0b3a0a1be895e5bc7f2f44"

	result, err := recovery.RecoverFromNonceReuseHex(r, s1, s2, m1, m2, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("private key: %064x\n", result.PrivateKey)
	fmt.Printf("nonce: %064x\n", result.Nonce)

	// Output:
	// private key: 229846c4e3e77ddaf1d18e9b47a8e8a35e6bc20721ebeaf1e8a8b1b1e46612f3
	// nonce: 0000000000000000000000000000000000000000000000000000000000000001
}
