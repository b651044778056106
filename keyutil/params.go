// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyutil

// Family identifies the hash and checksum conventions a network inherits.
type Family string

// The supported encoding families.
const (
	// FamilyBitcoin networks checksum with double SHA-256 and hash public
	// keys with RIPEMD-160 over SHA-256.
	FamilyBitcoin = Family("bitcoin")

	// FamilyDecred networks checksum WIF strings with a single BLAKE-256,
	// addresses with double BLAKE-256, and hash public keys with RIPEMD-160
	// over BLAKE-256.
	FamilyDecred = Family("decred")
)

// Params defines the encoding magics of a network the key derivation
// functions can target.  The prefix fields are one byte for Bitcoin-family
// networks and two for Decred-family networks.
type Params struct {
	// Name is the canonical name callers select the network by.
	Name string

	// Family selects the hash and checksum conventions.
	Family Family

	// PrivateKeyID is the WIF network prefix.
	PrivateKeyID []byte

	// PubKeyHashAddrID is the pay-to-pubkey-hash address version prefix.
	PubKeyHashAddrID []byte

	// Bech32HRP is the human-readable part for version 0 witness program
	// addresses, or empty when the network has no segwit encoding.
	Bech32HRP string
}

// BitcoinMainNet describes the main Bitcoin network.
var BitcoinMainNet = Params{
	Name:             "bitcoin-mainnet",
	Family:           FamilyBitcoin,
	PrivateKeyID:     []byte{0x80},
	PubKeyHashAddrID: []byte{0x00},
	Bech32HRP:        "bc",
}

// BitcoinTestNet3 describes the version 3 Bitcoin test network.
var BitcoinTestNet3 = Params{
	Name:             "bitcoin-testnet3",
	Family:           FamilyBitcoin,
	PrivateKeyID:     []byte{0xef},
	PubKeyHashAddrID: []byte{0x6f},
	Bech32HRP:        "tb",
}

// DecredMainNet describes the main Decred network.  Decred has no segwit
// address form.
var DecredMainNet = Params{
	Name:             "decred-mainnet",
	Family:           FamilyDecred,
	PrivateKeyID:     []byte{0x22, 0xde},
	PubKeyHashAddrID: []byte{0x07, 0x3f},
	Bech32HRP:        "",
}

// networks maps every recognized network name to its parameters.
var networks = map[string]*Params{
	BitcoinMainNet.Name:  &BitcoinMainNet,
	BitcoinTestNet3.Name: &BitcoinTestNet3,
	DecredMainNet.Name:   &DecredMainNet,
}

// ParamsByName returns the parameters for the named network, or nil when the
// name is unknown.  Recognized names are "bitcoin-mainnet",
// "bitcoin-testnet3", and "decred-mainnet".
func ParamsByName(name string) *Params {
	return networks[name]
}
