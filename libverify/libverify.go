// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libverify

import (
	"fmt"
	"strings"

	"github.com/bakaxbaka/SignatureFixer-sub000/conformance"
)

// verifiers maps the registered adapter names to their constructors.
var verifiers = map[string]func() conformance.Verifier{
	"local":  Local,
	"decred": Decred,
	"btcec":  BtcecS256,
	"stdlib": StdLib,
}

// Names returns the registered adapter names in no particular order.
func Names() []string {
	names := make([]string, 0, len(verifiers))
	for name := range verifiers {
		names = append(names, name)
	}
	return names
}

// ByName returns the adapter registered under the given name.  Matching is
// case-insensitive.
func ByName(name string) (conformance.Verifier, error) {
	constructor, ok := verifiers[strings.ToLower(name)]
	if !ok {
		str := fmt.Sprintf("no verification library registered for %q", name)
		return nil, makeError(ErrUnknownLibrary, str)
	}
	return constructor(), nil
}
