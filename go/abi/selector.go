// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package abi implements the subset of the contract ABI used by the test
// harness: function selectors, fixed-width parameter encoding and the decoding
// of fixed-width return data.
package abi

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/crypto/sha3"
)

// Selector is the 4-byte identifier of a function, the leading bytes of the
// keccak256 hash of its canonical signature.
type Selector [4]byte

// ComputeSelector hashes the given signature, e.g. "transfer(uint256,address)".
// The signature is hashed as-is; no canonicalization is applied.
func ComputeSelector(signature string) Selector {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(signature))
	var hash [32]byte
	hasher.Sum(hash[:0])
	return Selector(hash[:4])
}

func (s Selector) Bytes() []byte {
	return s[:]
}

func (s Selector) String() string {
	return fmt.Sprintf("0x%x", s[:])
}

// ParseSignature splits a canonical signature of the form
// name(type1,type2,...) into the function name and the list of parameter
// types. An empty parameter list yields no types. Signatures containing
// whitespace or empty types are rejected, since they would hash to a
// selector no contract dispatches on.
func ParseSignature(signature string) (string, []string, error) {
	open := strings.IndexByte(signature, '(')
	if open <= 0 || !strings.HasSuffix(signature, ")") || strings.ContainsFunc(signature, unicode.IsSpace) {
		return "", nil, &EncodingError{Index: -1, Type: signature, Err: ErrBadSignature}
	}
	name := signature[:open]
	list := signature[open+1 : len(signature)-1]
	if list == "" {
		return name, nil, nil
	}
	types := strings.Split(list, ",")
	if slices.Contains(types, "") {
		return "", nil, &EncodingError{Index: -1, Type: signature, Err: ErrBadSignature}
	}
	return name, types, nil
}

// Signature builds the canonical signature of a function from its name and
// parameter types.
func Signature(name string, types ...string) string {
	return name + "(" + strings.Join(types, ",") + ")"
}
