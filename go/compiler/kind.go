// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package compiler

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Prova/go/prova"
)

// Kind identifies a contract language and thereby the backend compiling it.
type Kind int

const (
	Solidity Kind = iota
	Vyper
	Huff
)

const ErrUnknownKind = prova.ConstError("unknown compiler kind")

// Kinds lists every supported compiler kind.
func Kinds() []Kind {
	return []Kind{Solidity, Vyper, Huff}
}

func (k Kind) String() string {
	switch k {
	case Solidity:
		return "Solidity"
	case Vyper:
		return "Vyper"
	case Huff:
		return "Huff"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

func (k Kind) isKnown() bool {
	return k >= Solidity && k <= Huff
}

// ParseKind resolves a kind by its name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for _, kind := range Kinds() {
		if strings.EqualFold(name, kind.String()) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// KindOfFile guesses the kind of a source file from its extension.
func KindOfFile(file string) (Kind, error) {
	switch {
	case strings.HasSuffix(file, ".sol"):
		return Solidity, nil
	case strings.HasSuffix(file, ".vy"):
		return Vyper, nil
	case strings.HasSuffix(file, ".huff"):
		return Huff, nil
	}
	return 0, fmt.Errorf("%w: no compiler for %q", ErrUnknownKind, file)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.isKnown() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	return []byte(strings.ToLower(k.String())), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
