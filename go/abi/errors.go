// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package abi

import (
	"fmt"

	"github.com/Fantom-foundation/Prova/go/prova"
)

const (
	ErrUnsupportedType = prova.ConstError("unsupported parameter type")
	ErrValueTooLarge   = prova.ConstError("value exceeds parameter width")
	ErrArgumentCount   = prova.ConstError("argument count does not match signature")
	ErrLengthMismatch  = prova.ConstError("data length does not match parameter widths")
	ErrBadSignature    = prova.ConstError("malformed function signature")
)

// EncodingError reports a failed encoding or decoding of ABI data. Index is the
// position of the offending parameter, or -1 if the failure is not tied to a
// single parameter.
type EncodingError struct {
	Index int
	Type  string
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("abi %q: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("abi parameter %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
