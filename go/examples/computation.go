// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"fmt"

	"github.com/Fantom-foundation/Prova/go/abi"
)

// Computation is a contract computing a function over a single integer
// argument, paired with a reference implementation of the same function.
type Computation struct {
	Name      string
	Runtime   []byte       // runtime code of the contract
	Function  abi.Selector // selector of the entry point, zero if the code ignores it
	reference func(int) int
}

// InitCode returns code that deploys the computation.
func (c Computation) InitCode() []byte {
	return InitCode(c.Runtime)
}

// Input encodes a call of the computation's entry point.
func (c Computation) Input(argument int) []byte {
	return append(c.Function.Bytes(), abi.Uint64(uint64(argument))...)
}

// DecodeOutput extracts the result from the data returned by the contract.
func (c Computation) DecodeOutput(output []byte) (int, error) {
	values, err := abi.DecodeReturn(output, "uint256")
	if err != nil {
		return 0, err
	}
	result := abi.ToUint256(values[0])
	if !result.IsUint64() || result.Uint64() > uint64(maxInt) {
		return 0, fmt.Errorf("result %v of %s exceeds int range", result, c.Name)
	}
	return int(result.Uint64()), nil
}

// Reference computes the expected result for the given argument.
func (c Computation) Reference(argument int) int {
	return c.reference(argument)
}

const maxInt = int(^uint(0) >> 1)

// Computations lists all computations.
func Computations() []Computation {
	return []Computation{
		GetArithmeticExample(),
		GetSha3Example(),
		GetGasBurnerExample(),
	}
}
