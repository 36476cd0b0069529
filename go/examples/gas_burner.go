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
	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/ethereum/go-ethereum/core/vm"
)

const burnSignature = "burn(uint32)"

// GetGasBurnerExample consumes about x units of gas and returns x.
func GetGasBurnerExample() Computation {
	a := newAssembler()
	selectFunction(a, burnSignature)
	a.label(burnSignature).op(vm.POP)

	// Stack layout during the loop: [limit, x] with limit = gas - x.
	a.push(4).op(vm.CALLDATALOAD)
	a.op(vm.GAS, vm.DUP2, vm.SWAP1, vm.SUB)
	a.label("loop").
		op(vm.GAS, vm.DUP2, vm.LT).jumpIfTo("loop")

	a.op(vm.POP).
		push(0).op(vm.MSTORE).
		push(32).push(0).op(vm.RETURN)

	return Computation{
		Name:      "gas_burner",
		Runtime:   a.bytes(),
		Function:  abi.ComputeSelector(burnSignature),
		reference: burnGas,
	}
}

func burnGas(x int) int {
	return x
}
