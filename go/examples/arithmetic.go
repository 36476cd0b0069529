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
	"math"

	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

const arithmeticSignature = "arithmetic(uint256)"

// GetArithmeticExample mixes arithmetic operations in a loop of n iterations.
// All operations wrap around at 2^256; the result is reduced modulo 2^31-1.
func GetArithmeticExample() Computation {
	// Replaces the result on the stack [r', i, r, n] -> [i, r', n].
	update := func(a *assembler) {
		a.op(vm.SWAP2, vm.POP)
	}

	a := newAssembler()
	selectFunction(a, arithmeticSignature)
	a.label(arithmeticSignature).op(vm.POP)

	// Stack layout during the loop: [i, result, n].
	a.push(4).op(vm.CALLDATALOAD).push(0).push(1)
	a.label("loop").
		op(vm.DUP3, vm.DUP2, vm.GT).jumpIfTo("done")

	// result += i
	a.op(vm.DUP1, vm.DUP3, vm.ADD)
	update(a)
	// result *= i
	a.op(vm.DUP1, vm.DUP3, vm.MUL)
	update(a)
	// result += i*i
	a.op(vm.DUP1, vm.DUP1, vm.MUL, vm.DUP3, vm.ADD)
	update(a)
	// result -= i
	a.op(vm.DUP1, vm.DUP3, vm.SUB)
	update(a)
	// result /= i
	a.op(vm.DUP1, vm.DUP3, vm.DIV)
	update(a)
	// result *= i%3 + 1
	a.push(3).op(vm.DUP2, vm.MOD).push(1).op(vm.ADD, vm.DUP3, vm.MUL)
	update(a)
	// result += i*i*i
	a.op(vm.DUP1, vm.DUP1, vm.DUP1, vm.MUL, vm.MUL, vm.DUP3, vm.ADD)
	update(a)

	a.push(1).op(vm.ADD).jumpTo("loop")

	a.label("done").op(vm.POP).
		push(0x7f, 0xff, 0xff, 0xff).op(vm.SWAP1, vm.MOD).
		push(0).op(vm.MSTORE).
		push(32).push(0).op(vm.RETURN)

	return Computation{
		Name:      "arithmetic",
		Runtime:   a.bytes(),
		Function:  abi.ComputeSelector(arithmeticSignature),
		reference: arithmetic,
	}
}

func arithmetic(n int) int {
	iterations := uint256.NewInt(uint64(n))
	result := uint256.NewInt(0)
	for i := uint256.NewInt(1); !i.Gt(iterations); i.AddUint64(i, 1) {
		iSquared := new(uint256.Int).Mul(i, i)
		iCubed := new(uint256.Int).Mul(iSquared, i)
		factor := new(uint256.Int).Mod(i, uint256.NewInt(3))
		result.Add(result, i)
		result.Mul(result, i)
		result.Add(result, iSquared)
		result.Sub(result, i)
		result.Div(result, i)
		result.Mul(result, factor.AddUint64(factor, 1))
		result.Add(result, iCubed)
	}
	result.Mod(result, uint256.NewInt(math.MaxInt32))
	return int(result.Uint64())
}
