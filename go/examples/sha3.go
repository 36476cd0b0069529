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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"golang.org/x/crypto/sha3"
)

// GetSha3Example hashes a zero word x times and returns the last byte of the
// final hash. The argument is read from the call data without dispatching on
// a selector.
func GetSha3Example() Computation {
	code := newAssembler().
		// Parse the input parameter.
		push(4).op(vm.CALLDATALOAD).

		// Loop until the iterator reaches zero.
		label("loop").
		op(vm.DUP1, vm.ISZERO).jumpIfTo("done").

		// Compute one hash step over memory[0:32].
		push(32).push(0).op(vm.KECCAK256).
		push(0).op(vm.MSTORE).

		// Decrement the iterator.
		push(1).op(vm.SWAP1, vm.SUB).
		jumpTo("loop").

		// Mask out everything but the last byte and return it.
		label("done").
		push(0).op(vm.MLOAD).
		push(255).op(vm.AND).
		push(0).op(vm.MSTORE).
		push(32).push(0).op(vm.RETURN).
		bytes()

	return Computation{
		Name:      "sha3",
		Runtime:   code,
		reference: sha3Ref,
	}
}

func sha3Ref(x int) int {
	var hash common.Hash
	hasher := sha3.NewLegacyKeccak256()
	for i := 0; i < x; i++ {
		hasher.Reset()
		hasher.Write(hash[:])
		hasher.Sum(hash[0:0])
	}
	return int(hash[31])
}
