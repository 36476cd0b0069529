// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package prova

import "github.com/holiman/uint256"

const (
	weiPerGwei  = 1_000_000_000
	weiPerEther = 1_000_000_000_000_000_000
)

// Wei returns the given amount of wei as a 256-bit value.
func Wei(amount uint64) *uint256.Int {
	return uint256.NewInt(amount)
}

// Gwei converts an amount of gwei into wei.
func Gwei(amount uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(weiPerGwei))
}

// Ether converts an amount of ether into wei.
func Ether(amount uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(weiPerEther))
}
