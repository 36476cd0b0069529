// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"golang.org/x/exp/maps"
)

// WorldState is a snapshot of the accounts of a ledger. Missing accounts and
// empty accounts are equivalent.
type WorldState map[common.Address]Account

// Addresses lists the addresses of all non-empty accounts in ascending order.
func (s WorldState) Addresses() []common.Address {
	res := make([]common.Address, 0, len(s))
	for address, account := range s {
		if !account.IsEmpty() {
			res = append(res, address)
		}
	}
	slices.SortFunc(res, func(a, b common.Address) int { return a.Cmp(b) })
	return res
}

func (s WorldState) Equal(other WorldState) bool {
	return len(s.Diff(other)) == 0
}

func (s WorldState) Clone() WorldState {
	if s == nil {
		return nil
	}
	res := make(WorldState, len(s))
	for address, account := range s {
		res[address] = account.Clone()
	}
	return res
}

// Diff lists the differences between two world states, ordered by address.
// Each entry is prefixed with the address of the affected account.
func (s WorldState) Diff(other WorldState) []string {
	addresses := append(s.Addresses(), other.Addresses()...)
	slices.SortFunc(addresses, func(a, b common.Address) int { return a.Cmp(b) })
	addresses = slices.Compact(addresses)

	var res []string
	for _, address := range addresses {
		a, b := s[address], other[address]
		for _, diff := range a.Diff(&b) {
			res = append(res, fmt.Sprintf("%v: %s", address, diff))
		}
	}
	return res
}

// Account is the state of a single address. The zero value is the empty
// account.
type Account struct {
	Balance uint256.Int
	Nonce   uint64
	Code    []byte
	Storage Storage
}

// IsEmpty reports whether the account holds no balance, nonce, code or
// non-zero storage slot.
func (a *Account) IsEmpty() bool {
	return a.Balance.IsZero() && a.Nonce == 0 && len(a.Code) == 0 && len(a.Storage.Keys()) == 0
}

// CodeHash is the Keccak256 hash of the account's code.
func (a *Account) CodeHash() common.Hash {
	if len(a.Code) == 0 {
		return types.EmptyCodeHash
	}
	return crypto.Keccak256Hash(a.Code)
}

func (a *Account) Equal(other *Account) bool {
	return len(a.Diff(other)) == 0
}

func (a *Account) Clone() Account {
	return Account{
		Balance: a.Balance,
		Nonce:   a.Nonce,
		Code:    bytes.Clone(a.Code),
		Storage: a.Storage.Clone(),
	}
}

// Diff lists the differences between two accounts. Code is compared by hash.
func (a *Account) Diff(other *Account) []string {
	var res []string
	if a.Balance != other.Balance {
		res = append(res, fmt.Sprintf("balance %v != %v", &a.Balance, &other.Balance))
	}
	if a.Nonce != other.Nonce {
		res = append(res, fmt.Sprintf("nonce %d != %d", a.Nonce, other.Nonce))
	}
	if !bytes.Equal(a.Code, other.Code) {
		res = append(res, fmt.Sprintf("code hash %v != %v", a.CodeHash(), other.CodeHash()))
	}
	return append(res, a.Storage.Diff(other.Storage)...)
}

// Storage maps the slots of an account to their values. Missing slots are
// zero.
type Storage map[common.Hash]common.Hash

// Keys lists the slots holding non-zero values in ascending order.
func (s Storage) Keys() []common.Hash {
	res := make([]common.Hash, 0, len(s))
	for key, value := range s {
		if value != (common.Hash{}) {
			res = append(res, key)
		}
	}
	slices.SortFunc(res, func(a, b common.Hash) int { return a.Cmp(b) })
	return res
}

func (s Storage) Equal(other Storage) bool {
	return len(s.Diff(other)) == 0
}

func (s Storage) Clone() Storage {
	if s == nil {
		return nil
	}
	res := make(Storage, len(s))
	maps.Copy(res, s)
	return res
}

// Diff lists the slots holding different values, ordered by slot.
func (s Storage) Diff(other Storage) []string {
	keys := append(s.Keys(), other.Keys()...)
	slices.SortFunc(keys, func(a, b common.Hash) int { return a.Cmp(b) })
	keys = slices.Compact(keys)

	var res []string
	for _, key := range keys {
		if a, b := s[key], other[key]; a != b {
			res = append(res, fmt.Sprintf("slot %v: %v != %v", key, a, b))
		}
	}
	return res
}
