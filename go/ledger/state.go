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
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"golang.org/x/exp/maps"
)

// StateDB is the state transactions are executed on.
type StateDB interface {
	vm.StateDB
	SetTxContext(thash common.Hash, ti int)
	GetLogs(hash common.Hash, blockNumber uint64, blockHash common.Hash) []*types.Log
	Finalise(deleteEmptyObjects bool)
}

// trackedState is an in-memory state recording every account and storage
// slot written to, such that the state can be listed without a trie walk.
type trackedState struct {
	*state.StateDB
	slots map[common.Address]map[common.Hash]struct{}
}

func newTrackedState() (*trackedState, error) {
	db, err := state.New(types.EmptyRootHash, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}
	return &trackedState{
		StateDB: db,
		slots:   map[common.Address]map[common.Hash]struct{}{},
	}, nil
}

func (s *trackedState) touch(addr common.Address) map[common.Hash]struct{} {
	keys, found := s.slots[addr]
	if !found {
		keys = map[common.Hash]struct{}{}
		s.slots[addr] = keys
	}
	return keys
}

func (s *trackedState) CreateAccount(addr common.Address) {
	s.touch(addr)
	s.StateDB.CreateAccount(addr)
}

func (s *trackedState) AddBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) {
	s.touch(addr)
	s.StateDB.AddBalance(addr, amount, reason)
}

func (s *trackedState) SetNonce(addr common.Address, nonce uint64) {
	s.touch(addr)
	s.StateDB.SetNonce(addr, nonce)
}

func (s *trackedState) SetCode(addr common.Address, code []byte) {
	s.touch(addr)
	s.StateDB.SetCode(addr, code)
}

func (s *trackedState) SetState(addr common.Address, key, value common.Hash) {
	s.touch(addr)[key] = struct{}{}
	s.StateDB.SetState(addr, key, value)
}

// addresses lists all touched accounts in ascending order.
func (s *trackedState) addresses() []common.Address {
	res := maps.Keys(s.slots)
	slices.SortFunc(res, func(a, b common.Address) int {
		return a.Cmp(b)
	})
	return res
}

func (s *trackedState) account(addr common.Address) Account {
	account := Account{
		Balance: *s.GetBalance(addr),
		Nonce:   s.GetNonce(addr),
		Code:    slices.Clone(s.GetCode(addr)),
	}
	for key := range s.slots[addr] {
		if value := s.GetState(addr, key); value != (common.Hash{}) {
			if account.Storage == nil {
				account.Storage = Storage{}
			}
			account.Storage[key] = value
		}
	}
	return account
}

func (s *trackedState) worldState() WorldState {
	res := WorldState{}
	for _, addr := range s.addresses() {
		if account := s.account(addr); !account.IsEmpty() {
			res[addr] = account
		}
	}
	return res
}
