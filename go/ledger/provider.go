// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ledger simulates a single-node chain for testing contracts. A
// Provider owns an in-memory state and an active sender on whose behalf
// contracts are deployed, called and sent transactions.
//
// Deploy and Send commit their effects, Call and StaticCall never modify the
// state. Reverts and halts are results, not errors.
package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Provider is a simulated ledger. A provider is not safe for concurrent use.
type Provider struct {
	config    Config
	processor Processor
	state     *trackedState
	sender    common.Address
	log       log.Logger
}

func NewProvider(config Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	state, err := newTrackedState()
	if err != nil {
		return nil, err
	}
	processor := config.Processor
	if processor == nil {
		processor = NewGethProcessor()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Root()
	}
	return &Provider{
		config:    config,
		processor: processor,
		state:     state,
		sender:    config.Sender,
		log:       logger,
	}, nil
}

// Deploy creates a contract with the given init code. The address of the
// new contract is derived from the sender and its nonce before the creation.
func (p *Provider) Deploy(code []byte, value *uint256.Int) (Receipt, error) {
	receipt, err := p.run(Transaction{
		Input:     code,
		Value:     value,
		Committed: true,
	})
	if err != nil {
		return Receipt{}, err
	}
	p.log.Debug("Deployed contract", "sender", p.sender, "result", receipt.Result, "address", receipt.ContractAddress, "gas", receipt.GasUsed)
	return receipt, nil
}

// Call executes a message without keeping any of its effects.
func (p *Provider) Call(to common.Address, data []byte, value *uint256.Int) (Result, error) {
	receipt, err := p.run(Transaction{
		Recipient: &to,
		Input:     data,
		Value:     value,
	})
	return receipt.Result, err
}

// StaticCall executes a message in which any state modification halts the
// execution.
func (p *Provider) StaticCall(to common.Address, data []byte) (Result, error) {
	receipt, err := p.run(Transaction{
		Recipient: &to,
		Input:     data,
		Static:    true,
	})
	return receipt.Result, err
}

// Send executes a transaction and commits its effects.
func (p *Provider) Send(to common.Address, data []byte, value *uint256.Int) (Receipt, error) {
	receipt, err := p.run(Transaction{
		Recipient: &to,
		Input:     data,
		Value:     value,
		Committed: true,
	})
	if err != nil {
		return Receipt{}, err
	}
	p.log.Debug("Sent transaction", "sender", p.sender, "recipient", to, "result", receipt.Result, "gas", receipt.GasUsed)
	return receipt, nil
}

func (p *Provider) run(transaction Transaction) (Receipt, error) {
	transaction.Sender = p.sender
	transaction.GasLimit = p.config.GasLimit
	receipt, err := p.processor.Run(p.block(), transaction, p.state)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to process transaction: %w", err)
	}
	return receipt, nil
}

func (p *Provider) block() BlockParameters {
	return BlockParameters{
		Revision:    p.config.Revision,
		ChainID:     p.config.ChainID,
		BlockNumber: p.config.BlockNumber,
		Timestamp:   p.config.Timestamp,
		Coinbase:    p.config.Coinbase,
		GasLimit:    p.config.GasLimit,
	}
}

// Mint credits the given amount to an account, bypassing any transaction.
// A nil amount is treated as zero.
func (p *Provider) Mint(amount *uint256.Int, to common.Address) {
	if amount == nil {
		return
	}
	p.state.AddBalance(to, amount, tracing.BalanceChangeUnspecified)
	p.state.Finalise(true)
}

// Impersonate makes the given address the sender of all subsequent
// operations.
func (p *Provider) Impersonate(who common.Address) {
	p.sender = who
}

func (p *Provider) Sender() common.Address {
	return p.sender
}

func (p *Provider) Balance(addr common.Address) *uint256.Int {
	return p.state.GetBalance(addr).Clone()
}

func (p *Provider) Nonce(addr common.Address) uint64 {
	return p.state.GetNonce(addr)
}

func (p *Provider) Code(addr common.Address) []byte {
	return common.CopyBytes(p.state.GetCode(addr))
}

func (p *Provider) CodeHash(addr common.Address) common.Hash {
	return p.state.GetCodeHash(addr)
}

func (p *Provider) Storage(addr common.Address, key common.Hash) common.Hash {
	return p.state.GetState(addr, key)
}

func (p *Provider) Account(addr common.Address) Account {
	return p.state.account(addr)
}

// State lists all non-empty accounts the provider has written to.
func (p *Provider) State() WorldState {
	return p.state.worldState()
}
