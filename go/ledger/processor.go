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

//go:generate mockgen -source processor.go -destination processor_mock.go -package ledger

import (
	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	ErrStaticCreation = prova.ConstError("contract creation can not be static")
	ErrNilState       = prova.ConstError("no state to run the transaction on")
)

// BlockParameters describe the block a transaction is executed in.
type BlockParameters struct {
	Revision    prova.Revision
	ChainID     uint64
	BlockNumber uint64
	Timestamp   uint64
	Coinbase    common.Address
	GasLimit    uint64
	PrevRandao  common.Hash
}

// Transaction is a message sent by an externally owned account. A nil
// recipient requests a contract creation with the input as init code.
type Transaction struct {
	Sender    common.Address
	Recipient *common.Address
	Input     []byte
	Value     *uint256.Int // nil is zero
	GasLimit  uint64

	// Static transactions may not modify any state.
	Static bool

	// Committed transactions increment the sender's nonce and keep their
	// effects. All others are rolled back after execution.
	Committed bool
}

func (t Transaction) IsCreation() bool {
	return t.Recipient == nil
}

// Processor executes transactions on a state. Reverted or halted executions
// are reported through the receipt; an error signals a transaction that
// could not be executed at all.
type Processor interface {
	Run(block BlockParameters, transaction Transaction, state StateDB) (Receipt, error)
}
