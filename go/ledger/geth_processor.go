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
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// GethProcessor runs transactions on the go-ethereum EVM. Gas is not paid
// for: the gas price and all fees are zero. Transactions are not checked
// against the sender's nonce.
type GethProcessor struct {
	// Tracer, if set, is attached to every EVM instance.
	Tracer *tracing.Hooks
}

func NewGethProcessor() *GethProcessor {
	return &GethProcessor{}
}

func (p *GethProcessor) Run(
	block BlockParameters,
	transaction Transaction,
	state StateDB,
) (Receipt, error) {
	if state == nil {
		return Receipt{}, ErrNilState
	}
	if transaction.Static && transaction.IsCreation() {
		return Receipt{}, ErrStaticCreation
	}

	// --- setup ---

	value := transaction.Value
	if value == nil {
		value = new(uint256.Int)
	}

	chainConfig := makeChainConfig(block.Revision, block.ChainID)
	blockCtx := vm.BlockContext{
		CanTransfer: canTransferFunc,
		Transfer:    transferFunc,
		GetHash:     getHash,
		Coinbase:    block.Coinbase,
		GasLimit:    block.GasLimit,
		BlockNumber: new(big.Int).SetUint64(block.BlockNumber),
		Time:        block.Timestamp,
		Difficulty:  big.NewInt(1),
		BaseFee:     new(big.Int),
		BlobBaseFee: new(big.Int),
	}
	if block.Revision.IsPostMerge() {
		// The random value signals a post-merge revision to geth.
		random := block.PrevRandao
		blockCtx.Random = &random
		blockCtx.Difficulty = new(big.Int)
	}
	txCtx := vm.TxContext{
		Origin:   transaction.Sender,
		GasPrice: new(big.Int),
	}
	evm := vm.NewEVM(blockCtx, txCtx, state, chainConfig, vm.Config{Tracer: p.Tracer})
	rules := chainConfig.Rules(blockCtx.BlockNumber, blockCtx.Random != nil, blockCtx.Time)

	// --- execution ---

	intrinsic, err := intrinsicGas(transaction, rules)
	if err != nil || transaction.GasLimit < intrinsic {
		detail := fmt.Sprintf("have %d, want %d", transaction.GasLimit, intrinsic)
		if err != nil {
			detail = err.Error()
		}
		return Receipt{
			Result:  Result{Status: Halt, Reason: HaltIntrinsicGas, Detail: detail},
			GasUsed: transaction.GasLimit,
		}, nil
	}
	gas := transaction.GasLimit - intrinsic

	snapshot := state.Snapshot()
	txHash := transactionHash(transaction, state.GetNonce(transaction.Sender))
	state.SetTxContext(txHash, 0)
	state.Prepare(rules, transaction.Sender, block.Coinbase, transaction.Recipient, vm.ActivePrecompiles(rules), nil)

	// Tracers such as geth's JSON logger require the transaction start hook
	// before any opcode is reported.
	if p.Tracer != nil && p.Tracer.OnTxStart != nil {
		tx := types.NewTx(&types.LegacyTx{
			Nonce:    state.GetNonce(transaction.Sender),
			GasPrice: new(big.Int),
			Gas:      transaction.GasLimit,
			To:       transaction.Recipient,
			Value:    value.ToBig(),
			Data:     transaction.Input,
		})
		p.Tracer.OnTxStart(evm.GetVMContext(), tx, transaction.Sender)
	}

	var (
		sender  = vm.AccountRef(transaction.Sender)
		output  []byte
		gasLeft uint64
		vmErr   error
		created common.Address
	)
	switch {
	case transaction.IsCreation():
		output, created, gasLeft, vmErr = evm.Create(sender, transaction.Input, gas, value)
	case transaction.Static:
		output, gasLeft, vmErr = evm.StaticCall(sender, *transaction.Recipient, transaction.Input, gas)
	default:
		if transaction.Committed {
			state.SetNonce(transaction.Sender, state.GetNonce(transaction.Sender)+1)
		}
		output, gasLeft, vmErr = evm.Call(sender, *transaction.Recipient, transaction.Input, gas, value)
	}

	if vmErr == nil {
		refund := state.GetRefund()
		gasUsed := transaction.GasLimit - gasLeft
		maxRefund := gasUsed / params.RefundQuotientEIP3529
		if !rules.IsLondon {
			maxRefund = gasUsed / params.RefundQuotient
		}
		gasLeft += min(refund, maxRefund)
	}

	receipt := Receipt{
		Result:  classify(output, vmErr),
		GasUsed: transaction.GasLimit - gasLeft,
	}
	for _, log := range state.GetLogs(txHash, block.BlockNumber, common.Hash{}) {
		receipt.Logs = append(receipt.Logs, Log{
			Address: log.Address,
			Topics:  log.Topics,
			Data:    log.Data,
		})
	}
	if transaction.IsCreation() && vmErr == nil {
		receipt.ContractAddress = &created
	}

	if p.Tracer != nil && p.Tracer.OnTxEnd != nil {
		status := types.ReceiptStatusFailed
		if receipt.Result.Status == Success {
			status = types.ReceiptStatusSuccessful
		}
		p.Tracer.OnTxEnd(&types.Receipt{
			Type:    types.LegacyTxType,
			Status:  status,
			TxHash:  txHash,
			GasUsed: receipt.GasUsed,
		}, nil)
	}

	if transaction.Committed {
		state.Finalise(true)
	} else {
		state.RevertToSnapshot(snapshot)
	}
	return receipt, nil
}

// intrinsicGas computes the gas charged for a transaction before any code is
// executed.
func intrinsicGas(transaction Transaction, rules params.Rules) (uint64, error) {
	var gas uint64
	if transaction.IsCreation() {
		gas = params.TxGasContractCreation
	} else {
		gas = params.TxGas
	}
	input := transaction.Input
	if len(input) == 0 {
		return gas, nil
	}

	// Zero and non-zero bytes are priced differently.
	var nz uint64
	for _, cur := range input {
		if cur != 0 {
			nz++
		}
	}
	if (math.MaxUint64-gas)/params.TxDataNonZeroGasEIP2028 < nz {
		return 0, vm.ErrGasUintOverflow
	}
	gas += nz * params.TxDataNonZeroGasEIP2028

	z := uint64(len(input)) - nz
	if (math.MaxUint64-gas)/params.TxDataZeroGas < z {
		return 0, vm.ErrGasUintOverflow
	}
	gas += z * params.TxDataZeroGas

	if transaction.IsCreation() && rules.IsShanghai {
		words := (uint64(len(input)) + 31) / 32
		if (math.MaxUint64-gas)/params.InitCodeWordGas < words {
			return 0, vm.ErrGasUintOverflow
		}
		gas += words * params.InitCodeWordGas
	}
	return gas, nil
}

// transactionHash identifies the logs of a transaction in the state.
func transactionHash(transaction Transaction, nonce uint64) common.Hash {
	var recipient []byte
	if transaction.Recipient != nil {
		recipient = transaction.Recipient.Bytes()
	}
	var value [32]byte
	if transaction.Value != nil {
		value = transaction.Value.Bytes32()
	}
	return crypto.Keccak256Hash(
		transaction.Sender.Bytes(),
		binary.BigEndian.AppendUint64(nil, nonce),
		recipient,
		value[:],
		transaction.Input,
	)
}

func getHash(number uint64) common.Hash {
	return crypto.Keccak256Hash(binary.BigEndian.AppendUint64(nil, number))
}

func transferFunc(stateDB vm.StateDB, from common.Address, to common.Address, amount *uint256.Int) {
	stateDB.SubBalance(from, amount, tracing.BalanceChangeTransfer)
	stateDB.AddBalance(to, amount, tracing.BalanceChangeTransfer)
}

func canTransferFunc(stateDB vm.StateDB, from common.Address, amount *uint256.Int) bool {
	return stateDB.GetBalance(from).Cmp(amount) >= 0
}
