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
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

// Status is the outcome class of an execution. Every execution ends in
// exactly one of them.
type Status int

const (
	Success Status = iota
	Revert
	Halt
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Revert:
		return "revert"
	case Halt:
		return "halt"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// HaltReason tags the fatal condition that stopped a halted execution.
type HaltReason string

const (
	HaltOutOfGas              HaltReason = "out of gas"
	HaltIntrinsicGas          HaltReason = "intrinsic gas too low"
	HaltCodeStoreOutOfGas     HaltReason = "code store out of gas"
	HaltInvalidOpCode         HaltReason = "invalid opcode"
	HaltStackUnderflow        HaltReason = "stack underflow"
	HaltStackOverflow         HaltReason = "stack overflow"
	HaltInvalidJump           HaltReason = "invalid jump"
	HaltWriteProtection       HaltReason = "write protection"
	HaltReturnDataOutOfBounds HaltReason = "return data out of bounds"
	HaltInsufficientBalance   HaltReason = "insufficient balance"
	HaltCallDepth             HaltReason = "max call depth exceeded"
	HaltMaxCodeSize           HaltReason = "max code size exceeded"
	HaltMaxInitCodeSize       HaltReason = "max init code size exceeded"
	HaltAddressCollision      HaltReason = "contract address collision"
	HaltNonceOverflow         HaltReason = "nonce overflow"
	HaltInvalidCode           HaltReason = "invalid code"
	HaltGasOverflow           HaltReason = "gas overflow"
	HaltOther                 HaltReason = "other"
)

// Result is the classified outcome of an execution. Output holds the
// returned data on Success and the revert data on Revert. A halted execution
// has no output; its Reason says why it stopped.
type Result struct {
	Status Status
	Output []byte
	Reason HaltReason
	Detail string // message of the underlying EVM error, if any
}

func (r Result) Succeeded() bool {
	return r.Status == Success
}

func (r Result) String() string {
	switch r.Status {
	case Success:
		return fmt.Sprintf("success(0x%x)", r.Output)
	case Revert:
		return fmt.Sprintf("revert(0x%x)", r.Output)
	default:
		return fmt.Sprintf("halt(%s)", r.Reason)
	}
}

type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Receipt summarizes a processed transaction.
type Receipt struct {
	Result
	GasUsed uint64
	Logs    []Log

	// ContractAddress is the address of the created contract. It is only set
	// for successful contract creations.
	ContractAddress *common.Address
}

// classify maps the outcome of an EVM invocation to a Result.
func classify(output []byte, err error) Result {
	if err == nil {
		return Result{Status: Success, Output: output}
	}
	if errors.Is(err, vm.ErrExecutionReverted) {
		return Result{Status: Revert, Output: output, Detail: err.Error()}
	}
	return Result{Status: Halt, Reason: haltReason(err), Detail: err.Error()}
}

func haltReason(err error) HaltReason {
	switch {
	case errors.Is(err, vm.ErrOutOfGas):
		return HaltOutOfGas
	case errors.Is(err, vm.ErrCodeStoreOutOfGas):
		return HaltCodeStoreOutOfGas
	case errors.Is(err, vm.ErrDepth):
		return HaltCallDepth
	case errors.Is(err, vm.ErrInsufficientBalance):
		return HaltInsufficientBalance
	case errors.Is(err, vm.ErrContractAddressCollision):
		return HaltAddressCollision
	case errors.Is(err, vm.ErrMaxCodeSizeExceeded):
		return HaltMaxCodeSize
	case errors.Is(err, vm.ErrMaxInitCodeSizeExceeded):
		return HaltMaxInitCodeSize
	case errors.Is(err, vm.ErrInvalidJump):
		return HaltInvalidJump
	case errors.Is(err, vm.ErrWriteProtection):
		return HaltWriteProtection
	case errors.Is(err, vm.ErrReturnDataOutOfBounds):
		return HaltReturnDataOutOfBounds
	case errors.Is(err, vm.ErrGasUintOverflow):
		return HaltGasOverflow
	case errors.Is(err, vm.ErrInvalidCode):
		return HaltInvalidCode
	case errors.Is(err, vm.ErrNonceUintOverflow):
		return HaltNonceOverflow
	}

	var stackOverflow *vm.ErrStackOverflow
	if errors.As(err, &stackOverflow) {
		return HaltStackOverflow
	}
	var stackUnderflow *vm.ErrStackUnderflow
	if errors.As(err, &stackUnderflow) {
		return HaltStackUnderflow
	}
	var invalidOpCode *vm.ErrInvalidOpCode
	if errors.As(err, &invalidOpCode) {
		return HaltInvalidOpCode
	}
	return HaltOther
}
