// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package examples provides small contracts for exercising the ledger and the
// harness: hand-assembled programs, computations with reference
// implementations and contract sources for the supported compilers.
package examples

import (
	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
)

// Program is a hand-assembled contract together with the ABI it implements.
type Program struct {
	Name    string
	Runtime []byte
	Abi     []abi.Entry
}

// InitCode returns code that deploys the program's runtime code.
func (p Program) InitCode() []byte {
	return InitCode(p.Runtime)
}

const initStubLength = 12

// InitCode wraps runtime code into creation code that copies the runtime code
// into memory and returns it.
func InitCode(runtime []byte) []byte {
	size := len(runtime)
	stub := newAssembler().
		push(byte(size>>8), byte(size)).
		op(vm.DUP1).
		push(initStubLength).
		push(0).
		op(vm.CODECOPY).
		push(0).
		op(vm.RETURN).
		bytes()
	return append(stub, runtime...)
}

const (
	SetValue  = "setValue(uint256)"
	GetValue  = "getValue()"
	Number    = "number()"
	SetNumber = "setNumber(uint256)"
	Increment = "increment()"
)

// Stop halts immediately without producing any output.
var Stop = Program{
	Name:    "stop",
	Runtime: []byte{byte(vm.STOP)},
}

// NonPayable reverts every call transferring value and stops otherwise.
var NonPayable = Program{
	Name: "non_payable",
	Runtime: newAssembler().
		op(vm.CALLVALUE, vm.ISZERO).jumpIfTo("no_value").
		push(0).push(0).op(vm.REVERT).
		label("no_value").op(vm.STOP).
		bytes(),
}

// SimpleStore keeps a single value in storage slot 0.
var SimpleStore = Program{
	Name: "simple_store",
	Runtime: func() []byte {
		a := newAssembler()
		selectFunction(a, SetValue, GetValue)
		a.label(SetValue).push(4).op(vm.CALLDATALOAD).push(0).op(vm.SSTORE, vm.STOP)
		a.label(GetValue)
		returnSlotZero(a)
		return a.bytes()
	}(),
	Abi: []abi.Entry{
		function(SetValue, abi.NonPayable, false),
		function(GetValue, abi.View, true),
	},
}

// Counter is a counter in storage slot 0 that rejects value transfers.
var Counter = Program{
	Name: "counter",
	Runtime: func() []byte {
		a := newAssembler()
		a.op(vm.CALLVALUE, vm.ISZERO).jumpIfTo("dispatch").
			push(0).op(vm.DUP1, vm.REVERT).
			label("dispatch")
		selectFunction(a, Number, SetNumber, Increment)
		a.label(Number)
		returnSlotZero(a)
		a.label(SetNumber).push(4).op(vm.CALLDATALOAD).push(0).op(vm.SSTORE, vm.STOP)
		a.label(Increment).push(0).op(vm.SLOAD).push(1).op(vm.ADD).push(0).op(vm.SSTORE, vm.STOP)
		return a.bytes()
	}(),
	Abi: []abi.Entry{
		function(Number, abi.View, true),
		function(SetNumber, abi.NonPayable, false),
		function(Increment, abi.NonPayable, false),
	},
}

// RevertData is the data returned by the Reverter program.
var RevertData = []byte{0xde, 0xad, 0xbe, 0xef}

// Reverter reverts every call with RevertData.
var Reverter = Program{
	Name: "reverter",
	Runtime: newAssembler().
		push(RevertData...).push(0).op(vm.MSTORE).
		push(byte(len(RevertData))).push(byte(32 - len(RevertData))).op(vm.REVERT).
		bytes(),
}

// Invalid executes the designated invalid instruction.
var Invalid = Program{
	Name:    "invalid",
	Runtime: []byte{byte(vm.INVALID)},
}

// Looper loops until it runs out of gas.
var Looper = Program{
	Name:    "looper",
	Runtime: newAssembler().label("loop").jumpTo("loop").bytes(),
}

// PingTopic is the topic of the log emitted by the Emitter program.
var PingTopic = crypto.Keccak256Hash([]byte("Ping(uint256)"))

// Emitter emits a log with the first word of its input as data.
var Emitter = Program{
	Name: "emitter",
	Runtime: newAssembler().
		push(0).op(vm.CALLDATALOAD).push(0).op(vm.MSTORE).
		push(PingTopic[:]...).push(32).push(0).op(vm.LOG1, vm.STOP).
		bytes(),
}

// Programs lists all hand-assembled programs.
func Programs() []Program {
	return []Program{Stop, NonPayable, SimpleStore, Counter, Reverter, Invalid, Looper, Emitter}
}

// selectFunction dispatches on the selector in the call data to the label
// named after the matching signature and reverts if none matches.
func selectFunction(a *assembler, signatures ...string) {
	a.push(0).op(vm.CALLDATALOAD).push(0xe0).op(vm.SHR)
	for _, signature := range signatures {
		selector := abi.ComputeSelector(signature)
		a.op(vm.DUP1).push(selector[:]...).op(vm.EQ).jumpIfTo(signature)
	}
	a.push(0).op(vm.DUP1, vm.REVERT)
}

func returnSlotZero(a *assembler) {
	a.push(0).op(vm.SLOAD).push(0).op(vm.MSTORE).push(32).push(0).op(vm.RETURN)
}

func function(signature string, mutability abi.StateMutability, returnsWord bool) abi.Entry {
	name, types, err := abi.ParseSignature(signature)
	if err != nil {
		panic(err)
	}
	entry := abi.Entry{
		Type:            abi.Function,
		Name:            name,
		StateMutability: mutability,
	}
	for _, typ := range types {
		entry.Inputs = append(entry.Inputs, abi.Argument{Type: typ})
	}
	if returnsWord {
		entry.Outputs = []abi.Argument{{Type: "uint256"}}
	}
	return entry
}
