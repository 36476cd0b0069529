// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package harness

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/Fantom-foundation/Prova/go/compiler"
	"github.com/Fantom-foundation/Prova/go/examples"
	"github.com/Fantom-foundation/Prova/go/ledger"
	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	ErrDeploymentFailed = prova.ConstError("deployment failed")
	ErrExecutionFailed  = prova.ConstError("execution failed")
)

// ExecutionError reports a deployment or invocation that did not succeed.
type ExecutionError struct {
	Contract string
	Result   ledger.Result
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Err, e.Contract, e.Result)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Instance is a contract ready to be deployed.
type Instance struct {
	Name string
	Code []byte // init code
	Abi  []abi.Entry
}

// NewInstance creates an instance of a compiled contract.
func NewInstance(contract compiler.CompiledContract) (*Instance, error) {
	code, err := contract.Code()
	if err != nil {
		return nil, fmt.Errorf("invalid code of %s: %w", contract.Name, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("contract %s has no code", contract.Name)
	}
	return &Instance{
		Name: contract.Name,
		Code: code,
		Abi:  contract.Abi,
	}, nil
}

// ContractOf creates an instance of a hand-assembled example program.
func ContractOf(program examples.Program) *Instance {
	return &Instance{
		Name: program.Name,
		Code: program.InitCode(),
		Abi:  program.Abi,
	}
}

// Deploy creates the contract on the given ledger. Deployments that revert or
// halt are reported as an *ExecutionError.
func (i *Instance) Deploy(provider *ledger.Provider, value *uint256.Int) (*Deployed, error) {
	receipt, err := provider.Deploy(i.Code, value)
	if err != nil {
		return nil, err
	}
	if !receipt.Succeeded() || receipt.ContractAddress == nil {
		return nil, &ExecutionError{Contract: i.Name, Result: receipt.Result, Err: ErrDeploymentFailed}
	}
	return &Deployed{
		Name:     i.Name,
		Address:  *receipt.ContractAddress,
		Abi:      i.Abi,
		provider: provider,
	}, nil
}

// Deployed is a contract living on a ledger.
type Deployed struct {
	Name     string
	Address  common.Address
	Abi      []abi.Entry
	provider *ledger.Provider
}

func (d *Deployed) Call(data []byte) (ledger.Result, error) {
	return d.provider.Call(d.Address, data, nil)
}

func (d *Deployed) StaticCall(data []byte) (ledger.Result, error) {
	return d.provider.StaticCall(d.Address, data)
}

func (d *Deployed) Send(data []byte, value *uint256.Int) (ledger.Receipt, error) {
	return d.provider.Send(d.Address, data, value)
}

// Invoke calls a function of the contract identified by its name or
// signature. Arguments are encoded according to the function's ABI. Read-only
// functions are executed as static calls, all others as transactions.
func (d *Deployed) Invoke(method string, args ...[]byte) (ledger.Result, error) {
	function, err := abi.FindFunction(d.Abi, method)
	if err != nil {
		return ledger.Result{}, err
	}
	data, err := abi.EncodeCall(function.Signature(), args...)
	if err != nil {
		return ledger.Result{}, err
	}
	if function.IsReadOnly() {
		return d.StaticCall(data)
	}
	receipt, err := d.Send(data, nil)
	return receipt.Result, err
}

// Query invokes a function and decodes its return values. Unsuccessful
// executions are reported as an *ExecutionError.
func (d *Deployed) Query(method string, args ...[]byte) ([][]byte, error) {
	function, err := abi.FindFunction(d.Abi, method)
	if err != nil {
		return nil, err
	}
	result, err := d.Invoke(function.Signature(), args...)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return nil, &ExecutionError{Contract: d.Name, Result: result, Err: ErrExecutionFailed}
	}
	return abi.DecodeReturn(result.Output, function.OutputTypes()...)
}

// IsExecutionError reports whether err is caused by a reverted or halted
// execution.
func IsExecutionError(err error) bool {
	var target *ExecutionError
	return errors.As(err, &target)
}
