// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package compiler

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/Fantom-foundation/Prova/go/prova"
	"golang.org/x/exp/maps"
)

const (
	ErrContractNotFound = prova.ConstError("contract not found")
	ErrUnlinkedCode     = prova.ConstError("bytecode contains unlinked library references")
)

// Output is the result of a successful compilation. The set of
// implementations is closed: *SolidityOutput, *VyperOutput and *HuffOutput.
type Output interface {
	Kind() Kind
	// Diagnostics lists non-fatal messages reported by the compiler.
	Diagnostics() []Diagnostic
	// Contracts returns all compiled contracts, keyed by source file and
	// contract name.
	Contracts() map[string]map[string]CompiledContract
}

// CompiledContract is the language independent view of a compiled contract.
type CompiledContract struct {
	File             string
	Name             string
	Abi              []abi.Entry
	Bytecode         string // hex encoded creation code
	DeployedBytecode string // hex encoded runtime code
	Metadata         string
}

// Code decodes the creation code of the contract.
func (c CompiledContract) Code() ([]byte, error) {
	return decodeCode(c.Bytecode)
}

// RuntimeCode decodes the code installed by the contract's constructor.
func (c CompiledContract) RuntimeCode() ([]byte, error) {
	return decodeCode(c.DeployedBytecode)
}

func decodeCode(code string) ([]byte, error) {
	code = strings.TrimPrefix(code, "0x")
	if strings.Contains(code, "__") {
		return nil, ErrUnlinkedCode
	}
	res, err := hex.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return res, nil
}

// Diagnostic is an entry of the errors list of a standard JSON output.
type Diagnostic struct {
	Type             string          `json:"type"`
	Component        string          `json:"component,omitempty"`
	Severity         string          `json:"severity,omitempty"`
	Message          string          `json:"message"`
	FormattedMessage string          `json:"formattedMessage,omitempty"`
	SourceLocation   json.RawMessage `json:"sourceLocation,omitempty"`
}

// Text returns the formatted message, or the plain message if the compiler
// did not format it.
func (d Diagnostic) Text() string {
	if d.FormattedMessage != "" {
		return d.FormattedMessage
	}
	return d.Message
}

// IsError reports whether the diagnostic is more severe than a warning.
// Entries without a severity count as errors.
func (d Diagnostic) IsError() bool {
	return d.Severity != "warning" && d.Severity != "info"
}

// BytecodeObject is the bytecode section of a standard JSON contract.
type BytecodeObject struct {
	Object    string `json:"object"`
	Opcodes   string `json:"opcodes,omitempty"`
	SourceMap string `json:"sourceMap,omitempty"`
}

// StandardJSONContract is a contract in a standard JSON output.
type StandardJSONContract struct {
	Abi      []abi.Entry `json:"abi,omitempty"`
	Metadata string      `json:"metadata,omitempty"`
	Evm      struct {
		Bytecode         BytecodeObject `json:"bytecode"`
		DeployedBytecode BytecodeObject `json:"deployedBytecode"`
	} `json:"evm"`
}

type SourceUnit struct {
	ID int `json:"id"`
}

// StandardJSONOutput is the output format shared by solc and vyper.
type StandardJSONOutput struct {
	Errors   []Diagnostic                               `json:"errors,omitempty"`
	Sources  map[string]SourceUnit                      `json:"sources,omitempty"`
	Compiled map[string]map[string]StandardJSONContract `json:"contracts,omitempty"`
}

func (o *StandardJSONOutput) Diagnostics() []Diagnostic {
	return o.Errors
}

func (o *StandardJSONOutput) Contracts() map[string]map[string]CompiledContract {
	res := make(map[string]map[string]CompiledContract, len(o.Compiled))
	for file, contracts := range o.Compiled {
		res[file] = make(map[string]CompiledContract, len(contracts))
		for name, contract := range contracts {
			res[file][name] = CompiledContract{
				File:             file,
				Name:             name,
				Abi:              contract.Abi,
				Bytecode:         strings.TrimPrefix(contract.Evm.Bytecode.Object, "0x"),
				DeployedBytecode: strings.TrimPrefix(contract.Evm.DeployedBytecode.Object, "0x"),
				Metadata:         contract.Metadata,
			}
		}
	}
	return res
}

// SolidityOutput is the standard JSON output of solc.
type SolidityOutput struct {
	StandardJSONOutput
}

func (*SolidityOutput) Kind() Kind { return Solidity }

// VyperOutput is the standard JSON output of vyper.
type VyperOutput struct {
	Compiler string `json:"compiler,omitempty"`
	StandardJSONOutput
}

func (*VyperOutput) Kind() Kind { return Vyper }

// HuffOutput is the artifact written by huffc.
type HuffOutput struct {
	File     HuffFile `json:"file"`
	Bytecode string   `json:"bytecode"`
	Runtime  string   `json:"runtime"`
	Abi      HuffAbi  `json:"abi"`

	// source is the name of the compiled file in the request.
	source string
}

type HuffFile struct {
	Path         string          `json:"path"`
	Source       string          `json:"source"`
	Access       json.RawMessage `json:"access,omitempty"`
	Dependencies json.RawMessage `json:"dependencies,omitempty"`
}

// HuffAbi is the ABI section of a huffc artifact. Functions, events and errors
// are objects keyed by name.
type HuffAbi struct {
	Constructor json.RawMessage `json:"constructor,omitempty"`
	Functions   json.RawMessage `json:"functions,omitempty"`
	Events      json.RawMessage `json:"events,omitempty"`
	Errors      json.RawMessage `json:"errors,omitempty"`
	Receive     bool            `json:"receive"`
	Fallback    bool            `json:"fallback"`
}

type HuffFunction struct {
	Name            string      `json:"name"`
	Inputs          []HuffParam `json:"inputs"`
	Outputs         []HuffParam `json:"outputs"`
	Constant        bool        `json:"constant"`
	StateMutability string      `json:"state_mutability"`
}

// HuffParam is a function parameter. Its kind is the serialized parameter type
// enum of huffc, e.g. "Address" or {"Uint":256}.
type HuffParam struct {
	Name string          `json:"name"`
	Kind json.RawMessage `json:"kind"`
}

func (*HuffOutput) Kind() Kind { return Huff }

func (*HuffOutput) Diagnostics() []Diagnostic { return nil }

// ContractName is the name of the compiled contract, the base name of its
// source file.
func (o *HuffOutput) ContractName() string {
	file := o.source
	if file == "" {
		file = o.File.Path
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (o *HuffOutput) Contracts() map[string]map[string]CompiledContract {
	file := o.source
	if file == "" {
		file = o.File.Path
	}
	name := o.ContractName()
	return map[string]map[string]CompiledContract{
		file: {
			name: {
				File:             file,
				Name:             name,
				Abi:              o.Abi.entries(),
				Bytecode:         strings.TrimPrefix(o.Bytecode, "0x"),
				DeployedBytecode: strings.TrimPrefix(o.Runtime, "0x"),
			},
		},
	}
}

// entries converts the huffc ABI into ABI entries. Functions with parameter
// types that cannot be expressed are left out.
func (a HuffAbi) entries() []abi.Entry {
	var res []abi.Entry
	var functions map[string]HuffFunction
	if len(a.Functions) > 0 && json.Unmarshal(a.Functions, &functions) != nil {
		functions = nil
	}
	names := maps.Keys(functions)
	slices.Sort(names)
	for _, name := range names {
		entry, ok := functions[name].entry()
		if ok {
			res = append(res, entry)
		}
	}
	if a.Receive {
		res = append(res, abi.Entry{Type: abi.Receive, StateMutability: abi.Payable})
	}
	if a.Fallback {
		res = append(res, abi.Entry{Type: abi.Fallback})
	}
	return res
}

func (f HuffFunction) entry() (abi.Entry, bool) {
	var mutability abi.StateMutability
	if f.StateMutability != "" {
		if err := mutability.UnmarshalText([]byte(strings.ToLower(f.StateMutability))); err != nil {
			return abi.Entry{}, false
		}
	}
	inputs, ok := huffArguments(f.Inputs)
	if !ok {
		return abi.Entry{}, false
	}
	outputs, ok := huffArguments(f.Outputs)
	if !ok {
		return abi.Entry{}, false
	}
	return abi.Entry{
		Type:            abi.Function,
		Name:            f.Name,
		Inputs:          inputs,
		Outputs:         outputs,
		StateMutability: mutability,
	}, true
}

func huffArguments(params []HuffParam) ([]abi.Argument, bool) {
	res := make([]abi.Argument, 0, len(params))
	for _, param := range params {
		typ, ok := huffType(param.Kind)
		if !ok {
			return nil, false
		}
		res = append(res, abi.Argument{Name: param.Name, Type: typ})
	}
	return res, true
}

func huffType(kind json.RawMessage) (string, bool) {
	var simple string
	if err := json.Unmarshal(kind, &simple); err == nil {
		switch simple {
		case "Address", "Bool", "String", "Bytes":
			return strings.ToLower(simple), true
		}
		return "", false
	}
	var sized map[string]int
	if err := json.Unmarshal(kind, &sized); err != nil || len(sized) != 1 {
		return "", false
	}
	for variant, size := range sized {
		switch variant {
		case "Uint":
			return fmt.Sprintf("uint%d", size), true
		case "Int":
			return fmt.Sprintf("int%d", size), true
		case "FixedBytes":
			return fmt.Sprintf("bytes%d", size), true
		}
	}
	return "", false
}

// FindContract returns the first contract with the given name. Files are
// searched in lexicographical order.
func FindContract(output Output, name string) (CompiledContract, error) {
	contracts := output.Contracts()
	files := maps.Keys(contracts)
	slices.Sort(files)
	for _, file := range files {
		if contract, found := contracts[file][name]; found {
			return contract, nil
		}
	}
	return CompiledContract{}, fmt.Errorf("%w: %q", ErrContractNotFound, name)
}

// Lookup returns the contract with the given name defined in the given file.
func Lookup(output Output, file, name string) (CompiledContract, error) {
	if contract, found := output.Contracts()[file][name]; found {
		return contract, nil
	}
	return CompiledContract{}, fmt.Errorf("%w: %q in %q", ErrContractNotFound, name, file)
}
