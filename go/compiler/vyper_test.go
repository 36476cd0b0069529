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
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

const vyperCounterOutput = `{
	"compiler": "vyper-0.3.10",
	"contracts": {
		"Counter.vy": {
			"Counter": {
				"abi": [{"name":"number","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}],
				"evm": {
					"bytecode": {"object": "0x61003a61000f"},
					"deployedBytecode": {"object": "0x5f3560e01c"}
				}
			}
		}
	},
	"sources": {"Counter.vy": {"id": 0}}
}`

func TestVyper_SendsEvmVersionAndOutputSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)

	executor.EXPECT().Execute(gomock.Any()).DoAndReturn(func(command Command) (ExecResult, error) {
		if want, got := "vyper", command.Path; want != got {
			t.Errorf("unexpected binary, wanted %s, got %s", want, got)
		}
		input := decodeStdin(t, command)
		if want, got := "Vyper", input["language"]; want != got {
			t.Errorf("unexpected language, wanted %v, got %v", want, got)
		}
		settings := input["settings"].(map[string]any)
		if want, got := "paris", settings["evmVersion"]; want != got {
			t.Errorf("unexpected EVM version, wanted %v, got %v", want, got)
		}
		if _, found := settings["outputSelection"]; !found {
			t.Errorf("missing output selection in %v", settings)
		}
		return ExecResult{Stdout: []byte(vyperCounterOutput)}, nil
	})

	output, err := newTestDispatcher(t, executor).Compile(NewRequest(Vyper, "Counter.vy", "number: public(uint256)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := Vyper, output.Kind(); want != got {
		t.Errorf("unexpected kind, wanted %v, got %v", want, got)
	}
	if want, got := "vyper-0.3.10", output.(*VyperOutput).Compiler; want != got {
		t.Errorf("unexpected compiler, wanted %s, got %s", want, got)
	}
}

func TestVyper_BytecodePrefixIsStripped(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stdout: []byte(vyperCounterOutput)}, nil)

	output, err := newTestDispatcher(t, executor).Compile(NewRequest(Vyper, "Counter.vy", "number: public(uint256)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	contract, err := Lookup(output, "Counter.vy", "Counter")
	if err != nil {
		t.Fatalf("contract not found: %v", err)
	}
	if want, got := "61003a61000f", contract.Bytecode; want != got {
		t.Errorf("unexpected bytecode, wanted %s, got %s", want, got)
	}
	if want, got := "5f3560e01c", contract.DeployedBytecode; want != got {
		t.Errorf("unexpected runtime code, wanted %s, got %s", want, got)
	}
	if want, got := "number()", contract.Abi[0].Signature(); want != got {
		t.Errorf("unexpected signature, wanted %s, got %s", want, got)
	}
}

func TestVyper_MissingEvmVersionIsRequestError(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)

	request := NewRequest(Vyper, "Counter.vy", "number: public(uint256)")
	request.Settings = &VyperSettings{OutputSelection: SelectAll("abi")}

	_, err := newTestDispatcher(t, executor).Compile(request)
	var requestErr *RequestError
	if !errors.As(err, &requestErr) {
		t.Fatalf("expected request error, got %v", err)
	}
	if !errors.Is(err, ErrMissingSetting) {
		t.Errorf("unexpected cause: %v", err)
	}
}

func TestVyper_FirstErrorWins(t *testing.T) {
	const output = `{"errors":[
		{"type":"SyntaxException","component":"compiler","severity":"error","message":"invalid syntax (<unknown>, line 1)"},
		{"type":"StructureException","component":"compiler","severity":"error","message":"second"}
	]}`
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stdout: []byte(output)}, nil)

	_, err := newTestDispatcher(t, executor).Compile(NewRequest(Vyper, "Bad.vy", "def"))
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if want, got := "invalid syntax (<unknown>, line 1)", backendErr.Message; want != got {
		t.Errorf("unexpected message, wanted %q, got %q", want, got)
	}
	if want, got := Vyper, backendErr.Kind; want != got {
		t.Errorf("unexpected kind, wanted %v, got %v", want, got)
	}
}

func TestVyper_NonZeroExitReportsStderr(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stderr: []byte("boom"), ExitCode: 2}, nil)

	_, err := newTestDispatcher(t, executor).Compile(NewRequest(Vyper, "A.vy", ""))
	var backendErr *BackendError
	if !errors.As(err, &backendErr) || backendErr.Failure != ExitFailure || backendErr.Message != "boom" {
		t.Fatalf("expected exit failure with stderr, got %v", err)
	}
}
