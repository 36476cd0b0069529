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
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"go.uber.org/mock/gomock"
)

const solcCounterOutput = `{
	"contracts": {
		"Counter.sol": {
			"Counter": {
				"abi": [
					{"inputs":[],"name":"number","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
					{"inputs":[],"name":"increment","outputs":[],"stateMutability":"nonpayable","type":"function"}
				],
				"evm": {
					"bytecode": {"object": "6080604052"},
					"deployedBytecode": {"object": "60806040"}
				},
				"metadata": "{\"compiler\":{\"version\":\"0.8.20\"}}"
			}
		}
	},
	"sources": {"Counter.sol": {"id": 0}}
}`

func newTestDispatcher(t *testing.T, executor Executor) *Dispatcher {
	t.Helper()
	config := DefaultConfig()
	config.Executor = executor
	dispatcher, err := NewDispatcher(config)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}
	return dispatcher
}

// decodeStdin parses the standard JSON request passed to a compiler.
func decodeStdin(t *testing.T, command Command) map[string]any {
	t.Helper()
	var input map[string]any
	if err := json.Unmarshal(command.Stdin, &input); err != nil {
		t.Fatalf("compiler input is not JSON: %v", err)
	}
	return input
}

func TestSolidity_SendsStandardJSONRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)

	executor.EXPECT().Execute(gomock.Any()).DoAndReturn(func(command Command) (ExecResult, error) {
		if want, got := "solc", command.Path; want != got {
			t.Errorf("unexpected binary, wanted %s, got %s", want, got)
		}
		if want, got := []string{"--standard-json"}, command.Args; !slices.Equal(want, got) {
			t.Errorf("unexpected arguments, wanted %v, got %v", want, got)
		}
		input := decodeStdin(t, command)
		if want, got := "Solidity", input["language"]; want != got {
			t.Errorf("unexpected language, wanted %v, got %v", want, got)
		}
		sources := input["sources"].(map[string]any)
		if want, got := "contract Counter {}", sources["Counter.sol"].(map[string]any)["content"]; want != got {
			t.Errorf("unexpected source content, wanted %v, got %v", want, got)
		}
		settings := input["settings"].(map[string]any)
		if _, found := settings["outputSelection"]; !found {
			t.Errorf("missing output selection in %v", settings)
		}
		remappings, _ := settings["remappings"].([]any)
		if want, got := []any{"@lib/=lib/"}, remappings; !slices.Equal(want, got) {
			t.Errorf("unexpected remappings, wanted %v, got %v", want, got)
		}
		if _, found := settings["AllowWarnings"]; found {
			t.Errorf("local options must not be sent to the compiler")
		}
		return ExecResult{Stdout: []byte(solcCounterOutput)}, nil
	})

	request := NewRequest(Solidity, "Counter.sol", "contract Counter {}")
	request.Settings = &SoliditySettings{
		OutputSelection: SelectAll("abi", "evm.bytecode"),
		Remappings:      []string{"@lib/=lib/"},
	}
	if _, err := newTestDispatcher(t, executor).Compile(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSolidity_OmitsRemappingsIfNoneAreGiven(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)

	executor.EXPECT().Execute(gomock.Any()).DoAndReturn(func(command Command) (ExecResult, error) {
		settings := decodeStdin(t, command)["settings"].(map[string]any)
		if _, found := settings["remappings"]; found {
			t.Errorf("unexpected remappings in %v", settings)
		}
		return ExecResult{Stdout: []byte(solcCounterOutput)}, nil
	})

	request := NewRequest(Solidity, "Counter.sol", "contract Counter {}")
	if _, err := newTestDispatcher(t, executor).Compile(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSolidity_ParsesContracts(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stdout: []byte(solcCounterOutput)}, nil)

	output, err := newTestDispatcher(t, executor).Compile(NewRequest(Solidity, "Counter.sol", "contract Counter {}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := Solidity, output.Kind(); want != got {
		t.Errorf("unexpected output kind, wanted %v, got %v", want, got)
	}
	contract, err := FindContract(output, "Counter")
	if err != nil {
		t.Fatalf("contract not found: %v", err)
	}
	if want, got := 2, len(contract.Abi); want != got {
		t.Errorf("unexpected number of ABI entries, wanted %d, got %d", want, got)
	}
	code, err := contract.Code()
	if err != nil {
		t.Fatalf("failed to decode code: %v", err)
	}
	if want := []byte{0x60, 0x80, 0x60, 0x40, 0x52}; !bytes.Equal(want, code) {
		t.Errorf("unexpected code, wanted %x, got %x", want, code)
	}
	if want, got := "60806040", contract.DeployedBytecode; want != got {
		t.Errorf("unexpected runtime code, wanted %s, got %s", want, got)
	}
	if contract.Metadata == "" {
		t.Errorf("missing metadata")
	}
}

func TestSolidity_NonZeroExitReportsStderr(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{
		Stderr:   []byte("Invalid option to --standard-json\n"),
		ExitCode: 1,
	}, nil)

	_, err := newTestDispatcher(t, executor).Compile(NewRequest(Solidity, "A.sol", "contract A {}"))
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if want, got := ExitFailure, backendErr.Failure; want != got {
		t.Errorf("unexpected failure, wanted %v, got %v", want, got)
	}
	if want, got := "Invalid option to --standard-json", backendErr.Message; want != got {
		t.Errorf("unexpected message, wanted %q, got %q", want, got)
	}
}

func TestSolidity_SpawnFailureIsBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	spawnErr := errors.New("executable file not found")
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{}, spawnErr)

	_, err := newTestDispatcher(t, executor).Compile(NewRequest(Solidity, "A.sol", "contract A {}"))
	var backendErr *BackendError
	if !errors.As(err, &backendErr) || backendErr.Failure != SpawnFailure {
		t.Fatalf("expected spawn failure, got %v", err)
	}
	if !errors.Is(err, spawnErr) {
		t.Errorf("backend error does not wrap its cause")
	}
}

func TestSolidity_InvalidJSONIsBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stdout: []byte("not json")}, nil)

	_, err := newTestDispatcher(t, executor).Compile(NewRequest(Solidity, "A.sol", "contract A {}"))
	var backendErr *BackendError
	if !errors.As(err, &backendErr) || backendErr.Failure != MalformedOutput {
		t.Fatalf("expected malformed output failure, got %v", err)
	}
	if backendErr.Message == "" {
		t.Errorf("missing message")
	}
}

func TestSolidity_FirstErrorWins(t *testing.T) {
	tests := map[string]struct {
		output string
		want   string
	}{
		"formatted message": {
			output: `{"errors":[
				{"type":"ParserError","severity":"error","message":"Expected ';'","formattedMessage":"ParserError: Expected ';'\n --> A.sol:1:1"},
				{"type":"TypeError","severity":"error","message":"second"}
			]}`,
			want: "ParserError: Expected ';'\n --> A.sol:1:1",
		},
		"plain message": {
			output: `{"errors":[{"type":"JSONError","severity":"error","message":"Only \"Solidity\" or \"Yul\" is supported"}]}`,
			want:   `Only "Solidity" or "Yul" is supported`,
		},
		"warning": {
			output: `{"errors":[{"type":"Warning","severity":"warning","message":"SPDX license identifier not provided"}]}`,
			want:   "SPDX license identifier not provided",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			executor := NewMockExecutor(ctrl)
			executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stdout: []byte(test.output)}, nil)

			_, err := newTestDispatcher(t, executor).Compile(NewRequest(Solidity, "A.sol", "contract A {"))
			var backendErr *BackendError
			if !errors.As(err, &backendErr) {
				t.Fatalf("expected backend error, got %v", err)
			}
			if want, got := CompilationFailure, backendErr.Failure; want != got {
				t.Errorf("unexpected failure, wanted %v, got %v", want, got)
			}
			if want, got := test.want, backendErr.Message; want != got {
				t.Errorf("unexpected message, wanted %q, got %q", want, got)
			}
		})
	}
}

func TestSolidity_AllowWarningsSkipsWarnings(t *testing.T) {
	const output = `{
		"errors": [{"type":"Warning","severity":"warning","message":"SPDX license identifier not provided"}],
		"contracts": {"A.sol": {"A": {"abi": [], "evm": {"bytecode": {"object": "00"}, "deployedBytecode": {"object": ""}}}}}
	}`
	ctrl := gomock.NewController(t)
	executor := NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any()).Return(ExecResult{Stdout: []byte(output)}, nil)

	request := NewRequest(Solidity, "A.sol", "contract A {}")
	request.Settings = &SoliditySettings{
		OutputSelection: SelectAll("abi"),
		AllowWarnings:   true,
	}
	result, err := newTestDispatcher(t, executor).Compile(request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := 1, len(result.Diagnostics()); want != got {
		t.Errorf("unexpected number of diagnostics, wanted %d, got %d", want, got)
	}
	if _, err := Lookup(result, "A.sol", "A"); err != nil {
		t.Errorf("contract not found: %v", err)
	}
}
