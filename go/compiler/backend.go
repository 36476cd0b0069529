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
	"encoding/json"
	"fmt"
	"strings"
)

// Backend compiles requests of a single kind by running one compiler binary.
// Requests handed to a backend have been normalized by the dispatcher.
type Backend interface {
	Kind() Kind
	// Binary is the path or name of the compiler executable.
	Binary() string
	Compile(Request) (Output, error)
}

type standardJSONInput struct {
	Language string                   `json:"language"`
	Sources  map[string]sourceContent `json:"sources"`
	Settings Settings                 `json:"settings"`
}

type sourceContent struct {
	Content string `json:"content"`
}

func newStandardJSONInput(language string, request Request) standardJSONInput {
	sources := make(map[string]sourceContent, len(request.Sources))
	for file, content := range request.Sources {
		sources[file] = sourceContent{Content: content}
	}
	return standardJSONInput{
		Language: language,
		Sources:  sources,
		Settings: request.Settings,
	}
}

// runStandardJSON feeds the input to the compiler's --standard-json mode and
// decodes the compiler's answer into output.
func runStandardJSON(executor Executor, kind Kind, binary string, input standardJSONInput, output any) error {
	stdin, err := json.Marshal(input)
	if err != nil {
		return &BackendError{Kind: kind, Failure: SpawnFailure, Message: err.Error(), Err: err}
	}
	res, err := executor.Execute(Command{
		Path:  binary,
		Args:  []string{"--standard-json"},
		Stdin: stdin,
	})
	if err != nil {
		return &BackendError{Kind: kind, Failure: SpawnFailure, Message: err.Error(), Err: err}
	}
	if res.ExitCode != 0 {
		return exitError(kind, res)
	}
	if err := json.Unmarshal(res.Stdout, output); err != nil {
		return &BackendError{
			Kind:    kind,
			Failure: MalformedOutput,
			Message: fmt.Sprintf("cannot decode compiler output: %v", err),
			Err:     err,
		}
	}
	return nil
}

// exitError reports a non-zero exit of a compiler, preferring its stderr
// output as the message.
func exitError(kind Kind, res ExecResult) error {
	message := strings.TrimSpace(string(res.Stderr))
	if message == "" {
		message = strings.TrimSpace(string(res.Stdout))
	}
	if message == "" {
		message = fmt.Sprintf("exit status %d", res.ExitCode)
	}
	return &BackendError{Kind: kind, Failure: ExitFailure, Message: message}
}

// firstError turns the first relevant diagnostic into a compilation failure.
// Unless warnings are allowed, any diagnostic fails the compilation.
func firstError(kind Kind, diagnostics []Diagnostic, allowWarnings bool) error {
	for _, diagnostic := range diagnostics {
		if allowWarnings && !diagnostic.IsError() {
			continue
		}
		return &BackendError{Kind: kind, Failure: CompilationFailure, Message: diagnostic.Text()}
	}
	return nil
}
