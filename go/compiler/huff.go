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
	"os"
	"path/filepath"
)

const (
	huffInputFile  = "input.huff"
	huffOutputFile = "output.json"
)

// huffBackend drives huffc, which only reads and writes files. Every
// compilation works in its own temporary directory that is removed once the
// compilation is over.
type huffBackend struct {
	binary   string
	executor Executor
}

func newHuffBackend(binary string, executor Executor) *huffBackend {
	return &huffBackend{binary: binary, executor: executor}
}

func (b *huffBackend) Kind() Kind     { return Huff }
func (b *huffBackend) Binary() string { return b.binary }

func (b *huffBackend) Compile(request Request) (Output, error) {
	settings := request.Settings.(*HuffSettings)
	file, source := singleSource(request.Sources)

	dir, err := os.MkdirTemp("", "prova-huff-")
	if err != nil {
		return nil, b.ioError(err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, huffInputFile)
	output := filepath.Join(dir, huffOutputFile)
	if err := os.WriteFile(input, []byte(source+"\n"), 0o600); err != nil {
		return nil, b.ioError(err)
	}

	var args []string
	if settings.AltMain != "" {
		args = append(args, "-m", settings.AltMain)
	}
	if settings.AltConstructor != "" {
		args = append(args, "-t", settings.AltConstructor)
	}
	args = append(args, "-a", "-o", output, input)

	res, err := b.executor.Execute(Command{Path: b.binary, Args: args})
	if err != nil {
		return nil, &BackendError{Kind: Huff, Failure: SpawnFailure, Message: err.Error(), Err: err}
	}
	if res.ExitCode != 0 {
		return nil, exitError(Huff, res)
	}

	artifact, err := os.ReadFile(output)
	if err != nil {
		return nil, &BackendError{
			Kind:    Huff,
			Failure: MalformedOutput,
			Message: fmt.Sprintf("missing artifact: %v", err),
			Err:     err,
		}
	}
	result := &HuffOutput{source: file}
	if err := json.Unmarshal(artifact, result); err != nil {
		return nil, &BackendError{
			Kind:    Huff,
			Failure: MalformedOutput,
			Message: fmt.Sprintf("cannot decode artifact: %v", err),
			Err:     err,
		}
	}
	return result, nil
}

// singleSource returns the only entry of a normalized Huff request.
func singleSource(sources map[string]string) (string, string) {
	for file, source := range sources {
		return file, source
	}
	return "", ""
}

func (b *huffBackend) ioError(err error) error {
	return &BackendError{Kind: Huff, Failure: SpawnFailure, Message: err.Error(), Err: err}
}
