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

//go:generate mockgen -source executor.go -destination executor_mock.go -package compiler

import (
	"bytes"
	"errors"
	"os/exec"
)

// Command describes one invocation of a compiler binary.
type Command struct {
	Path  string
	Args  []string
	Stdin []byte
}

// ExecResult is the captured outcome of a finished command.
type ExecResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Executor runs commands to completion. An error is only returned if the
// command could not be run at all; non-zero exit codes are reported through
// the result.
type Executor interface {
	Execute(Command) (ExecResult, error)
}

// SubprocessExecutor runs commands as child processes of the current process.
type SubprocessExecutor struct{}

func (SubprocessExecutor) Execute(command Command) (ExecResult, error) {
	cmd := exec.Command(command.Path, command.Args...)
	if command.Stdin != nil {
		cmd.Stdin = bytes.NewReader(command.Stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}
		return res, nil
	}
	return res, err
}
