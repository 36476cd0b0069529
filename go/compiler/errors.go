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

import "fmt"

// RequestError is returned for requests that are rejected before any compiler
// is started.
type RequestError struct {
	Kind Kind
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid %v compile request: %v", e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Failure classifies how a backend failed.
type Failure int

const (
	// SpawnFailure indicates that the compiler could not be started.
	SpawnFailure Failure = iota
	// ExitFailure indicates that the compiler exited with a non-zero status.
	ExitFailure
	// MalformedOutput indicates that the compiler produced unreadable output.
	MalformedOutput
	// CompilationFailure indicates that the compiler reported an error
	// diagnostic for the sources.
	CompilationFailure
)

func (f Failure) String() string {
	switch f {
	case SpawnFailure:
		return "spawn failure"
	case ExitFailure:
		return "exit failure"
	case MalformedOutput:
		return "malformed output"
	case CompilationFailure:
		return "compilation failure"
	default:
		return fmt.Sprintf("Failure(%d)", f)
	}
}

// BackendError is returned if a compiler ran but did not produce a usable
// result. Message holds the text reported by the compiler.
type BackendError struct {
	Kind    Kind
	Failure Failure
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%v backend %v: %s", e.Kind, e.Failure, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
