// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package harness provides the building blocks of contract tests: fixtures
// that set up a fresh environment for every test, compiled contracts that can
// be deployed, and bindings for invoking deployed contracts by ABI.
package harness

import (
	"testing"

	"github.com/Fantom-foundation/Prova/go/compiler"
	"github.com/Fantom-foundation/Prova/go/ledger"
)

// Fixture is a setup routine shared by multiple tests. Each call of Use runs
// the routine again, so tests never share the produced value.
type Fixture[T any] struct {
	setup func(testing.TB) T
}

func NewFixture[T any](setup func(testing.TB) T) Fixture[T] {
	return Fixture[T]{setup: setup}
}

// Use runs the setup routine for the given test.
func (f Fixture[T]) Use(t testing.TB) T {
	t.Helper()
	return f.setup(t)
}

// Env is the environment of a single test: a fresh ledger and a compiler
// dispatcher.
type Env struct {
	Provider   *ledger.Provider
	Dispatcher *compiler.Dispatcher
}

// NewEnv creates an environment with default configurations. The test fails
// if the environment can not be created.
func NewEnv(t testing.TB) *Env {
	t.Helper()
	return NewEnvWithConfig(t, ledger.DefaultConfig(), compiler.DefaultConfig())
}

func NewEnvWithConfig(t testing.TB, ledgerConfig ledger.Config, compilerConfig compiler.Config) *Env {
	t.Helper()
	provider, err := ledger.NewProvider(ledgerConfig)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	dispatcher, err := compiler.NewDispatcher(compilerConfig)
	if err != nil {
		t.Fatalf("failed to create compiler dispatcher: %v", err)
	}
	return &Env{
		Provider:   provider,
		Dispatcher: dispatcher,
	}
}
