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
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Prova/go/compiler"
	"golang.org/x/exp/maps"
)

// Compile compiles a single source file with the default compiler
// configuration and returns the contract it defines. The test is skipped if
// the compiler is not installed and fails if the source does not compile.
func Compile(t testing.TB, kind compiler.Kind, file, source string) *Instance {
	t.Helper()
	config := compiler.DefaultConfig()
	if _, err := exec.LookPath(config.Binary(kind)); err != nil {
		t.Skipf("%v compiler not available: %v", kind, err)
	}
	dispatcher, err := compiler.NewDispatcher(config)
	if err != nil {
		t.Fatalf("failed to create compiler dispatcher: %v", err)
	}
	instance, err := CompileWith(dispatcher, compiler.NewRequest(kind, file, source))
	if err != nil {
		t.Fatalf("failed to compile %s: %v", file, err)
	}
	return instance
}

// CompileWith compiles a request and returns the contract it defines. If the
// request produces more than one contract, the one named after the first
// source file is selected.
func CompileWith(dispatcher *compiler.Dispatcher, request compiler.Request) (*Instance, error) {
	output, err := dispatcher.Compile(request)
	if err != nil {
		return nil, err
	}
	contract, err := selectContract(output, request)
	if err != nil {
		return nil, err
	}
	return NewInstance(contract)
}

func selectContract(output compiler.Output, request compiler.Request) (compiler.CompiledContract, error) {
	var all []compiler.CompiledContract
	for _, contracts := range output.Contracts() {
		all = append(all, maps.Values(contracts)...)
	}
	if len(all) == 1 {
		return all[0], nil
	}
	files := maps.Keys(request.Sources)
	slices.Sort(files)
	if len(files) == 0 {
		return compiler.CompiledContract{}, fmt.Errorf("%w: no sources", compiler.ErrContractNotFound)
	}
	base := filepath.Base(files[0])
	return compiler.FindContract(output, strings.TrimSuffix(base, filepath.Ext(base)))
}
