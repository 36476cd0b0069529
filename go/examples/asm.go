// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
)

// assembler builds EVM code with symbolic jump destinations. Labels are
// resolved when the code is finalized; jump targets are always encoded as
// PUSH2 immediates.
type assembler struct {
	code    []byte
	labels  map[string]int
	targets map[int]string
}

func newAssembler() *assembler {
	return &assembler{
		labels:  map[string]int{},
		targets: map[int]string{},
	}
}

func (a *assembler) op(ops ...vm.OpCode) *assembler {
	for _, op := range ops {
		a.code = append(a.code, byte(op))
	}
	return a
}

// push emits the shortest PUSH instruction for the given immediate. An empty
// immediate is encoded as PUSH0.
func (a *assembler) push(data ...byte) *assembler {
	if len(data) > 32 {
		panic(fmt.Sprintf("push of %d bytes", len(data)))
	}
	if len(data) == 0 {
		return a.op(vm.PUSH0)
	}
	a.code = append(a.code, byte(vm.PUSH1)+byte(len(data)-1))
	a.code = append(a.code, data...)
	return a
}

// pushLabel pushes the position of a label that may be defined later.
func (a *assembler) pushLabel(name string) *assembler {
	a.code = append(a.code, byte(vm.PUSH2))
	a.targets[len(a.code)] = name
	a.code = append(a.code, 0, 0)
	return a
}

// label marks a jump destination.
func (a *assembler) label(name string) *assembler {
	if _, found := a.labels[name]; found {
		panic(fmt.Sprintf("label %q defined twice", name))
	}
	a.labels[name] = len(a.code)
	return a.op(vm.JUMPDEST)
}

func (a *assembler) jumpTo(name string) *assembler {
	return a.pushLabel(name).op(vm.JUMP)
}

func (a *assembler) jumpIfTo(name string) *assembler {
	return a.pushLabel(name).op(vm.JUMPI)
}

// bytes resolves all labels. Programs are static, so undefined labels are a
// programming error.
func (a *assembler) bytes() []byte {
	res := append([]byte(nil), a.code...)
	for pos, name := range a.targets {
		target, found := a.labels[name]
		if !found {
			panic(fmt.Sprintf("undefined label %q", name))
		}
		res[pos] = byte(target >> 8)
		res[pos+1] = byte(target)
	}
	return res
}
