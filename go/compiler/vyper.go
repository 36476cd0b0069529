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

// vyperBackend drives vyper in standard JSON mode.
type vyperBackend struct {
	binary   string
	executor Executor
}

func newVyperBackend(binary string, executor Executor) *vyperBackend {
	return &vyperBackend{binary: binary, executor: executor}
}

func (b *vyperBackend) Kind() Kind     { return Vyper }
func (b *vyperBackend) Binary() string { return b.binary }

func (b *vyperBackend) Compile(request Request) (Output, error) {
	settings := request.Settings.(*VyperSettings)
	output := &VyperOutput{}
	input := newStandardJSONInput("Vyper", request)
	if err := runStandardJSON(b.executor, Vyper, b.binary, input, output); err != nil {
		return nil, err
	}
	if err := firstError(Vyper, output.Errors, settings.AllowWarnings); err != nil {
		return nil, err
	}
	return output, nil
}
