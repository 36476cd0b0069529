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

// solidityBackend drives solc in standard JSON mode.
type solidityBackend struct {
	binary   string
	executor Executor
}

func newSolidityBackend(binary string, executor Executor) *solidityBackend {
	return &solidityBackend{binary: binary, executor: executor}
}

func (b *solidityBackend) Kind() Kind     { return Solidity }
func (b *solidityBackend) Binary() string { return b.binary }

func (b *solidityBackend) Compile(request Request) (Output, error) {
	settings := request.Settings.(*SoliditySettings)
	output := &SolidityOutput{}
	input := newStandardJSONInput("Solidity", request)
	if err := runStandardJSON(b.executor, Solidity, b.binary, input, output); err != nil {
		return nil, err
	}
	if err := firstError(Solidity, output.Errors, settings.AllowWarnings); err != nil {
		return nil, err
	}
	return output, nil
}
