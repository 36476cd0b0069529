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

import "github.com/Fantom-foundation/Prova/go/prova"

// Settings holds the options of a single backend. The set of implementations
// is closed: SoliditySettings, VyperSettings and HuffSettings.
type Settings interface {
	kind() Kind
	validate() error
}

// OutputSelection selects, per file and contract, the artifacts a standard
// JSON compiler should emit. "*" matches every file or contract.
type OutputSelection map[string]map[string][]string

// SelectAll requests the given artifacts for every contract of every file.
func SelectAll(artifacts ...string) OutputSelection {
	return OutputSelection{"*": {"*": artifacts}}
}

// SoliditySettings is the settings object of a solc standard JSON request.
type SoliditySettings struct {
	OutputSelection OutputSelection `json:"outputSelection"`
	Remappings      []string        `json:"remappings,omitempty"`
	EvmVersion      string          `json:"evmVersion,omitempty"`
	Optimizer       *Optimizer      `json:"optimizer,omitempty"`

	// AllowWarnings makes compilation succeed if the compiler reports
	// diagnostics that are not errors.
	AllowWarnings bool `json:"-"`
}

type Optimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs,omitempty"`
}

// VyperSettings is the settings object of a vyper standard JSON request.
type VyperSettings struct {
	EvmVersion      string          `json:"evmVersion"`
	OutputSelection OutputSelection `json:"outputSelection"`

	AllowWarnings bool `json:"-"`
}

// HuffSettings selects alternative entry macros for huffc.
type HuffSettings struct {
	AltMain        string
	AltConstructor string
}

// DefaultVyperEvmVersion is the EVM version Vyper sources are compiled for if
// no other is requested.
var DefaultVyperEvmVersion = prova.R11_Paris.EvmVersion()

// DefaultSettings returns the settings used for requests that do not specify
// any.
func DefaultSettings(kind Kind) Settings {
	switch kind {
	case Solidity:
		return &SoliditySettings{
			OutputSelection: SelectAll("abi", "evm.bytecode", "evm.deployedBytecode", "metadata"),
		}
	case Vyper:
		return &VyperSettings{
			EvmVersion:      DefaultVyperEvmVersion,
			OutputSelection: SelectAll("abi", "evm.bytecode", "evm.deployedBytecode"),
		}
	case Huff:
		return &HuffSettings{}
	}
	return nil
}

func (*SoliditySettings) kind() Kind { return Solidity }
func (*VyperSettings) kind() Kind    { return Vyper }
func (*HuffSettings) kind() Kind     { return Huff }

func (s *SoliditySettings) validate() error {
	if s == nil {
		return missing("settings")
	}
	if len(s.OutputSelection) == 0 {
		return missing("outputSelection")
	}
	return nil
}

func (s *VyperSettings) validate() error {
	if s == nil {
		return missing("settings")
	}
	if s.EvmVersion == "" {
		return missing("evmVersion")
	}
	if len(s.OutputSelection) == 0 {
		return missing("outputSelection")
	}
	return nil
}

func (s *HuffSettings) validate() error {
	if s == nil {
		return missing("settings")
	}
	return nil
}
