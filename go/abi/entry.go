// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package abi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Prova/go/prova"
)

const ErrUnknownEntry = prova.ConstError("unknown ABI entry")

// EntryType distinguishes the kinds of items listed in a contract ABI.
type EntryType int

const (
	Function EntryType = iota
	Constructor
	Receive
	Fallback
	Event
	Error
)

var entryTypeNames = map[EntryType]string{
	Function:    "function",
	Constructor: "constructor",
	Receive:     "receive",
	Fallback:    "fallback",
	Event:       "event",
	Error:       "error",
}

func (t EntryType) String() string {
	if name, found := entryTypeNames[t]; found {
		return name
	}
	return fmt.Sprintf("EntryType(%d)", t)
}

func (t EntryType) MarshalText() ([]byte, error) {
	if _, found := entryTypeNames[t]; !found {
		return nil, fmt.Errorf("%w: %v", ErrUnknownEntry, t)
	}
	return []byte(t.String()), nil
}

func (t *EntryType) UnmarshalText(text []byte) error {
	for entryType, name := range entryTypeNames {
		if name == string(text) {
			*t = entryType
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownEntry, text)
}

// StateMutability describes how a function interacts with the ledger. The
// zero value is NonPayable, the default of entries that omit the field.
type StateMutability int

const (
	NonPayable StateMutability = iota
	Payable
	View
	Pure
)

var mutabilityNames = map[StateMutability]string{
	NonPayable: "nonpayable",
	Payable:    "payable",
	View:       "view",
	Pure:       "pure",
}

func (m StateMutability) String() string {
	if name, found := mutabilityNames[m]; found {
		return name
	}
	return fmt.Sprintf("StateMutability(%d)", m)
}

func (m StateMutability) MarshalText() ([]byte, error) {
	if _, found := mutabilityNames[m]; !found {
		return nil, fmt.Errorf("unknown state mutability %v", m)
	}
	return []byte(m.String()), nil
}

func (m *StateMutability) UnmarshalText(text []byte) error {
	for mutability, name := range mutabilityNames {
		if name == string(text) {
			*m = mutability
			return nil
		}
	}
	return fmt.Errorf("unknown state mutability %q", text)
}

// Argument is a named, typed input or output of an ABI entry.
type Argument struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	InternalType string     `json:"internalType,omitempty"`
	Indexed      bool       `json:"indexed,omitempty"`
	Components   []Argument `json:"components,omitempty"`
}

// CanonicalType returns the type as it appears in signatures, expanding
// tuples into their component types.
func (a Argument) CanonicalType() string {
	if !strings.HasPrefix(a.Type, "tuple") {
		return a.Type
	}
	parts := make([]string, len(a.Components))
	for i, component := range a.Components {
		parts[i] = component.CanonicalType()
	}
	return "(" + strings.Join(parts, ",") + ")" + strings.TrimPrefix(a.Type, "tuple")
}

// Entry is one item of a contract ABI.
type Entry struct {
	Type            EntryType       `json:"type"`
	Name            string          `json:"name,omitempty"`
	Inputs          []Argument      `json:"inputs,omitempty"`
	Outputs         []Argument      `json:"outputs,omitempty"`
	StateMutability StateMutability `json:"stateMutability"`
	Anonymous       bool            `json:"anonymous,omitempty"`
}

// ParseEntries decodes the JSON ABI emitted by compilers.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid ABI: %w", err)
	}
	return entries, nil
}

func (e Entry) InputTypes() []string {
	return canonicalTypes(e.Inputs)
}

func (e Entry) OutputTypes() []string {
	return canonicalTypes(e.Outputs)
}

func canonicalTypes(arguments []Argument) []string {
	res := make([]string, len(arguments))
	for i, argument := range arguments {
		res[i] = argument.CanonicalType()
	}
	return res
}

// Signature returns the canonical signature of the entry, the text hashed to
// obtain its selector.
func (e Entry) Signature() string {
	return Signature(e.Name, e.InputTypes()...)
}

func (e Entry) Selector() Selector {
	return ComputeSelector(e.Signature())
}

// IsReadOnly reports whether the entry promises not to modify the ledger.
func (e Entry) IsReadOnly() bool {
	return e.StateMutability == View || e.StateMutability == Pure
}

// FindFunction looks up a function by its name or by its full signature. For
// overloaded names the first entry listed wins.
func FindFunction(entries []Entry, name string) (Entry, error) {
	bySignature := strings.Contains(name, "(")
	for _, entry := range entries {
		if entry.Type != Function {
			continue
		}
		if (bySignature && entry.Signature() == name) || (!bySignature && entry.Name == name) {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: function %q", ErrUnknownEntry, name)
}
