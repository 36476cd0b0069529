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
	"errors"
	"testing"
)

func TestKind_ParseAndPrint(t *testing.T) {
	for _, kind := range Kinds() {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("failed to marshal %v: %v", kind, err)
		}
		var parsed Kind
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("failed to parse %s: %v", text, err)
		}
		if parsed != kind {
			t.Errorf("unexpected kind, wanted %v, got %v", kind, parsed)
		}
	}
	if _, err := ParseKind("fe"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := Kind(9).MarshalText(); err == nil {
		t.Errorf("unknown kinds should not be marshalled")
	}
}

func TestKind_JSONUsesLowerCaseNames(t *testing.T) {
	data, err := json.Marshal(map[string]Kind{"kind": Huff})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if want, got := `{"kind":"huff"}`, string(data); want != got {
		t.Errorf("unexpected JSON, wanted %s, got %s", want, got)
	}
}

func TestKindOfFile(t *testing.T) {
	tests := map[string]Kind{
		"Counter.sol":          Solidity,
		"contracts/Counter.vy": Vyper,
		"src/SimpleStore.huff": Huff,
	}
	for file, want := range tests {
		got, err := KindOfFile(file)
		if err != nil || got != want {
			t.Errorf("unexpected kind for %s, wanted %v, got %v (%v)", file, want, got, err)
		}
	}
	if _, err := KindOfFile("Counter.fe"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultSettings_AreValid(t *testing.T) {
	for _, kind := range Kinds() {
		settings := DefaultSettings(kind)
		if settings == nil {
			t.Fatalf("no default settings for %v", kind)
		}
		if want, got := kind, settings.kind(); want != got {
			t.Errorf("default settings of %v belong to %v", want, got)
		}
		if err := settings.validate(); err != nil {
			t.Errorf("default settings of %v are invalid: %v", kind, err)
		}
	}
	if DefaultSettings(Kind(5)) != nil {
		t.Errorf("unknown kinds should have no settings")
	}
}

func TestDefaultSettings_VyperTargetsParis(t *testing.T) {
	settings := DefaultSettings(Vyper).(*VyperSettings)
	if want, got := "paris", settings.EvmVersion; want != got {
		t.Errorf("unexpected EVM version, wanted %s, got %s", want, got)
	}
}

func TestRequest_NormalizeFillsDefaultSettings(t *testing.T) {
	request, err := NewRequest(Solidity, "A.sol", "").normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := request.Settings.(*SoliditySettings); !ok {
		t.Errorf("unexpected settings %T", request.Settings)
	}
}
