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
	"bytes"
	"errors"
	"slices"
	"testing"

	"pgregory.net/rand"
)

func TestComputeSelector_KnownSignatures(t *testing.T) {
	tests := map[string]Selector{
		"transfer(uint256,address)": {0xb7, 0x76, 0x0c, 0x8f},
		"transfer(address,uint256)": {0xa9, 0x05, 0x9c, 0xbb},
		"balanceOf(address)":        {0x70, 0xa0, 0x82, 0x31},
	}
	for signature, want := range tests {
		if got := ComputeSelector(signature); want != got {
			t.Errorf("unexpected selector for %s, wanted %v, got %v", signature, want, got)
		}
	}
}

func TestComputeSelector_IsDeterministic(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		signature := make([]byte, rnd.Intn(64))
		rnd.Read(signature)
		if want, got := ComputeSelector(string(signature)), ComputeSelector(string(signature)); want != got {
			t.Fatalf("selector of %x is not deterministic: %v vs %v", signature, want, got)
		}
	}
}

func TestSelector_String(t *testing.T) {
	selector := ComputeSelector("transfer(uint256,address)")
	if want, got := "0xb7760c8f", selector.String(); want != got {
		t.Errorf("unexpected string, wanted %s, got %s", want, got)
	}
}

func TestParseSignature(t *testing.T) {
	tests := map[string]struct {
		name  string
		types []string
	}{
		"pwn()":                     {"pwn", nil},
		"transfer(uint256,address)": {"transfer", []string{"uint256", "address"}},
		"set(uint8)":                {"set", []string{"uint8"}},
	}
	for signature, test := range tests {
		name, types, err := ParseSignature(signature)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", signature, err)
		}
		if name != test.name || !slices.Equal(types, test.types) {
			t.Errorf("unexpected parse of %s: %s %v", signature, name, types)
		}
	}
}

func TestParseSignature_RejectsMalformedSignatures(t *testing.T) {
	malformed := []string{
		"", "pwn", "(uint256)", "pwn(uint256", "pwn)(",
		"transfer(uint256, address)", "pwn( )", " pwn()", "pwn(uint256,)", "pwn(,uint256)",
	}
	for _, signature := range malformed {
		if _, _, err := ParseSignature(signature); !errors.Is(err, ErrBadSignature) {
			t.Errorf("expected malformed signature error for %q, got %v", signature, err)
		}
	}
}

func TestEncodeCall_RejectsNonCanonicalSignatures(t *testing.T) {
	_, err := EncodeCall("transfer(uint256, address)", Uint64(1), Uint64(2))
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected malformed signature error, got %v", err)
	}
	if _, err := EncodeCall("transfer(uint256,address)", Uint64(1), Uint64(2)); err != nil {
		t.Errorf("unexpected error for canonical signature: %v", err)
	}
}

func TestEncodeParameter_PadsToWidth(t *testing.T) {
	tests := map[string]struct {
		typ   string
		value []byte
		want  []byte
	}{
		"uint256 full width": {"uint256", bytes.Repeat([]byte{0xff}, 32), bytes.Repeat([]byte{0xff}, 32)},
		"uint256 short":      {"uint256", []byte{1, 2}, append(make([]byte, 30), 1, 2)},
		"uint8 empty":        {"uint8", nil, make([]byte, 32)},
		"int128":             {"int128", []byte{7}, append(make([]byte, 31), 7)},
		"int":                {"int", []byte{7}, append(make([]byte, 31), 7)},
		"address full":       {"address", bytes.Repeat([]byte{0xaa}, 20), bytes.Repeat([]byte{0xaa}, 20)},
		"address short":      {"address", []byte{1}, append(make([]byte, 19), 1)},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := EncodeParameter(test.typ, test.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(test.want, got) {
				t.Errorf("unexpected encoding, wanted %x, got %x", test.want, got)
			}
		})
	}
}

func TestEncodeParameter_DoesNotAliasInput(t *testing.T) {
	value := bytes.Repeat([]byte{1}, 32)
	encoded, err := EncodeParameter("uint256", value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded[0] = 2
	if value[0] != 1 {
		t.Errorf("encoding aliases its input")
	}
}

func TestEncodeParameter_RejectsOversizeValues(t *testing.T) {
	tests := map[string]int{
		"uint256": 33,
		"int8":    33,
		"address": 21,
	}
	for typ, size := range tests {
		_, err := EncodeParameter(typ, make([]byte, size))
		if !errors.Is(err, ErrValueTooLarge) {
			t.Errorf("expected oversize error for %s with %d bytes, got %v", typ, size, err)
		}
	}
}

func TestEncodeParameter_RejectsUnsupportedTypes(t *testing.T) {
	types := []string{"uint256[]", "address[2]", "(uint256,address)", "tuple", "bool", "bytes32", "string", "uint7", "uint264", "uintx"}
	for _, typ := range types {
		_, err := EncodeParameter(typ, []byte{1})
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("expected unsupported type error for %s, got %v", typ, err)
		}
	}
}

func TestEncodeCall_WithoutArgumentsIsSelector(t *testing.T) {
	got, err := EncodeCall("pwn()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := ComputeSelector("pwn()"); !bytes.Equal(want[:], got) {
		t.Errorf("unexpected call data, wanted %x, got %x", want, got)
	}
}

func TestEncodeCall_AppendsEncodedParameters(t *testing.T) {
	got, err := EncodeCall("transfer(uint256,address)", []byte{0}, []byte{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0xb7, 0x76, 0x0c, 0x8f}
	want = append(want, make([]byte, 32+20)...)
	if !bytes.Equal(want, got) {
		t.Errorf("unexpected call data, wanted %x, got %x", want, got)
	}
}

func TestEncodeCall_RejectsArgumentCountMismatch(t *testing.T) {
	if _, err := EncodeCall("transfer(uint256,address)", []byte{1}); !errors.Is(err, ErrArgumentCount) {
		t.Errorf("expected argument count error, got %v", err)
	}
	if _, err := EncodeCall("pwn()", []byte{1}); !errors.Is(err, ErrArgumentCount) {
		t.Errorf("expected argument count error, got %v", err)
	}
}

func TestEncodeCall_ReportsPositionOfInvalidArgument(t *testing.T) {
	_, err := EncodeCall("f(uint256,address)", []byte{1}, make([]byte, 21))
	var encodingErr *EncodingError
	if !errors.As(err, &encodingErr) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if want, got := 1, encodingErr.Index; want != got {
		t.Errorf("unexpected index, wanted %d, got %d", want, got)
	}
	if !errors.Is(err, ErrValueTooLarge) {
		t.Errorf("unexpected cause: %v", err)
	}
}

func TestDecodeReturn_SlicesByWidth(t *testing.T) {
	data := append(Uint64(42), bytes.Repeat([]byte{0xbb}, 20)...)
	values, err := DecodeReturn(data, "uint256", "address")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := uint64(42), ToUint256(values[0]).Uint64(); want != got {
		t.Errorf("unexpected first value, wanted %d, got %d", want, got)
	}
	if !bytes.Equal(values[1], bytes.Repeat([]byte{0xbb}, 20)) {
		t.Errorf("unexpected second value %x", values[1])
	}
}

func TestDecodeReturn_RequiresExactLength(t *testing.T) {
	for _, size := range []int{0, 31, 33, 64} {
		if _, err := DecodeReturn(make([]byte, size), "uint256"); !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("expected length error for %d bytes, got %v", size, err)
		}
	}
	if values, err := DecodeReturn(nil); err != nil || len(values) != 0 {
		t.Errorf("empty data should decode to no values, got %v, %v", values, err)
	}
}

func TestDecodeReturn_InvertsEncoding(t *testing.T) {
	rnd := rand.New(0)
	types := []string{"uint256", "address", "int64", "uint8"}
	for i := 0; i < 50; i++ {
		var data []byte
		var want [][]byte
		for _, typ := range types {
			width, _ := Width(typ)
			value := make([]byte, rnd.Intn(width+1))
			rnd.Read(value)
			encoded, err := EncodeParameter(typ, value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data = append(data, encoded...)
			want = append(want, encoded)
		}
		got, err := DecodeReturn(data, types...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range want {
			if !bytes.Equal(want[j], got[j]) {
				t.Errorf("value %d differs, wanted %x, got %x", j, want[j], got[j])
			}
		}
	}
}
