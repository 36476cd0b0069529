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
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// WordWidth is the encoded width of integer parameters.
	WordWidth = 32
	// AddressWidth is the encoded width of address parameters.
	AddressWidth = common.AddressLength
)

// Width returns the number of bytes a parameter of the given type occupies.
// Only unsigned and signed integers and addresses are supported; arrays,
// tuples and every other type are rejected.
func Width(typ string) (int, error) {
	switch {
	case strings.HasSuffix(typ, "]"),
		strings.HasPrefix(typ, "("),
		strings.HasPrefix(typ, "tuple"):
		return 0, &EncodingError{Index: -1, Type: typ, Err: ErrUnsupportedType}
	case typ == "address":
		return AddressWidth, nil
	case strings.HasPrefix(typ, "uint"):
		return integerWidth(typ, typ[len("uint"):])
	case strings.HasPrefix(typ, "int"):
		return integerWidth(typ, typ[len("int"):])
	}
	return 0, &EncodingError{Index: -1, Type: typ, Err: ErrUnsupportedType}
}

func integerWidth(typ, bits string) (int, error) {
	if bits == "" {
		return WordWidth, nil
	}
	n, err := strconv.Atoi(bits)
	if err != nil || n < 8 || n > 256 || n%8 != 0 {
		return 0, &EncodingError{Index: -1, Type: typ, Err: ErrUnsupportedType}
	}
	return WordWidth, nil
}

// EncodeParameter encodes a raw big-endian value as a parameter of the given
// type. Values shorter than the type's width are left-padded with zeros, values
// exceeding it are rejected. The result never aliases the input.
func EncodeParameter(typ string, value []byte) ([]byte, error) {
	width, err := Width(typ)
	if err != nil {
		return nil, err
	}
	if len(value) > width {
		return nil, &EncodingError{Index: -1, Type: typ, Err: ErrValueTooLarge}
	}
	res := make([]byte, width)
	copy(res[width-len(value):], value)
	return res, nil
}

// EncodeCall produces the call data for invoking the function with the given
// signature: its selector followed by every value encoded according to the
// corresponding parameter type.
func EncodeCall(signature string, values ...[]byte) ([]byte, error) {
	_, types, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	if len(types) != len(values) {
		return nil, &EncodingError{Index: -1, Type: signature, Err: ErrArgumentCount}
	}
	selector := ComputeSelector(signature)
	res := append(make([]byte, 0, 4+len(values)*WordWidth), selector[:]...)
	for i, typ := range types {
		encoded, err := EncodeParameter(typ, values[i])
		if err != nil {
			return nil, withIndex(err, i)
		}
		res = append(res, encoded...)
	}
	return res, nil
}

// DecodeReturn splits return data into one value per type. The data must be
// exactly as long as the sum of the widths of all types.
func DecodeReturn(data []byte, types ...string) ([][]byte, error) {
	widths := make([]int, len(types))
	total := 0
	for i, typ := range types {
		width, err := Width(typ)
		if err != nil {
			return nil, withIndex(err, i)
		}
		widths[i] = width
		total += width
	}
	if len(data) != total {
		return nil, &EncodingError{
			Index: -1,
			Type:  "(" + strings.Join(types, ",") + ")",
			Err:   ErrLengthMismatch,
		}
	}
	res := make([][]byte, len(types))
	offset := 0
	for i, width := range widths {
		res[i] = append([]byte(nil), data[offset:offset+width]...)
		offset += width
	}
	return res, nil
}

func withIndex(err error, index int) error {
	if e, ok := err.(*EncodingError); ok && e.Index < 0 {
		return &EncodingError{Index: index, Type: e.Type, Err: e.Err}
	}
	return err
}

// Word encodes a 256-bit value as a 32-byte big-endian word.
func Word(value *uint256.Int) []byte {
	word := value.Bytes32()
	return word[:]
}

// Uint64 encodes a small integer as a 32-byte big-endian word.
func Uint64(value uint64) []byte {
	return Word(uint256.NewInt(value))
}

// Address returns the raw 20 bytes of an address.
func Address(address common.Address) []byte {
	return address.Bytes()
}

// ToUint256 interprets a big-endian value of at most 32 bytes as an integer.
func ToUint256(value []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(value)
}

// ToAddress interprets the trailing 20 bytes of a value as an address.
func ToAddress(value []byte) common.Address {
	return common.BytesToAddress(value)
}
