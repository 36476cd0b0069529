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

// CounterSolidity is the Solidity version of the Counter program.
const CounterSolidity = `// SPDX-License-Identifier: AGPLv3
pragma solidity ^0.8.13;

contract Counter {
    uint256 public number;

    function setNumber(uint256 _number) public {
        number = _number;
    }

    function increment() public {
        number++;
    }
}
`

// CounterVyper is the Vyper version of the Counter program.
const CounterVyper = `number: public(uint256)

@external
def setNumber(_number: uint256):
    self.number = _number

@external
def increment():
    self.number += 1
`

// SimpleStoreHuff is the Huff version of the SimpleStore program.
const SimpleStoreHuff = `/* Interface */
#define function setValue(uint256) nonpayable returns ()
#define function getValue() view returns (uint256)

/* Storage Slots */
#define constant VALUE_LOCATION = FREE_STORAGE_POINTER()

/* Methods */
#define macro SET_VALUE() = takes (0) returns (0) {
    0x04 calldataload   // [value]
    [VALUE_LOCATION]    // [ptr, value]
    sstore              // []
    stop
}

#define macro GET_VALUE() = takes (0) returns (0) {
    [VALUE_LOCATION] sload   // [value]
    0x00 mstore              // []
    0x20 0x00 return
}

#define macro MAIN() = takes (0) returns (0) {
    0x00 calldataload 0xE0 shr
    dup1 __FUNC_SIG(setValue) eq set jumpi
    dup1 __FUNC_SIG(getValue) eq get jumpi

    0x00 0x00 revert

    set:
        SET_VALUE()
    get:
        GET_VALUE()
}
`

// NonPayableHuff is the Huff version of the NonPayable program.
const NonPayableHuff = `#define macro MAIN() = takes (0) returns (0) {
    callvalue iszero no_value jumpi
    0x00 0x00 revert
    no_value:
        stop
}
`

// BrokenSolidity, BrokenVyper and BrokenHuff do not compile.
const (
	BrokenSolidity = "pragma solidity ^0.8.13;\ncontract Broken { function f( }\n"
	BrokenVyper    = "@external\ndef f(:\n"
	BrokenHuff     = "#define macro MAIN() = takes (0) returns (0) {\n    0x00 0x00 revert\n"
)
