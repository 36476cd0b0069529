// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"

	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var SelectorCmd = cli.Command{
	Action:    doSelector,
	Name:      "selector",
	Usage:     "Print the selector of a function signature",
	ArgsUsage: "<signature>",
}

var EncodeCmd = cli.Command{
	Action:    doEncode,
	Name:      "encode",
	Usage:     "Encode the call data of a function invocation",
	ArgsUsage: "<signature> <hex value>...",
}

var DecodeCmd = cli.Command{
	Action:    doDecode,
	Name:      "decode",
	Usage:     "Split return data into values of the given types",
	ArgsUsage: "<hex data> <type>...",
}

func doSelector(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one signature, got %d arguments", ctx.NArg())
	}
	signature := ctx.Args().First()
	if _, _, err := abi.ParseSignature(signature); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, abi.ComputeSelector(signature))
	return nil
}

func doEncode(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("missing signature")
	}
	args := ctx.Args().Slice()
	values, err := decodeHexValues(args[1:])
	if err != nil {
		return err
	}
	data, err := abi.EncodeCall(args[0], values...)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(data))
	return nil
}

func doDecode(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("missing return data")
	}
	args := ctx.Args().Slice()
	data, err := decodeHex(args[0])
	if err != nil {
		return err
	}
	values, err := abi.DecodeReturn(data, args[1:]...)
	if err != nil {
		return err
	}
	for i, value := range values {
		fmt.Fprintf(ctx.App.Writer, "%s: %s\n", args[i+1], hexutil.Encode(value))
	}
	return nil
}

func decodeHexValues(args []string) ([][]byte, error) {
	values := make([][]byte, len(args))
	for i, arg := range args {
		value, err := decodeHex(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = value
	}
	return values, nil
}
