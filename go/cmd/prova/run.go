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
	"io"
	"strings"

	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/Fantom-foundation/Prova/go/examples"
	"github.com/Fantom-foundation/Prova/go/ledger"
	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/eth/tracers/logger"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Deploy code on a fresh ledger and optionally invoke a function",
	ArgsUsage: "<code hex> [<signature> <hex value>...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "value",
			Usage: "amount of wei transferred with the invocation",
			Value: "0",
		},
		&cli.BoolFlag{
			Name:  "static",
			Usage: "invoke the function without modifying the ledger",
		},
		&cli.BoolFlag{
			Name:  "runtime",
			Usage: "treat the code as runtime code and wrap it into a constructor",
		},
		&cli.StringFlag{
			Name:  "processor",
			Usage: "processor executing the transactions, one of " + strings.Join(ledger.RegisteredProcessors(), ", "),
			Value: ledger.GethProcessorName,
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "print a JSON trace of every executed instruction to stderr",
		},
		&cli.StringFlag{
			Name:  "revision",
			Usage: "revision of the simulated ledger",
			Value: prova.LatestRevision.String(),
		},
	},
}

func doRun(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("missing code")
	}
	args := ctx.Args().Slice()
	code, err := decodeHex(args[0])
	if err != nil {
		return err
	}
	if ctx.Bool("runtime") {
		code = examples.InitCode(code)
	}
	value, err := uint256.FromDecimal(ctx.String("value"))
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", ctx.String("value"), err)
	}
	if ctx.Bool("static") && !value.IsZero() {
		return fmt.Errorf("static invocations cannot transfer value")
	}

	config := ledger.DefaultConfig()
	if config.Revision, err = prova.ParseRevision(ctx.String("revision")); err != nil {
		return err
	}
	var processorConfig ledger.ProcessorConfig
	if ctx.Bool("trace") {
		processorConfig.Tracer = logger.NewJSONLogger(&logger.Config{}, ctx.App.ErrWriter)
	}
	if config.Processor, err = ledger.NewProcessor(ctx.String("processor"), processorConfig); err != nil {
		return err
	}
	provider, err := ledger.NewProvider(config)
	if err != nil {
		return err
	}

	out := ctx.App.Writer
	receipt, err := provider.Deploy(code, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "deploy: %v, gas used %d\n", receipt.Result, receipt.GasUsed)
	if !receipt.Succeeded() {
		return fmt.Errorf("deployment failed")
	}
	contract := *receipt.ContractAddress
	fmt.Fprintf(out, "address: %v\n", contract)

	if len(args) < 2 {
		return nil
	}
	values, err := decodeHexValues(args[2:])
	if err != nil {
		return err
	}
	data, err := abi.EncodeCall(args[1], values...)
	if err != nil {
		return err
	}

	if ctx.Bool("static") {
		result, err := provider.StaticCall(contract, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "result: %v\n", result)
		return nil
	}

	provider.Mint(value, provider.Sender())
	receipt, err = provider.Send(contract, data, value)
	if err != nil {
		return err
	}
	printReceipt(out, receipt)
	return nil
}

func printReceipt(out io.Writer, receipt ledger.Receipt) {
	fmt.Fprintf(out, "result: %v\n", receipt.Result)
	fmt.Fprintf(out, "gas used: %d\n", receipt.GasUsed)
	for i, entry := range receipt.Logs {
		fmt.Fprintf(out, "log %d: %v topics=%v data=%s\n", i, entry.Address, entry.Topics, hexutil.Encode(entry.Data))
	}
}
