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
	"strings"

	"github.com/Fantom-foundation/Prova/go/compiler"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var globalFlags = []cli.Flag{
	solcFlag,
	vyperFlag,
	huffcFlag,
	verbosityFlag,
}

var solcFlag = &cli.StringFlag{
	Name:    "solc",
	Usage:   "path of the Solidity compiler",
	Value:   compiler.DefaultConfig().SolcPath,
	EnvVars: []string{"PROVA_SOLC"},
}

var vyperFlag = &cli.StringFlag{
	Name:    "vyper",
	Usage:   "path of the Vyper compiler",
	Value:   compiler.DefaultConfig().VyperPath,
	EnvVars: []string{"PROVA_VYPER"},
}

var huffcFlag = &cli.StringFlag{
	Name:    "huffc",
	Usage:   "path of the Huff compiler",
	Value:   compiler.DefaultConfig().HuffcPath,
	EnvVars: []string{"PROVA_HUFFC"},
}

var verbosityFlag = &cli.IntFlag{
	Name:    "verbosity",
	Usage:   "logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
	Value:   3,
	EnvVars: []string{"PROVA_VERBOSITY"},
}

func setupLogging(ctx *cli.Context) error {
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < 0 || verbosity > 5 {
		return fmt.Errorf("invalid verbosity %d", verbosity)
	}
	handler := log.NewTerminalHandlerWithLevel(ctx.App.ErrWriter, log.FromLegacyLevel(verbosity), false)
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func newDispatcher(ctx *cli.Context) (*compiler.Dispatcher, error) {
	config := compiler.DefaultConfig()
	config.SolcPath = ctx.String(solcFlag.Name)
	config.VyperPath = ctx.String(vyperFlag.Name)
	config.HuffcPath = ctx.String(huffcFlag.Name)
	return compiler.NewDispatcher(config)
}

// decodeHex accepts hex strings with and without 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	res, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return res, nil
}
