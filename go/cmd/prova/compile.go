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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Fantom-foundation/Prova/go/abi"
	"github.com/Fantom-foundation/Prova/go/compiler"
	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var CompileCmd = cli.Command{
	Action:    doCompile,
	Name:      "compile",
	Usage:     "Compile source files and list the resulting contracts",
	ArgsUsage: "<file>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "lang",
			Usage: "source language (solidity, vyper or huff), derived from the file extension if omitted",
		},
		&cli.StringFlag{
			Name:  "evm-version",
			Usage: "EVM version targeted by the compiler, e.g. paris or cancun",
		},
		&cli.StringSliceFlag{
			Name:  "remap",
			Usage: "solc import remapping of the form prefix=path",
		},
		&cli.BoolFlag{
			Name:  "allow-warnings",
			Usage: "do not fail compilation on warnings",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the compiled contracts as JSON",
		},
	},
}

var VersionsCmd = cli.Command{
	Action: doVersions,
	Name:   "versions",
	Usage:  "Print the versions of the configured compilers",
}

func doCompile(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("missing source files")
	}

	request, err := newCompileRequest(ctx, files)
	if err != nil {
		return err
	}
	dispatcher, err := newDispatcher(ctx)
	if err != nil {
		return err
	}
	output, err := dispatcher.Compile(request)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		encoder := json.NewEncoder(ctx.App.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output.Contracts())
	}
	return printContracts(ctx.App.Writer, output)
}

func newCompileRequest(ctx *cli.Context, files []string) (compiler.Request, error) {
	var kind compiler.Kind
	var err error
	if lang := ctx.String("lang"); lang != "" {
		kind, err = compiler.ParseKind(lang)
	} else {
		kind, err = compiler.KindOfFile(files[0])
	}
	if err != nil {
		return compiler.Request{}, err
	}

	sources := make(map[string]string, len(files))
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return compiler.Request{}, fmt.Errorf("could not read source: %w", err)
		}
		sources[file] = string(source)
	}

	evmVersion := ""
	if name := ctx.String("evm-version"); name != "" {
		revision, err := prova.ParseRevision(name)
		if err != nil {
			return compiler.Request{}, err
		}
		evmVersion = revision.EvmVersion()
	}

	settings := compiler.DefaultSettings(kind)
	switch s := settings.(type) {
	case *compiler.SoliditySettings:
		s.EvmVersion = evmVersion
		s.Remappings = ctx.StringSlice("remap")
		s.AllowWarnings = ctx.Bool("allow-warnings")
	case *compiler.VyperSettings:
		if evmVersion != "" {
			s.EvmVersion = evmVersion
		}
		s.AllowWarnings = ctx.Bool("allow-warnings")
	}

	return compiler.Request{
		Kind:     kind,
		Sources:  sources,
		Settings: settings,
	}, nil
}

func printContracts(out io.Writer, output compiler.Output) error {
	contracts := output.Contracts()
	files := maps.Keys(contracts)
	slices.Sort(files)
	for _, file := range files {
		names := maps.Keys(contracts[file])
		slices.Sort(names)
		for _, name := range names {
			contract := contracts[file][name]
			code, err := contract.Code()
			if err != nil {
				return fmt.Errorf("invalid code of %s: %w", name, err)
			}
			runtime, err := contract.RuntimeCode()
			if err != nil {
				return fmt.Errorf("invalid runtime code of %s: %w", name, err)
			}
			fmt.Fprintf(out, "%s:%s\n", file, name)
			fmt.Fprintf(out, "\tcode:    %sB\n", unitconv.FormatPrefix(float64(len(code)), unitconv.IEC, 1))
			fmt.Fprintf(out, "\truntime: %sB\n", unitconv.FormatPrefix(float64(len(runtime)), unitconv.IEC, 1))
			for _, entry := range contract.Abi {
				if entry.Type != abi.Function {
					continue
				}
				fmt.Fprintf(out, "\t%s %s\n", entry.Selector(), entry.Signature())
			}
		}
	}
	return nil
}

func doVersions(ctx *cli.Context) error {
	dispatcher, err := newDispatcher(ctx)
	if err != nil {
		return err
	}
	for _, kind := range compiler.Kinds() {
		version, err := dispatcher.Version(kind)
		if err != nil {
			version = fmt.Sprintf("unavailable (%v)", err)
		}
		fmt.Fprintf(ctx.App.Writer, "%-8v %s\n", kind, version)
	}
	return nil
}
