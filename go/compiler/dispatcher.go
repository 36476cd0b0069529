// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package compiler turns contract sources into bytecode and ABIs by running
// the external compilers solc, vyper and huffc.
package compiler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

const ErrInvalidConfig = prova.ConstError("invalid compiler configuration")

// Config lists the compiler binaries and the infrastructure a Dispatcher uses.
type Config struct {
	SolcPath  string
	VyperPath string
	HuffcPath string

	// Executor runs the compiler binaries; nil selects SubprocessExecutor.
	Executor Executor
	// Logger receives debug records of compiler invocations; nil selects the
	// root logger.
	Logger log.Logger
	// VersionCacheSize bounds the number of memoized compiler versions.
	VersionCacheSize int
}

// DefaultConfig resolves all compilers through the PATH.
func DefaultConfig() Config {
	return Config{
		SolcPath:         "solc",
		VyperPath:        "vyper",
		HuffcPath:        "huffc",
		VersionCacheSize: 16,
	}
}

func (c Config) Validate() error {
	var errs []error
	for name, path := range map[string]string{"solc": c.SolcPath, "vyper": c.VyperPath, "huffc": c.HuffcPath} {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, fmt.Errorf("%w: no binary for %s", ErrInvalidConfig, name))
		}
	}
	if c.VersionCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: version cache size must be positive, got %d", ErrInvalidConfig, c.VersionCacheSize))
	}
	return errors.Join(errs...)
}

// Binary returns the compiler binary configured for the given kind.
func (c Config) Binary(kind Kind) string {
	switch kind {
	case Solidity:
		return c.SolcPath
	case Vyper:
		return c.VyperPath
	case Huff:
		return c.HuffcPath
	default:
		return ""
	}
}

// Dispatcher routes compile requests to the backend of their kind. A
// dispatcher holds no compilation state; compile outputs are never cached.
type Dispatcher struct {
	backends map[Kind]Backend
	executor Executor
	versions *lru.Cache[string, string]
	log      log.Logger
}

func NewDispatcher(config Config) (*Dispatcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	executor := config.Executor
	if executor == nil {
		executor = SubprocessExecutor{}
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Root()
	}
	versions, err := lru.New[string, string](config.VersionCacheSize)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		backends: map[Kind]Backend{
			Solidity: newSolidityBackend(config.SolcPath, executor),
			Vyper:    newVyperBackend(config.VyperPath, executor),
			Huff:     newHuffBackend(config.HuffcPath, executor),
		},
		executor: executor,
		versions: versions,
		log:      logger.With("module", "compiler"),
	}, nil
}

// Compile validates the request, runs the compiler of its kind to completion
// and returns the compiler's output. Malformed requests fail with a
// *RequestError before any compiler is started; all other failures are
// reported as *BackendError.
func (d *Dispatcher) Compile(request Request) (Output, error) {
	request, err := request.normalize()
	if err != nil {
		return nil, err
	}
	backend, found := d.backends[request.Kind]
	if !found {
		return nil, &RequestError{Kind: request.Kind, Err: ErrUnknownKind}
	}

	d.log.Debug("Compiling sources", "kind", request.Kind, "binary", backend.Binary(), "files", len(request.Sources))
	output, err := backend.Compile(request)
	if err != nil {
		var backendErr *BackendError
		if !errors.As(err, &backendErr) {
			err = &BackendError{Kind: request.Kind, Failure: SpawnFailure, Message: err.Error(), Err: err}
		}
		d.log.Debug("Compilation failed", "kind", request.Kind, "err", err)
		return nil, err
	}
	d.log.Debug("Compilation succeeded", "kind", request.Kind, "diagnostics", len(output.Diagnostics()))
	return output, nil
}

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+\S*`)

// Version reports the version of the compiler used for the given kind. The
// answer is memoized per binary.
func (d *Dispatcher) Version(kind Kind) (string, error) {
	backend, found := d.backends[kind]
	if !found {
		return "", &RequestError{Kind: kind, Err: ErrUnknownKind}
	}
	binary := backend.Binary()
	if version, found := d.versions.Get(binary); found {
		return version, nil
	}

	res, err := d.executor.Execute(Command{Path: binary, Args: []string{"--version"}})
	if err != nil {
		return "", &BackendError{Kind: kind, Failure: SpawnFailure, Message: err.Error(), Err: err}
	}
	if res.ExitCode != 0 {
		return "", exitError(kind, res)
	}
	text := strings.TrimSpace(string(res.Stdout))
	version := versionPattern.FindString(text)
	if version == "" {
		version = text
	}
	d.versions.Add(binary, version)
	return version, nil
}
