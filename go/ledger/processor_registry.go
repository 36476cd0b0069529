// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/core/tracing"
	"golang.org/x/exp/maps"
)

// ProcessorConfig is the optional configuration handed to processor
// factories.
type ProcessorConfig struct {
	// Tracer, if set, observes all executed transactions.
	Tracer *tracing.Hooks
}

// ProcessorFactory creates a processor instance.
type ProcessorFactory func(ProcessorConfig) (Processor, error)

// GethProcessorName is the name of the go-ethereum based processor.
const GethProcessorName = "geth"

func init() {
	err := RegisterProcessorFactory(GethProcessorName, func(config ProcessorConfig) (Processor, error) {
		return &GethProcessor{Tracer: config.Tracer}, nil
	})
	if err != nil {
		panic(err)
	}
}

var (
	processorRegistry     = map[string]ProcessorFactory{}
	processorRegistryLock sync.Mutex
)

// RegisterProcessorFactory binds a factory to a name. Names are not
// case-sensitive and may only be registered once.
func RegisterProcessorFactory(name string, factory ProcessorFactory) error {
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil factory for %q", name)
	}
	key := strings.ToLower(name)
	processorRegistryLock.Lock()
	defer processorRegistryLock.Unlock()
	if _, found := processorRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple processors registered for %q", name)
	}
	processorRegistry[key] = factory
	return nil
}

// NewProcessor creates an instance of the processor registered under the
// given name (case-insensitive).
func NewProcessor(name string, config ProcessorConfig) (Processor, error) {
	processorRegistryLock.Lock()
	factory, found := processorRegistry[strings.ToLower(name)]
	processorRegistryLock.Unlock()
	if !found {
		return nil, fmt.Errorf("processor not found: %s", name)
	}
	return factory(config)
}

// RegisteredProcessors lists the names of all registered processors in
// lexicographical order.
func RegisteredProcessors() []string {
	processorRegistryLock.Lock()
	defer processorRegistryLock.Unlock()
	names := maps.Keys(processorRegistry)
	slices.Sort(names)
	return names
}
