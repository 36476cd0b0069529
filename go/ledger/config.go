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
	"errors"
	"fmt"
	"slices"

	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

const ErrInvalidConfig = prova.ConstError("invalid ledger configuration")

// DefaultSender is the account issuing transactions until another one is
// impersonated.
var DefaultSender = common.HexToAddress("0x1000000000000000000000000000000000000001")

// Config defines the chain a Provider simulates.
type Config struct {
	Revision    prova.Revision
	ChainID     uint64
	BlockNumber uint64
	Timestamp   uint64
	Coinbase    common.Address
	GasLimit    uint64 // gas limit of every transaction and of the block

	// Sender is the initially active sender.
	Sender common.Address

	// Processor executes transactions. If nil, transactions are run on the
	// go-ethereum EVM.
	Processor Processor

	// Logger receives a debug record for every committed transaction. If nil,
	// the root logger is used.
	Logger log.Logger
}

func DefaultConfig() Config {
	return Config{
		Revision:    prova.LatestRevision,
		ChainID:     1337,
		BlockNumber: 1,
		Timestamp:   1,
		GasLimit:    30_000_000,
		Sender:      DefaultSender,
	}
}

func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(prova.Revisions(), c.Revision) {
		errs = append(errs, fmt.Errorf("%w: %w: %v", ErrInvalidConfig, prova.ErrUnknownRevision, c.Revision))
	}
	if c.ChainID == 0 {
		errs = append(errs, fmt.Errorf("%w: chain id must not be zero", ErrInvalidConfig))
	}
	if c.GasLimit == 0 {
		errs = append(errs, fmt.Errorf("%w: gas limit must not be zero", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
