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
	"math/big"

	"github.com/Fantom-foundation/Prova/go/prova"
	"github.com/ethereum/go-ethereum/params"
)

// makeChainConfig derives a chain configuration on which all forks up to the
// given revision are active from genesis and no later fork is.
func makeChainConfig(revision prova.Revision, chainID uint64) *params.ChainConfig {
	config := *params.AllEthashProtocolChanges
	config.ChainID = new(big.Int).SetUint64(chainID)
	config.IstanbulBlock = big.NewInt(0)
	config.BerlinBlock = nil
	config.LondonBlock = nil
	config.MergeNetsplitBlock = nil
	config.ShanghaiTime = nil
	config.CancunTime = nil
	config.PragueTime = nil
	config.VerkleTime = nil

	if revision >= prova.R09_Berlin {
		config.BerlinBlock = big.NewInt(0)
	}
	if revision >= prova.R10_London {
		config.LondonBlock = big.NewInt(0)
	}
	if revision >= prova.R11_Paris {
		config.MergeNetsplitBlock = big.NewInt(0)
	}
	if revision >= prova.R12_Shanghai {
		config.ShanghaiTime = newUint64(0)
	}
	if revision >= prova.R13_Cancun {
		config.CancunTime = newUint64(0)
	}
	return &config
}

func newUint64(value uint64) *uint64 {
	return &value
}
