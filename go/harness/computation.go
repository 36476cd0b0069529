// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package harness

import (
	"fmt"

	"github.com/Fantom-foundation/Prova/go/examples"
	"github.com/Fantom-foundation/Prova/go/ledger"
)

// RunComputation deploys a computation and evaluates it for the given
// argument.
func RunComputation(provider *ledger.Provider, computation examples.Computation, argument int) (int, error) {
	contract, err := (&Instance{
		Name: computation.Name,
		Code: computation.InitCode(),
	}).Deploy(provider, nil)
	if err != nil {
		return 0, err
	}
	result, err := contract.Call(computation.Input(argument))
	if err != nil {
		return 0, err
	}
	if !result.Succeeded() {
		return 0, &ExecutionError{Contract: computation.Name, Result: result, Err: ErrExecutionFailed}
	}
	value, err := computation.DecodeOutput(result.Output)
	if err != nil {
		return 0, fmt.Errorf("invalid output of %s: %w", computation.Name, err)
	}
	return value, nil
}
