// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package prova

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Revision identifies the set of EVM rules a ledger executes under and the
// EVM version contracts are compiled for.
type Revision int

const (
	R07_Istanbul Revision = iota
	R09_Berlin
	R10_London
	R11_Paris
	R12_Shanghai
	R13_Cancun

	// LatestRevision is the newest revision supported by the ledger.
	LatestRevision = R13_Cancun
)

const ErrUnknownRevision = ConstError("unknown revision")

// Revisions lists all supported revisions in chronological order.
func Revisions() []Revision {
	return []Revision{R07_Istanbul, R09_Berlin, R10_London, R11_Paris, R12_Shanghai, R13_Cancun}
}

func (r Revision) String() string {
	switch r {
	case R07_Istanbul:
		return "Istanbul"
	case R09_Berlin:
		return "Berlin"
	case R10_London:
		return "London"
	case R11_Paris:
		return "Paris"
	case R12_Shanghai:
		return "Shanghai"
	case R13_Cancun:
		return "Cancun"
	default:
		return fmt.Sprintf("Revision(%d)", r)
	}
}

// EvmVersion returns the name compilers use for this revision in their
// evmVersion setting.
func (r Revision) EvmVersion() string {
	if !r.isKnown() {
		return ""
	}
	return strings.ToLower(r.String())
}

// IsPostMerge reports whether blocks of this revision carry a random value
// instead of a difficulty.
func (r Revision) IsPostMerge() bool {
	return r >= R11_Paris
}

func (r Revision) isKnown() bool {
	return r >= R07_Istanbul && r <= LatestRevision
}

// ParseRevision resolves a revision by its name or EVM version, ignoring case.
func ParseRevision(name string) (Revision, error) {
	for _, r := range Revisions() {
		if strings.EqualFold(name, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRevision, name)
}

func (r Revision) MarshalJSON() ([]byte, error) {
	if !r.isKnown() {
		return nil, &json.UnsupportedValueError{Str: r.String()}
	}
	return json.Marshal(r.String())
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	revision, err := ParseRevision(s)
	if err != nil {
		return err
	}
	*r = revision
	return nil
}
