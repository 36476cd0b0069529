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
	"errors"
	"testing"
)

func TestRevisions_MarshalUsesNames(t *testing.T) {
	for _, revision := range Revisions() {
		marshaled, err := revision.MarshalJSON()
		if err != nil {
			t.Fatalf("failed to marshal %v: %v", revision, err)
		}
		if want, got := `"`+revision.String()+`"`, string(marshaled); want != got {
			t.Errorf("unexpected JSON, wanted %s, got %s", want, got)
		}
		var restored Revision
		if err := restored.UnmarshalJSON(marshaled); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", marshaled, err)
		}
		if want, got := revision, restored; want != got {
			t.Errorf("unexpected revision, wanted %v, got %v", want, got)
		}
	}
}

func TestRevisions_UnknownRevisionsCannotBeMarshaled(t *testing.T) {
	for _, revision := range []Revision{-1, R13_Cancun + 1, 100} {
		if _, err := revision.MarshalJSON(); err == nil {
			t.Errorf("expected marshaling of %v to fail", revision)
		}
	}
}

func TestRevisions_UnmarshalIgnoresCase(t *testing.T) {
	tests := map[string]Revision{
		`"istanbul"`: R07_Istanbul,
		`"BERLIN"`:   R09_Berlin,
		`"paris"`:    R11_Paris,
		`"Cancun"`:   R13_Cancun,
	}
	for input, want := range tests {
		var got Revision
		if err := got.UnmarshalJSON([]byte(input)); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", input, err)
		}
		if want != got {
			t.Errorf("unexpected revision for %s, wanted %v, got %v", input, want, got)
		}
	}
}

func TestRevisions_UnmarshalRejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"Paris", `"Revision(42)"`, `"Frontier"`, `42`} {
		var revision Revision
		if err := revision.UnmarshalJSON([]byte(input)); err == nil {
			t.Errorf("expected %s to be rejected, got %v", input, revision)
		}
	}
}

func TestRevisions_EvmVersionIsLowerCaseName(t *testing.T) {
	tests := map[Revision]string{
		R07_Istanbul: "istanbul",
		R11_Paris:    "paris",
		R13_Cancun:   "cancun",
		Revision(77): "",
	}
	for revision, want := range tests {
		if got := revision.EvmVersion(); want != got {
			t.Errorf("unexpected EVM version for %v, wanted %q, got %q", revision, want, got)
		}
	}
}

func TestRevisions_ParseRevisionRoundTripsAllRevisions(t *testing.T) {
	for _, revision := range Revisions() {
		got, err := ParseRevision(revision.EvmVersion())
		if err != nil {
			t.Fatalf("failed to parse %v: %v", revision, err)
		}
		if got != revision {
			t.Errorf("unexpected revision, wanted %v, got %v", revision, got)
		}
	}
	if _, err := ParseRevision("homestead"); !errors.Is(err, ErrUnknownRevision) {
		t.Errorf("unexpected error for unknown revision: %v", err)
	}
}

func TestRevisions_PostMergeStartsWithParis(t *testing.T) {
	for _, revision := range Revisions() {
		if want, got := revision >= R11_Paris, revision.IsPostMerge(); want != got {
			t.Errorf("unexpected post-merge flag for %v, wanted %t, got %t", revision, want, got)
		}
	}
}
