// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package compiler

import (
	"fmt"

	"github.com/Fantom-foundation/Prova/go/prova"
)

const (
	ErrNoSources        = prova.ConstError("no sources")
	ErrTooManySources   = prova.ConstError("backend compiles exactly one source")
	ErrSettingsMismatch = prova.ConstError("settings do not belong to the requested kind")
	ErrMissingSetting   = prova.ConstError("missing required setting")
)

// Request describes one compilation: the language, the sources keyed by file
// name and the backend settings. Nil settings select DefaultSettings.
type Request struct {
	Kind     Kind
	Sources  map[string]string
	Settings Settings
}

// NewRequest creates a request compiling a single source file with default
// settings.
func NewRequest(kind Kind, file, source string) Request {
	return Request{
		Kind:    kind,
		Sources: map[string]string{file: source},
	}
}

// normalize checks the request for errors detectable without running a
// compiler and fills in default settings.
func (r Request) normalize() (Request, error) {
	if !r.Kind.isKnown() {
		return r, &RequestError{Kind: r.Kind, Err: ErrUnknownKind}
	}
	if len(r.Sources) == 0 {
		return r, &RequestError{Kind: r.Kind, Err: ErrNoSources}
	}
	if r.Kind == Huff && len(r.Sources) != 1 {
		return r, &RequestError{Kind: r.Kind, Err: fmt.Errorf("%w, got %d", ErrTooManySources, len(r.Sources))}
	}
	if r.Settings == nil {
		r.Settings = DefaultSettings(r.Kind)
	}
	if got := r.Settings.kind(); got != r.Kind {
		return r, &RequestError{Kind: r.Kind, Err: fmt.Errorf("%w: got %v settings", ErrSettingsMismatch, got)}
	}
	if err := r.Settings.validate(); err != nil {
		return r, &RequestError{Kind: r.Kind, Err: err}
	}
	return r, nil
}

func missing(setting string) error {
	return fmt.Errorf("%w %q", ErrMissingSetting, setting)
}
