// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ndef

import (
	"github.com/ZaparooProject/go-ndefrtd/internal/syncutil"
)

// Constructor returns a zero payload for a registered record type.
type Constructor func() Payload

type registryEntry struct {
	ctor Constructor
	typ  string
}

// Registry maps record types to payload constructors.
//
// A new registry is empty. The first lookup or registration fills it with the
// built-in types (URI, Handover Select, Alternative Carrier, Bluetooth BR/EDR,
// Bluetooth LE, Error). Lookups scan entries in registration order and the
// first exact type match wins.
type Registry struct {
	entries     []registryEntry
	mu          syncutil.Mutex
	initialized bool
}

// NewRegistry returns an empty, uninitialized registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is the registry used by DefaultCodec and the package-level
// Register, ReleaseAll and Retrieve functions.
var DefaultRegistry = NewRegistry()

func builtinEntries() []registryEntry {
	return []registryEntry{
		{typ: URIRecordType, ctor: func() Payload { return &URIPayload{} }},
		{typ: HandoverSelectRecordType, ctor: func() Payload { return &HandoverSelectPayload{} }},
		{typ: AlternativeCarrierRecordType, ctor: func() Payload { return &AlternativeCarrierPayload{} }},
		{typ: BluetoothRecordType, ctor: func() Payload { return &BluetoothPayload{} }},
		{typ: BLERecordType, ctor: func() Payload { return &BLEPayload{} }},
		{typ: ErrorRecordType, ctor: func() Payload { return &ErrorPayload{} }},
	}
}

// BuiltinTypes returns the record types every registry starts with.
func BuiltinTypes() []string {
	entries := builtinEntries()
	types := make([]string, len(entries))
	for i, e := range entries {
		types[i] = e.typ
	}
	return types
}

func (r *Registry) initLocked() {
	if r.initialized {
		return
	}
	r.entries = builtinEntries()
	r.initialized = true
	logger.Debug().Int("types", len(r.entries)).Msg("registry populated with built-in types")
}

// Register adds a record type. It fails with ErrAlreadyRegistered when the
// type is already present; existing entries are never replaced.
func (r *Registry) Register(typ string, ctor Constructor) error {
	const op = "registry.register"

	if typ == "" {
		return errorf(op, ErrIllegalArgument, "empty record type")
	}
	if len(typ) > maxTypeLength {
		return errorf(op, ErrIllegalArgument, "type is %d bytes, maximum %d", len(typ), maxTypeLength)
	}
	if ctor == nil {
		return errorf(op, ErrIllegalArgument, "nil constructor for type %q", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.initLocked()
	for _, e := range r.entries {
		if e.typ == typ {
			return errorf(op, ErrAlreadyRegistered, "type %q", typ)
		}
	}
	r.entries = append(r.entries, registryEntry{typ: typ, ctor: ctor})

	logger.Debug().Str("type", typ).Int("types", len(r.entries)).Msg("registered record type")
	return nil
}

// Retrieve builds an empty record for tnf and typ. A registered type gets its
// constructor's payload. Otherwise Media and External records get a
// RawPayload carrying the type verbatim, as does the empty record; anything
// else fails with ErrRecordUnsupported.
func (r *Registry) Retrieve(tnf TNF, typ string) (*Record, error) {
	return r.retrieve(tnf, typ, false)
}

func (r *Registry) retrieve(tnf TNF, typ string, lenient bool) (*Record, error) {
	const op = "registry.retrieve"

	if ctor := r.lookup(typ); ctor != nil {
		p := ctor()
		if p == nil {
			return nil, errorf(op, ErrRecordInvalid, "constructor for type %q returned no payload", typ)
		}
		return &Record{TNF: tnf, Type: typ, Payload: p}, nil
	}

	switch {
	case tnf == TNFMedia, tnf == TNFExternal, tnf == TNFEmpty && typ == "":
		return &Record{TNF: tnf, Type: typ, Payload: &RawPayload{}}, nil
	case lenient:
		logger.Trace().Stringer("tnf", tnf).Str("type", typ).Msg("decoding unregistered type as raw payload")
		return &Record{TNF: tnf, Type: typ, Payload: &RawPayload{}}, nil
	default:
		return nil, errorf(op, ErrRecordUnsupported, "TNF %s type %q", tnf, typ)
	}
}

func (r *Registry) lookup(typ string) Constructor {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.initLocked()
	for _, e := range r.entries {
		if e.typ == typ {
			return e.ctor
		}
	}
	return nil
}

// ReleaseAll drops every entry and returns the registry to its initial,
// unpopulated state. The next lookup or registration repopulates built-ins.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.initialized = false
	logger.Debug().Msg("registry released")
}

// Initialized reports whether the built-in types have been loaded.
func (r *Registry) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Types returns the registered types in lookup order.
func (r *Registry) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.initLocked()
	types := make([]string, len(r.entries))
	for i, e := range r.entries {
		types[i] = e.typ
	}
	return types
}

// Register adds a record type to DefaultRegistry.
func Register(typ string, ctor Constructor) error {
	return DefaultRegistry.Register(typ, ctor)
}

// Retrieve builds an empty record from DefaultRegistry.
func Retrieve(tnf TNF, typ string) (*Record, error) {
	return DefaultRegistry.Retrieve(tnf, typ)
}

// ReleaseAll resets DefaultRegistry.
func ReleaseAll() {
	DefaultRegistry.ReleaseAll()
}
