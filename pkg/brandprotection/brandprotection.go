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

// Package brandprotection implements the brand protection record: an NFC
// Forum external type carrying an X.509 certificate. Serializing and parsing
// the certificate is left to caller-supplied handlers so that callers choose
// the encoding and perform any validation themselves.
package brandprotection

import (
	"bytes"
	"crypto/x509"
	"fmt"

	"github.com/ZaparooProject/go-ndefrtd/pkg/ndef"
)

// RecordType is the external type of a brand protection record.
const RecordType = "infineon.com:nfc-bridge-tag.x509"

// Handlers convert between a certificate and the record payload.
type Handlers struct {
	Encode func(cert *x509.Certificate) ([]byte, error)
	Decode func(data []byte) (*x509.Certificate, error)
}

// DERHandlers stores certificates as raw DER. Decode parses with
// x509.ParseCertificate and does not verify the chain.
func DERHandlers() Handlers {
	return Handlers{
		Encode: func(cert *x509.Certificate) ([]byte, error) {
			if len(cert.Raw) == 0 {
				return nil, fmt.Errorf("certificate has no DER encoding")
			}
			return bytes.Clone(cert.Raw), nil
		},
		Decode: x509.ParseCertificate,
	}
}

// Payload is the body of a brand protection record.
type Payload struct {
	Certificate *x509.Certificate
	handlers    Handlers
}

// NewPayload returns an empty payload bound to h.
func NewPayload(h Handlers) *Payload {
	return &Payload{handlers: h}
}

// Register adds the brand protection type to reg, decoding with h.
func Register(reg *ndef.Registry, h Handlers) error {
	return reg.Register(RecordType, func() ndef.Payload { return NewPayload(h) })
}

// NewRecord creates a brand protection record for cert.
func NewRecord(cert *x509.Certificate, h Handlers) (*ndef.Record, error) {
	if cert == nil {
		return nil, &ndef.Error{Op: "brandprotection.new", Err: fmt.Errorf("%w: nil certificate", ndef.ErrIllegalArgument)}
	}
	p := NewPayload(h)
	p.Certificate = cert
	return &ndef.Record{TNF: ndef.TNFExternal, Type: RecordType, Payload: p}, nil
}

// MarshalPayload encodes the certificate with the Encode handler.
func (p *Payload) MarshalPayload(_ *ndef.Codec) ([]byte, error) {
	const op = "brandprotection.encode"

	if p.handlers.Encode == nil {
		return nil, &ndef.Error{Op: op, Err: ndef.ErrHandlersNotDefined}
	}
	if p.Certificate == nil {
		return nil, &ndef.Error{Op: op, Err: fmt.Errorf("%w: certificate not set", ndef.ErrInvalidState)}
	}
	data, err := p.handlers.Encode(p.Certificate)
	if err != nil {
		return nil, &ndef.Error{Op: op, Err: fmt.Errorf("%w: %w", ndef.ErrIllegalArgument, err)}
	}
	return data, nil
}

// UnmarshalPayload decodes the certificate with the Decode handler.
func (p *Payload) UnmarshalPayload(_ *ndef.Codec, data []byte) error {
	const op = "brandprotection.decode"

	if p.handlers.Decode == nil {
		return &ndef.Error{Op: op, Err: ndef.ErrHandlersNotDefined}
	}
	if len(data) == 0 {
		return &ndef.Error{Op: op, Err: fmt.Errorf("%w: empty payload", ndef.ErrIllegalArgument)}
	}
	cert, err := p.handlers.Decode(data)
	if err != nil {
		return &ndef.Error{Op: op, Err: fmt.Errorf("%w: %w", ndef.ErrIllegalArgument, err)}
	}

	if cert == nil {
		return &ndef.Error{Op: op, Err: fmt.Errorf("%w: handler returned no certificate", ndef.ErrIllegalArgument)}
	}

	log := ndef.Logger()
	log.Debug().Str("subject", cert.Subject.String()).Msg("decoded brand protection certificate")

	p.Certificate = cert
	return nil
}

// FromRecord returns the brand protection payload of rec.
func FromRecord(rec *ndef.Record) (*Payload, error) {
	const op = "brandprotection.from_record"

	if rec == nil {
		return nil, &ndef.Error{Op: op, Err: fmt.Errorf("%w: nil record", ndef.ErrIllegalArgument)}
	}
	p, ok := rec.Payload.(*Payload)
	if !ok {
		return nil, &ndef.Error{Op: op, Err: fmt.Errorf("%w: record type %q holds %T", ndef.ErrRecordInvalid, rec.Type, rec.Payload)}
	}
	return p, nil
}
