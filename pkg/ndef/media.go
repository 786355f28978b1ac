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

import "github.com/ZaparooProject/go-ndefrtd/internal/wire"

// Common MIME types used in NFC.
const (
	MIMETypeWiFi  = "application/vnd.wfa.wsc"
	MIMETypeVCard = "text/vcard"
	MIMETypeJSON  = "application/json"
	MIMETypeText  = "text/plain"
)

// RawPayload carries payload bytes without interpreting them. Media,
// External and Absolute URI records use it, as does any record decoded in
// lenient mode whose type has no registered payload.
type RawPayload struct {
	Data []byte
}

// MarshalPayload returns a copy of Data.
func (p *RawPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	return wire.CloneOrNil(p.Data), nil
}

// UnmarshalPayload stores a copy of data.
func (p *RawPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	p.Data = wire.CloneOrNil(data)
	return nil
}

func newRawRecord(op string, tnf TNF, typ string, payload []byte) (*Record, error) {
	rec := &Record{TNF: tnf, Payload: &RawPayload{Data: payload}}
	if err := rec.SetType(typ); err != nil {
		return nil, wrapOp(op, err)
	}
	return rec, nil
}

// NewMediaRecord creates a Media-type record.
// The mediaType parameter should be a MIME type (e.g., "text/plain", "application/json").
func NewMediaRecord(mediaType string, payload []byte) (*Record, error) {
	return newRawRecord("media.new", TNFMedia, mediaType, payload)
}

// NewExternalRecord creates an External Type record.
// External types use the format "domain:type" (e.g., "example.com:mytype").
func NewExternalRecord(externalType string, payload []byte) (*Record, error) {
	return newRawRecord("external.new", TNFExternal, externalType, payload)
}

// NewAbsoluteURIRecord creates an Absolute URI record, where the URI itself
// is the type. This is different from a URI well-known type record.
func NewAbsoluteURIRecord(uri string, payload []byte) (*Record, error) {
	return newRawRecord("absolute_uri.new", TNFAbsoluteURI, uri, payload)
}

// NewEmptyRecord creates an empty record.
func NewEmptyRecord() *Record {
	return &Record{TNF: TNFEmpty, Payload: &RawPayload{}}
}

// AsRaw returns the record's uninterpreted payload.
func (r *Record) AsRaw() (*RawPayload, error) {
	return payloadAs[*RawPayload](r, "record.raw")
}
