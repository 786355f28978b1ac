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

// Package ndef encodes and decodes NFC Data Exchange Format messages.
//
// A Record pairs the NDEF envelope fields (TNF, type, optional id) with a
// Payload that knows its own byte layout. Which Payload a decoded record gets
// is decided by a Registry keyed on the record type, so new record types can
// be added at runtime. Composite records such as Handover Select carry a
// nested NDEF message and recurse through the same Codec with a bounded depth.
package ndef

import "fmt"

// TNF is the 3-bit Type Name Format of a record.
type TNF byte

// TNF values as defined by NFC Forum.
const (
	TNFEmpty       TNF = 0x00 // Empty record
	TNFWellKnown   TNF = 0x01 // NFC Forum well-known type
	TNFMedia       TNF = 0x02 // Media-type (RFC 2046)
	TNFAbsoluteURI TNF = 0x03 // Absolute URI (RFC 3986)
	TNFExternal    TNF = 0x04 // NFC Forum external type
	TNFUnknown     TNF = 0x05 // Unknown
	TNFUnchanged   TNF = 0x06 // Unchanged (for chunked records)
	TNFReserved    TNF = 0x07 // Reserved
)

func (t TNF) String() string {
	switch t {
	case TNFEmpty:
		return "empty"
	case TNFWellKnown:
		return "well-known"
	case TNFMedia:
		return "media"
	case TNFAbsoluteURI:
		return "absolute-uri"
	case TNFExternal:
		return "external"
	case TNFUnknown:
		return "unknown"
	case TNFUnchanged:
		return "unchanged"
	case TNFReserved:
		return "reserved"
	default:
		return fmt.Sprintf("TNF(0x%02X)", byte(t))
	}
}

// Header flag bits.
const (
	tnfMask           byte = 0x07
	flagMB            byte = 0x80
	flagME            byte = 0x40
	flagCF            byte = 0x20
	flagSR            byte = 0x10
	flagIL            byte = 0x08
	shortRecordMaxLen      = 255
	maxTypeLength          = 255
	maxIDLength            = 255
)

// emptyMessage is the whole encoding of a message with no records:
// MB|ME|SR with TNF Empty, zero type length, zero payload length.
var emptyMessage = [3]byte{0xD0, 0x00, 0x00}

// EmptyMessage returns a fresh copy of the empty-message encoding.
func EmptyMessage() []byte {
	out := emptyMessage
	return out[:]
}

// Payload is the concrete body of a record. Implementations translate between
// their own fields and the payload bytes carried by the NDEF envelope. The
// Codec is passed through so composite payloads can encode and decode nested
// messages with the caller's registry and limits.
type Payload interface {
	MarshalPayload(c *Codec) ([]byte, error)
	UnmarshalPayload(c *Codec, data []byte) error
}

// Record is one NDEF record.
//
// Type holds the raw type bytes and is empty only for TNF Empty records.
// A nil ID means the record has no id field; a non-nil empty ID is encoded
// with the IL flag and a zero id length.
type Record struct {
	Payload Payload
	Type    string
	ID      []byte
	TNF     TNF
}

// HasID reports whether the record carries an id field.
func (r *Record) HasID() bool { return r.ID != nil }

// SetType replaces the record type. Types longer than 255 bytes cannot be
// represented in the envelope.
func (r *Record) SetType(typ string) error {
	if len(typ) > maxTypeLength {
		return errorf("record.set_type", ErrIllegalArgument, "type is %d bytes, maximum %d", len(typ), maxTypeLength)
	}
	r.Type = typ
	return nil
}

// SetID replaces the record id. Pass nil to remove the id field.
func (r *Record) SetID(id []byte) error {
	if len(id) > maxIDLength {
		return errorf("record.set_id", ErrIllegalArgument, "id is %d bytes, maximum %d", len(id), maxIDLength)
	}
	r.ID = id
	return nil
}

// payloadAs returns the record payload as T or ErrRecordInvalid.
func payloadAs[T Payload](r *Record, op string) (T, error) {
	var zero T
	if r == nil {
		return zero, errorf(op, ErrIllegalArgument, "nil record")
	}
	p, ok := r.Payload.(T)
	if !ok {
		return zero, errorf(op, ErrRecordInvalid, "record type %q holds %T", r.Type, r.Payload)
	}
	return p, nil
}
