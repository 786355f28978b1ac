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
	"bytes"
	"fmt"
)

// HandoverSelectRecordType is the well-known type of a Handover Select record.
const HandoverSelectRecordType = "Hs"

// Connection handover version written by NewHandoverSelectRecord.
const (
	HandoverMajorVersion byte = 1
	HandoverMinorVersion byte = 3
)

const maxVersionNibble = 0x0F

// HandoverSelectPayload is the body of a Handover Select record. Its local
// records are the Alternative Carrier records followed by an optional Error
// record, encoded as a nested NDEF message.
type HandoverSelectPayload struct {
	Error               *Record
	AlternativeCarriers []*Record
	MajorVersion        byte
	MinorVersion        byte
}

// NewHandoverSelectRecord creates a Handover Select record at version 1.3.
func NewHandoverSelectRecord(carriers ...*Record) (*Record, error) {
	p := &HandoverSelectPayload{MajorVersion: HandoverMajorVersion, MinorVersion: HandoverMinorVersion}
	for _, ac := range carriers {
		if err := p.AddAlternativeCarrier(ac); err != nil {
			return nil, err
		}
	}
	return &Record{TNF: TNFWellKnown, Type: HandoverSelectRecordType, Payload: p}, nil
}

// AddAlternativeCarrier appends an Alternative Carrier record.
func (p *HandoverSelectPayload) AddAlternativeCarrier(ac *Record) error {
	if _, err := ac.AsAlternativeCarrier(); err != nil {
		return wrapOp("hs.add_ac", err)
	}
	p.AlternativeCarriers = append(p.AlternativeCarriers, ac)
	return nil
}

// SetError sets the Error record. Pass nil to remove it.
func (p *HandoverSelectPayload) SetError(rec *Record) error {
	if rec != nil {
		if _, err := rec.AsError(); err != nil {
			return wrapOp("hs.set_error", err)
		}
	}
	p.Error = rec
	return nil
}

// LocalRecords returns the records of the nested message in encode order.
func (p *HandoverSelectPayload) LocalRecords() []*Record {
	records := make([]*Record, 0, len(p.AlternativeCarriers)+1)
	records = append(records, p.AlternativeCarriers...)
	if p.Error != nil {
		records = append(records, p.Error)
	}
	return records
}

// MarshalPayload encodes the version byte followed by the local records as a
// nested message one nesting level deeper than c. With no local records the
// nested message is the empty message, D0 00 00.
func (p *HandoverSelectPayload) MarshalPayload(c *Codec) ([]byte, error) {
	const op = "hs.encode"

	if p.MajorVersion > maxVersionNibble || p.MinorVersion > maxVersionNibble {
		return nil, errorf(op, ErrIllegalArgument, "version %d.%d does not fit in nibbles",
			p.MajorVersion, p.MinorVersion)
	}
	version := p.MajorVersion<<4 | p.MinorVersion

	nested, err := c.Nested(op)
	if err != nil {
		return nil, err
	}
	msg, err := nested.EncodeMessage(p.LocalRecords())
	if err != nil {
		return nil, wrapOp(op, err)
	}

	out := make([]byte, 0, 1+len(msg))
	out = append(out, version)
	return append(out, msg...), nil
}

// UnmarshalPayload splits the version nibbles and decodes the remainder as a
// nested message. A bare version byte is accepted as having no local records. Alternative Carrier records are collected in order and at
// most one Error record is accepted; other local records are skipped.
func (p *HandoverSelectPayload) UnmarshalPayload(c *Codec, data []byte) error {
	const op = "hs.decode"

	if len(data) < 1 {
		return errorf(op, ErrIllegalArgument, "payload too short")
	}
	out := HandoverSelectPayload{MajorVersion: data[0] >> 4, MinorVersion: data[0] & maxVersionNibble}

	rest := data[1:]
	if len(rest) == 0 || bytes.Equal(rest, emptyMessage[:]) {
		*p = out
		return nil
	}

	nested, err := c.Nested(op)
	if err != nil {
		return err
	}
	records, err := nested.DecodeMessage(rest)
	if err != nil {
		return wrapOp(op, err)
	}

	for i, rec := range records {
		switch rec.Payload.(type) {
		case *AlternativeCarrierPayload:
			out.AlternativeCarriers = append(out.AlternativeCarriers, rec)
		case *ErrorPayload:
			if out.Error != nil {
				return errorf(op, ErrRecordInvalid, "second error record at local record %d", i)
			}
			out.Error = rec
		default:
			logger.Trace().
				Int("index", i).
				Stringer("tnf", rec.TNF).
				Str("type", rec.Type).
				Msg("skipping unexpected handover select local record")
		}
	}

	*p = out
	return nil
}

// Version returns the version as "major.minor".
func (p *HandoverSelectPayload) Version() string {
	return fmt.Sprintf("%d.%d", p.MajorVersion, p.MinorVersion)
}

// CarrierConfiguration finds the record in records whose id equals the
// carrier data reference of ac. In a handover select message those are the
// records following the Handover Select record.
func CarrierConfiguration(ac *AlternativeCarrierPayload, records []*Record) (*Record, error) {
	const op = "hs.carrier_configuration"

	if ac == nil {
		return nil, errorf(op, ErrIllegalArgument, "nil alternative carrier")
	}
	for _, rec := range records {
		if rec != nil && rec.HasID() && bytes.Equal(rec.ID, ac.CarrierDataReference) {
			return rec, nil
		}
	}
	return nil, errorf(op, ErrIllegalArgument, "no record with id %q", ac.CarrierDataReference)
}

// AsHandoverSelect returns the record's Handover Select payload.
func (r *Record) AsHandoverSelect() (*HandoverSelectPayload, error) {
	return payloadAs[*HandoverSelectPayload](r, "record.handover_select")
}
