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
	"math"

	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
)

// recordFlags are the message-level bits of a decoded record header.
type recordFlags struct {
	mb bool
	me bool
}

// EncodeRecord frames one record:
//
//	[flags][type length][payload length: 1 or 4 bytes][id length if IL][type][id][payload]
//
// MB and ME are left clear; the message encoder sets them.
func (c *Codec) EncodeRecord(r *Record) ([]byte, error) {
	const op = "record.encode"

	if err := validateRecord(op, r); err != nil {
		return nil, err
	}

	var payload []byte
	if r.Payload != nil {
		p, err := r.Payload.MarshalPayload(c)
		if err != nil {
			return nil, wrapOp(op, err)
		}
		payload = p
	}

	if len(payload) > c.opts.MaxPayloadSize {
		return nil, errorf(op, ErrOutOfMemory, "payload is %d bytes, limit %d", len(payload), c.opts.MaxPayloadSize)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, errorf(op, ErrIllegalArgument, "payload is %d bytes, exceeds 32-bit length field", len(payload))
	}
	if r.TNF == TNFEmpty && len(payload) != 0 {
		return nil, errorf(op, ErrIllegalArgument, "empty record carries %d payload bytes", len(payload))
	}

	short := len(payload) <= shortRecordMaxLen
	flags := byte(r.TNF) & tnfMask
	if short {
		flags |= flagSR
	}
	if r.HasID() {
		flags |= flagIL
	}

	w := wire.NewWriter(7 + len(r.Type) + len(r.ID) + len(payload))
	w.PutByte(flags)
	w.PutByte(byte(len(r.Type)))
	if short {
		w.PutByte(byte(len(payload)))
	} else {
		w.PutUint32BE(uint32(len(payload))) //nolint:gosec // bounded by the MaxUint32 check above
	}
	if r.HasID() {
		w.PutByte(byte(len(r.ID)))
	}
	w.PutBytes([]byte(r.Type))
	w.PutBytes(r.ID)
	w.PutBytes(payload)

	logger.Trace().
		Stringer("tnf", r.TNF).
		Str("type", r.Type).
		Int("payload_len", len(payload)).
		Bool("short", short).
		Msg("encoded record")

	return w.Bytes(), nil
}

func validateRecord(op string, r *Record) error {
	if r == nil {
		return errorf(op, ErrIllegalArgument, "nil record")
	}
	if r.TNF >= TNFUnchanged {
		return errorf(op, ErrIllegalArgument, "TNF %s cannot be encoded in an unchunked record", r.TNF)
	}
	if len(r.Type) > maxTypeLength {
		return errorf(op, ErrIllegalArgument, "type is %d bytes, maximum %d", len(r.Type), maxTypeLength)
	}
	if len(r.ID) > maxIDLength {
		return errorf(op, ErrIllegalArgument, "id is %d bytes, maximum %d", len(r.ID), maxIDLength)
	}
	if r.TNF == TNFEmpty {
		if r.Type != "" || len(r.ID) != 0 {
			return errorf(op, ErrIllegalArgument, "empty record must not carry type or id")
		}
		return nil
	}
	if r.Payload == nil {
		return errorf(op, ErrIllegalArgument, "record %q has no payload", r.Type)
	}
	return nil
}

// DecodeRecord decodes the record at the start of data and returns it with
// the number of bytes it occupied. The payload kind is resolved through the
// codec's registry.
func (c *Codec) DecodeRecord(data []byte) (*Record, int, error) {
	rec, _, n, err := c.decodeRecord(data)
	if err != nil {
		return nil, 0, err
	}
	return rec, n, nil
}

//nolint:gocyclo,cyclop,funlen // linear walk over the envelope fields
func (c *Codec) decodeRecord(data []byte) (*Record, recordFlags, int, error) {
	const op = "record.decode"
	var none recordFlags

	if len(data) < 3 {
		return nil, none, 0, errorf(op, ErrIllegalArgument, "record needs at least 3 bytes, got %d", len(data))
	}

	r := wire.NewReader(data)
	header, _ := r.Byte()
	typeLen, _ := r.Byte()

	if header&flagCF != 0 {
		return nil, none, 0, wrapOp(op, ErrChunkedRecord)
	}
	tnf := TNF(header & tnfMask)
	if tnf >= TNFUnchanged {
		return nil, none, 0, errorf(op, ErrIllegalArgument, "TNF %s is not valid in an unchunked record", tnf)
	}
	flags := recordFlags{mb: header&flagMB != 0, me: header&flagME != 0}
	hasID := header&flagIL != 0

	// The SR bit alone selects the width of the payload length field.
	var payloadLen uint32
	if header&flagSR != 0 {
		b, err := r.Byte()
		if err != nil {
			return nil, none, 0, truncated(op, err)
		}
		payloadLen = uint32(b)
	} else {
		v, err := r.Uint32BE()
		if err != nil {
			return nil, none, 0, truncated(op, err)
		}
		payloadLen = v
	}

	idLen := 0
	if hasID {
		b, err := r.Byte()
		if err != nil {
			return nil, none, 0, truncated(op, err)
		}
		idLen = int(b)
	}

	if uint64(payloadLen) > uint64(c.opts.MaxPayloadSize) {
		return nil, none, 0, errorf(op, ErrOutOfMemory, "payload length %d exceeds limit %d",
			payloadLen, c.opts.MaxPayloadSize)
	}

	typ, err := r.Next(int(typeLen))
	if err != nil {
		return nil, none, 0, truncated(op, err)
	}
	var id []byte
	if hasID {
		raw, nextErr := r.Next(idLen)
		if nextErr != nil {
			return nil, none, 0, truncated(op, nextErr)
		}
		id = bytes.Clone(raw)
	}
	payload, err := r.Next(int(payloadLen))
	if err != nil {
		return nil, none, 0, truncated(op, err)
	}

	if tnf == TNFEmpty && (typeLen != 0 || idLen != 0 || payloadLen != 0) {
		return nil, none, 0, errorf(op, ErrIllegalArgument, "empty record with non-zero lengths")
	}

	rec, err := c.registry.retrieve(tnf, string(typ), c.opts.Lenient)
	if err != nil {
		return nil, none, 0, wrapOp(op, err)
	}
	rec.ID = id
	if err := rec.Payload.UnmarshalPayload(c, wire.CloneOrNil(payload)); err != nil {
		return nil, none, 0, wrapOp(op, err)
	}

	logger.Trace().
		Stringer("tnf", tnf).
		Str("type", rec.Type).
		Uint32("payload_len", payloadLen).
		Int("consumed", r.Offset()).
		Msg("decoded record")

	return rec, flags, r.Offset(), nil
}
