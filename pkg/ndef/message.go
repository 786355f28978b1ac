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

	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
)

// Message represents an NDEF message containing zero or more records.
type Message struct {
	Records []*Record
}

// Marshal serializes the message with the default codec.
func (m *Message) Marshal() ([]byte, error) {
	return defaultCodec.EncodeMessage(m.Records)
}

// Unmarshal parses a message from the start of data with the default codec
// and returns the number of bytes consumed.
func (m *Message) Unmarshal(data []byte) (int, error) {
	records, n, err := defaultCodec.DecodeMessagePrefix(data)
	if err != nil {
		return 0, err
	}
	m.Records = records
	return n, nil
}

// EncodeMessage frames every record in order and concatenates them. MB is
// set on the first header byte and ME on the last record's header byte once
// all records are written. No records encode as the 3-byte empty message.
func (c *Codec) EncodeMessage(records []*Record) ([]byte, error) {
	const op = "message.encode"

	if len(records) == 0 {
		return EmptyMessage(), nil
	}
	if len(records) > c.opts.MaxRecords {
		return nil, errorf(op, ErrOutOfMemory, "%d records exceeds limit %d", len(records), c.opts.MaxRecords)
	}

	w := wire.NewWriter(0)
	lastHeader := 0
	for i, rec := range records {
		data, err := c.EncodeRecord(rec)
		if err != nil {
			return nil, wrapOp(op, fmt.Errorf("record %d: %w", i, err))
		}
		lastHeader = w.Len()
		w.PutBytes(data)
	}
	w.OrByte(0, flagMB)
	w.OrByte(lastHeader, flagME)

	logger.Trace().Int("records", len(records)).Int("depth", c.depth).Int("bytes", w.Len()).Msg("encoded message")

	return w.Bytes(), nil
}

// DecodeMessage decodes a message that must span all of data.
func (c *Codec) DecodeMessage(data []byte) ([]*Record, error) {
	records, n, err := c.DecodeMessagePrefix(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, errorf("message.decode", ErrIllegalArgument, "%d trailing bytes after message end", len(data)-n)
	}
	return records, nil
}

// DecodeMessagePrefix decodes the message at the start of data and returns
// its records with the number of bytes consumed. The empty message yields no
// records. The first record must carry MB, no later record may, and decoding
// stops after the record carrying ME.
func (c *Codec) DecodeMessagePrefix(data []byte) ([]*Record, int, error) {
	const op = "message.decode"

	if len(data) == 0 {
		return nil, 0, errorf(op, ErrIllegalArgument, "no message data")
	}
	if bytes.HasPrefix(data, emptyMessage[:]) {
		return nil, len(emptyMessage), nil
	}

	var records []*Record
	off := 0
	for {
		if len(records) >= c.opts.MaxRecords {
			return nil, 0, errorf(op, ErrOutOfMemory, "message exceeds %d records", c.opts.MaxRecords)
		}

		rec, flags, n, err := c.decodeRecord(data[off:])
		if err != nil {
			return nil, 0, wrapOp(op, fmt.Errorf("record %d at offset %d: %w", len(records), off, err))
		}
		if len(records) == 0 && !flags.mb {
			return nil, 0, errorf(op, ErrIllegalArgument, "first record lacks the message-begin flag")
		}
		if len(records) > 0 && flags.mb {
			return nil, 0, errorf(op, ErrIllegalArgument, "record %d at offset %d sets message-begin", len(records), off)
		}

		records = append(records, rec)
		off += n

		if flags.me {
			break
		}
		if off >= len(data) {
			return nil, 0, errorf(op, ErrIllegalArgument, "data ends after %d records without message-end", len(records))
		}
	}

	logger.Trace().Int("records", len(records)).Int("depth", c.depth).Int("consumed", off).Msg("decoded message")

	return records, off, nil
}
