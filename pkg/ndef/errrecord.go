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
	"fmt"

	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
)

// ErrorRecordType is the well-known type of a Handover Error record.
const ErrorRecordType = "err"

// ErrorReason is the reason byte of an Error record.
type ErrorReason byte

// Error reasons defined for connection handover.
const (
	ErrorReasonTemporaryMemory ErrorReason = 0x01 // Data is the retry delay in ms
	ErrorReasonPermanentMemory ErrorReason = 0x02 // Data is the max acceptable message size
	ErrorReasonCarrier         ErrorReason = 0x03 // Data is the retry delay in ms
)

func (r ErrorReason) String() string {
	switch r {
	case ErrorReasonTemporaryMemory:
		return "temporary-memory"
	case ErrorReasonPermanentMemory:
		return "permanent-memory"
	case ErrorReasonCarrier:
		return "carrier"
	default:
		return fmt.Sprintf("ErrorReason(0x%02X)", byte(r))
	}
}

// ErrorPayload is the body of an Error record.
type ErrorPayload struct {
	Data   []byte
	Reason ErrorReason
}

// NewErrorRecord creates an Error record.
func NewErrorRecord(reason ErrorReason, data []byte) *Record {
	return &Record{
		TNF:     TNFWellKnown,
		Type:    ErrorRecordType,
		Payload: &ErrorPayload{Reason: reason, Data: data},
	}
}

// MarshalPayload encodes [reason][data].
func (p *ErrorPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	w := wire.NewWriter(1 + len(p.Data))
	w.PutByte(byte(p.Reason))
	w.PutBytes(p.Data)
	return w.Bytes(), nil
}

// UnmarshalPayload splits the reason from the data. An empty remainder
// leaves Data nil.
func (p *ErrorPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	if len(data) < 1 {
		return errorf("err.decode", ErrIllegalArgument, "payload too short")
	}
	p.Reason = ErrorReason(data[0])
	p.Data = wire.CloneOrNil(data[1:])
	return nil
}

// AsError returns the record's Error payload.
func (r *Record) AsError() (*ErrorPayload, error) {
	return payloadAs[*ErrorPayload](r, "record.error")
}
