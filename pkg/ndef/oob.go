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
	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
)

// maxOOBFieldData is the largest data part of one EIR/AD structure: the
// length byte counts the type byte too.
const maxOOBFieldData = 254

// OOBField is one Bluetooth out-of-band data structure, an EIR entry for
// BR/EDR or an AD structure for LE. Both are encoded as
// [length][type][length-1 data bytes].
type OOBField struct {
	Data []byte
	Type byte
}

func putOOBField(w *wire.Writer, op string, f OOBField) error {
	if len(f.Data) > maxOOBFieldData {
		return errorf(op, ErrIllegalArgument, "field 0x%02X carries %d bytes, maximum %d",
			f.Type, len(f.Data), maxOOBFieldData)
	}
	w.PutByte(byte(len(f.Data) + 1))
	w.PutByte(f.Type)
	w.PutBytes(f.Data)
	return nil
}

// putOptionalField writes a named field unless it is nil. A non-nil empty
// slice is written as a structure with a length byte of 1.
func putOptionalField(w *wire.Writer, op string, typ byte, data []byte) error {
	if data == nil {
		return nil
	}
	return putOOBField(w, op, OOBField{Type: typ, Data: data})
}

// readOOBField reads one structure. A zero length byte marks the end of the
// significant part and is reported with end set.
func readOOBField(r *wire.Reader) (f OOBField, end bool, err error) {
	length, err := r.Byte()
	if err != nil {
		return OOBField{}, false, err
	}
	if length == 0 {
		return OOBField{}, true, nil
	}
	typ, err := r.Byte()
	if err != nil {
		return OOBField{}, false, err
	}
	data, err := r.Copy(int(length) - 1)
	if err != nil {
		return OOBField{}, false, err
	}
	return OOBField{Type: typ, Data: data}, false, nil
}

// presentData returns data, or an empty non-nil slice when the structure
// carried no data bytes, so named fields keep their presence.
func presentData(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}
