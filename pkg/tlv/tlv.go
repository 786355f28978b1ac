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


// Package tlv locates NDEF messages inside the TLV blocks of an NFC Forum
// Type 2 tag data area and wraps messages for writing.
package tlv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// TLV types per NFC Forum Type 2 Tag specification.
const (
	TypeNull          byte = 0x00 // Padding byte, no length field
	TypeLockControl   byte = 0x01 // Lock bit positions
	TypeMemoryControl byte = 0x02 // Reserved memory areas
	TypeNDEF          byte = 0x03 // NDEF message
	TypeProprietary   byte = 0xFD // Highest proprietary type
	TypeTerminator    byte = 0xFE // End of data area, no length field
)

const (
	longLengthMarker = 0xFF
	maxShortLength   = 0xFE
	maxLongLength    = 0xFFFE
)

// TLV errors.
var (
	ErrDataTooShort   = errors.New("tlv: data too short")
	ErrInvalidLength  = errors.New("tlv: invalid length")
	ErrNDEFNotFound   = errors.New("tlv: NDEF TLV not found")
	ErrMessageTooLong = errors.New("tlv: message too long")
)

// Block is one TLV found in a data area.
type Block struct {
	// Offset is where the type byte sits.
	Offset int
	// ValueOffset is where the value starts, after the type and length bytes.
	ValueOffset int
	// Length is the value length in bytes.
	Length int
	Type   byte
}

// HeaderSize is the number of bytes before the value: 1 for NULL and
// Terminator, 2 for the short length form, 4 for the long form.
func (b Block) HeaderSize() int { return b.ValueOffset - b.Offset }

// End returns the offset just past the block.
func (b Block) End() int { return b.ValueOffset + b.Length }

// Location is the position of an NDEF message inside a data area.
type Location struct {
	// Offset is the byte offset where the NDEF message starts.
	Offset int
	// Length is the length of the NDEF message in bytes.
	Length int
	// HeaderSize is 2 for the short length form, 4 for the long form.
	HeaderSize int
}

// Blocks walks the data area until the Terminator TLV or the end of data.
// The Terminator is included in the result. Types outside the defined and
// proprietary ranges are reported as single-byte blocks.
func Blocks(data []byte) ([]Block, error) {
	var blocks []Block
	off := 0
	for off < len(data) {
		b, err := readBlock(data, off)
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, b)
		if b.Type == TypeTerminator {
			break
		}
		off = b.End()
	}
	return blocks, nil
}

func readBlock(data []byte, off int) (Block, error) {
	typ := data[off]
	if typ == TypeNull || typ == TypeTerminator || typ > TypeTerminator {
		return Block{Type: typ, Offset: off, ValueOffset: off + 1}, nil
	}

	if off+1 >= len(data) {
		return Block{}, fmt.Errorf("%w: no length for type 0x%02X at offset %d", ErrDataTooShort, typ, off)
	}
	if data[off+1] != longLengthMarker {
		return Block{Type: typ, Offset: off, ValueOffset: off + 2, Length: int(data[off+1])}, nil
	}
	if off+3 >= len(data) {
		return Block{}, fmt.Errorf("%w: incomplete long length at offset %d", ErrInvalidLength, off)
	}
	return Block{
		Type:        typ,
		Offset:      off,
		ValueOffset: off + 4,
		Length:      int(binary.BigEndian.Uint16(data[off+2 : off+4])),
	}, nil
}

// Scan finds the first NDEF Message TLV, skipping NULL, Lock Control,
// Memory Control and proprietary TLVs.
func Scan(data []byte) (*Location, error) {
	if len(data) < 2 {
		return nil, ErrDataTooShort
	}

	blocks, err := Blocks(data)
	for _, b := range blocks {
		if b.Type == TypeNDEF {
			return &Location{Offset: b.ValueOffset, Length: b.Length, HeaderSize: b.HeaderSize()}, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrNDEFNotFound
}

// Extract returns the NDEF message bytes from a data area. The result
// aliases data.
func Extract(data []byte) ([]byte, error) {
	loc, err := Scan(data)
	if err != nil {
		return nil, err
	}
	if loc.Offset+loc.Length > len(data) {
		return nil, fmt.Errorf("%w: NDEF length %d exceeds data size %d",
			ErrInvalidLength, loc.Length, len(data)-loc.Offset)
	}
	return data[loc.Offset : loc.Offset+loc.Length], nil
}

// Wrap encloses an encoded NDEF message in an NDEF TLV followed by a
// Terminator TLV, using the 3-byte length form above 254 bytes.
func Wrap(msg []byte) ([]byte, error) {
	if len(msg) > maxLongLength {
		return nil, fmt.Errorf("%w: %d bytes, maximum %d", ErrMessageTooLong, len(msg), maxLongLength)
	}

	out := make([]byte, 0, len(msg)+5)
	out = append(out, TypeNDEF)
	if len(msg) <= maxShortLength {
		out = append(out, byte(len(msg)))
	} else {
		out = append(out, longLengthMarker)
		out = binary.BigEndian.AppendUint16(out, uint16(len(msg))) //nolint:gosec // bounded above
	}
	out = append(out, msg...)
	return append(out, TypeTerminator), nil
}

// Describe returns one line per TLV block, for debugging tag contents.
func Describe(data []byte) string {
	if len(data) == 0 {
		return "empty data"
	}

	blocks, err := Blocks(data)
	var sb strings.Builder
	for _, b := range blocks {
		fmt.Fprintf(&sb, "[%d] %s", b.Offset, typeName(b.Type))
		if b.HeaderSize() > 1 {
			fmt.Fprintf(&sb, " len=%d", b.Length)
		}
		sb.WriteByte('\n')
	}
	if err != nil {
		fmt.Fprintf(&sb, "parse error: %v\n", err)
	}
	return sb.String()
}

func typeName(t byte) string {
	switch {
	case t == TypeNull:
		return "NULL"
	case t == TypeLockControl:
		return "LOCK_CONTROL"
	case t == TypeMemoryControl:
		return "MEMORY_CONTROL"
	case t == TypeNDEF:
		return "NDEF"
	case t == TypeTerminator:
		return "TERMINATOR"
	case t <= TypeProprietary:
		return fmt.Sprintf("PROPRIETARY(0x%02X)", t)
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", t)
	}
}
