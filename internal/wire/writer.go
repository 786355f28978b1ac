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

package wire

import "encoding/binary"

// Writer accumulates encoded bytes. Fields whose value is only known after
// later bytes are written are handled by reserving space, keeping the returned
// offset, and patching through that offset once the value is known.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with capacity for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the written bytes. The Writer must not be used afterwards.
func (w *Writer) Bytes() []byte { return w.buf }

// PutByte appends one byte.
func (w *Writer) PutByte(b byte) {
	w.buf = append(w.buf, b)
}

// PutBytes appends p.
func (w *Writer) PutBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

// PutUint32BE appends v in big-endian order.
func (w *Writer) PutUint32BE(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// PutUint16LE appends v in little-endian order.
func (w *Writer) PutUint16LE(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Reserve appends n zero bytes and returns the offset of the first one.
func (w *Writer) Reserve(n int) int {
	off := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return off
}

// PatchUint16LE overwrites the two bytes at off with v in little-endian order.
func (w *Writer) PatchUint16LE(off int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[off:off+2], v)
}

// OrByte sets the bits of mask in the byte at off.
func (w *Writer) OrByte(off int, mask byte) {
	w.buf[off] |= mask
}
