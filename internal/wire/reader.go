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

// Package wire holds the byte-level primitives shared by the record codecs:
// a bounds-checked read cursor and an append-only writer that can patch
// previously reserved bytes by offset.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a read asks for more bytes than remain.
var ErrShortBuffer = errors.New("wire: short buffer")

// Reader is a forward-only cursor over a byte slice. Every read checks the
// requested length against what remains before slicing.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Byte reads one byte.
func (r *Reader) Byte() (byte, error) {
	if r.Len() < 1 {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrShortBuffer, r.off)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// Next returns a view of the next n bytes and advances past them.
// The returned slice aliases the input; use Copy when the bytes must outlive it.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, r.off, r.Len())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Copy reads n bytes into a freshly allocated slice. A zero n yields nil.
func (r *Reader) Copy(n int) ([]byte, error) {
	b, err := r.Next(n)
	if err != nil {
		return nil, err
	}
	return CloneOrNil(b), nil
}

// Uint16LE reads a little-endian uint16.
func (r *Reader) Uint16LE() (uint16, error) {
	b, err := r.Next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32BE reads a big-endian uint32.
func (r *Reader) Uint32BE() (uint32, error) {
	b, err := r.Next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Rest returns a view of everything unread and moves the cursor to the end.
func (r *Reader) Rest() []byte {
	b := r.buf[r.off:]
	r.off = len(r.buf)
	return b
}

// CloneOrNil copies b, mapping an empty input to nil.
func CloneOrNil(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
