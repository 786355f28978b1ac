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

// Default codec limits.
const (
	DefaultMaxNestingDepth = 4       // Handover Select inside a message is depth 1
	DefaultMaxRecords      = 255     // Maximum records per message
	DefaultMaxPayloadSize  = 1 << 20 // Maximum payload size per record (1 MiB)
)

// Options configures a Codec. Zero fields take the package defaults.
type Options struct {
	// Registry resolves record types on decode. Nil selects DefaultRegistry.
	Registry *Registry
	// MaxNestingDepth bounds recursion through composite records.
	MaxNestingDepth int
	// MaxRecords bounds the number of records in one message.
	MaxRecords int
	// MaxPayloadSize bounds the payload length of one record.
	MaxPayloadSize int
	// Lenient decodes records of unregistered types into RawPayload instead
	// of failing with ErrRecordUnsupported.
	Lenient bool
}

// Codec encodes and decodes records and messages. A Codec is immutable and
// safe for concurrent use; the registry it points to is internally locked.
type Codec struct {
	registry *Registry
	opts     Options
	depth    int
}

// NewCodec returns a Codec for opts.
func NewCodec(opts Options) *Codec {
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry
	}
	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = DefaultMaxRecords
	}
	if opts.MaxPayloadSize <= 0 {
		opts.MaxPayloadSize = DefaultMaxPayloadSize
	}
	return &Codec{registry: opts.Registry, opts: opts}
}

var defaultCodec = NewCodec(Options{})

// DefaultCodec returns the codec used by the package-level functions. It is
// bound to DefaultRegistry with default limits.
func DefaultCodec() *Codec { return defaultCodec }

// Registry returns the registry the codec resolves types with.
func (c *Codec) Registry() *Registry { return c.registry }

// Options returns the effective options.
func (c *Codec) Options() Options { return c.opts }

// Depth returns how many composite records enclose the message this codec
// is working on. The top-level message is depth 0.
func (c *Codec) Depth() int { return c.depth }

// Nested returns a codec one level deeper, for payloads that embed a message.
// It fails once MaxNestingDepth would be exceeded.
func (c *Codec) Nested(op string) (*Codec, error) {
	if c.depth+1 > c.opts.MaxNestingDepth {
		return nil, errorf(op, ErrIllegalArgument, "nesting depth %d exceeds limit %d",
			c.depth+1, c.opts.MaxNestingDepth)
	}
	nc := *c
	nc.depth++
	return &nc, nil
}

// EncodeMessage encodes records with the default codec.
func EncodeMessage(records []*Record) ([]byte, error) {
	return defaultCodec.EncodeMessage(records)
}

// DecodeMessage decodes a complete message with the default codec.
func DecodeMessage(data []byte) ([]*Record, error) {
	return defaultCodec.DecodeMessage(data)
}

// EncodeRecord frames one record with the default codec.
func EncodeRecord(r *Record) ([]byte, error) {
	return defaultCodec.EncodeRecord(r)
}

// DecodeRecord decodes one record with the default codec and returns the
// number of bytes it occupied.
func DecodeRecord(data []byte) (*Record, int, error) {
	return defaultCodec.DecodeRecord(data)
}
