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
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrIllegalArgument reports nil, malformed or truncated input.
	ErrIllegalArgument = errors.New("ndef: illegal argument")
	// ErrOutOfMemory reports a size that exceeds the codec's allocation limits.
	ErrOutOfMemory = errors.New("ndef: allocation limit exceeded")
	// ErrRecordInvalid reports a record whose payload kind does not fit the operation.
	ErrRecordInvalid = errors.New("ndef: record kind mismatch")
	// ErrRecordUnsupported reports a record type with no registered payload.
	ErrRecordUnsupported = errors.New("ndef: record type not supported")
	// ErrAlreadyRegistered reports a duplicate registry entry.
	ErrAlreadyRegistered = errors.New("ndef: record type already registered")
	// ErrIdentifierInvalid reports a URI prefix missing from the prefix table.
	ErrIdentifierInvalid = errors.New("ndef: URI identifier not in prefix table")
	// ErrIdentifierCodeInvalid reports a URI identifier code outside the prefix table.
	ErrIdentifierCodeInvalid = errors.New("ndef: URI identifier code out of range")
	// ErrInvalidState reports a required field that has not been set.
	ErrInvalidState = errors.New("ndef: required field not set")
	// ErrHandlersNotDefined reports missing certificate encode/decode callbacks.
	ErrHandlersNotDefined = errors.New("ndef: certificate handlers not defined")
	// ErrChunkedRecord reports a record with the chunk flag set.
	ErrChunkedRecord = errors.New("ndef: chunked records not supported")
)

// Error attaches the failing operation to an error kind.
type Error struct {
	Err error  // Underlying error, wraps one of the kinds above
	Op  string // Operation that failed, e.g. "uri.decode"
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf builds an *Error of the given kind with a formatted detail.
func errorf(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}

// wrapOp adds op context to an error returned by a callee.
func wrapOp(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// truncated maps a wire read failure onto ErrIllegalArgument.
func truncated(op string, err error) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrIllegalArgument, err)}
}
