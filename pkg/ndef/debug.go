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
	"os"

	"github.com/rs/zerolog"
)

// logger receives codec tracing. It discards everything unless NDEF_DEBUG is
// set or SetLogger installs another logger.
var logger = zerolog.Nop()

func init() {
	if os.Getenv("NDEF_DEBUG") != "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Str("component", "ndef").Logger()
	}
}

// SetLogger replaces the package logger. Call it before using the codec from
// multiple goroutines.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}
