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

// Command ndefdump decodes an NDEF message and prints its records as a tree.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaparooProject/go-ndefrtd/internal/config"
	"github.com/ZaparooProject/go-ndefrtd/pkg/brandprotection"
	"github.com/ZaparooProject/go-ndefrtd/pkg/ndef"
	"github.com/ZaparooProject/go-ndefrtd/pkg/tlv"
	"github.com/rs/zerolog"
)

type options struct {
	hexInput   string
	file       string
	configPath string
	tlv        bool
	debug      bool
}

var errNoInput = errors.New("one of -hex or -file is required")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("ndefdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.hexInput, "hex", "", "NDEF message as hex (spaces and colons ignored)")
	fs.StringVar(&opts.file, "file", "", "File holding the raw message, - for stdin")
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.BoolVar(&opts.tlv, "tlv", false, "Input is tag memory; extract the message from its TLV blocks")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug output")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if (opts.hexInput == "") == (opts.file == "") {
		return nil, errNoInput
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	level, err := cfg.LogLevel()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	ndef.SetLogger(logger)

	if err := dump(opts, cfg, stdin, stdout, logger); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func dump(opts *options, cfg config.Config, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	data, err := readInput(opts, stdin)
	if err != nil {
		return err
	}

	if opts.tlv {
		logger.Debug().Msg("TLV layout:\n" + tlv.Describe(data))
		data, err = tlv.Extract(data)
		if err != nil {
			return fmt.Errorf("failed to extract NDEF TLV: %w", err)
		}
	}

	reg := ndef.NewRegistry()
	if err := ndef.RegisterText(reg); err != nil {
		return fmt.Errorf("failed to register text type: %w", err)
	}
	if err := brandprotection.Register(reg, brandprotection.DERHandlers()); err != nil {
		return fmt.Errorf("failed to register brand protection type: %w", err)
	}

	codec := ndef.NewCodec(cfg.Options(reg))
	records, err := codec.DecodeMessage(data)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	logger.Debug().Int("bytes", len(data)).Int("records", len(records)).Msg("decoded message")

	if len(records) == 0 {
		_, _ = fmt.Fprintln(stdout, "empty message")
		return nil
	}
	printRecords(stdout, records, 0)
	return nil
}

func readInput(opts *options, stdin io.Reader) ([]byte, error) {
	if opts.hexInput != "" {
		clean := strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(opts.hexInput)
		data, err := hex.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("failed to decode hex input: %w", err)
		}
		return data, nil
	}

	if opts.file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
