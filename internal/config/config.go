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

// Package config loads codec and logging settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/go-ndefrtd/pkg/ndef"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Codec holds the decoder limits.
type Codec struct {
	MaxNestingDepth int  `toml:"max_nesting_depth" validate:"min=1,max=16"`
	MaxRecords      int  `toml:"max_records" validate:"min=1,max=65535"`
	MaxPayloadSize  int  `toml:"max_payload_size" validate:"min=1"`
	Lenient         bool `toml:"lenient"`
}

// Logging holds the log settings.
type Logging struct {
	Level string `toml:"level" validate:"oneof=trace debug info warn error disabled"`
}

// Config is the root of a configuration file.
type Config struct {
	Logging Logging `toml:"logging"`
	Codec   Codec   `toml:"codec"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Codec: Codec{
			MaxNestingDepth: ndef.DefaultMaxNestingDepth,
			MaxRecords:      ndef.DefaultMaxRecords,
			MaxPayloadSize:  ndef.DefaultMaxPayloadSize,
		},
		Logging: Logging{Level: "info"},
	}
}

// Parse reads TOML on top of the defaults and validates the result. Keys
// missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, f.Namespace(), f.Tag(), f.Value())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Options builds codec options that resolve types with reg.
func (c Config) Options(reg *ndef.Registry) ndef.Options {
	return ndef.Options{
		Registry:        reg,
		MaxNestingDepth: c.Codec.MaxNestingDepth,
		MaxRecords:      c.Codec.MaxRecords,
		MaxPayloadSize:  c.Codec.MaxPayloadSize,
		Lenient:         c.Codec.Lenient,
	}
}

// LogLevel returns the zerolog level named by Logging.Level.
func (c Config) LogLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return lvl, nil
}
