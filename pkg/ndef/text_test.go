// Copyright 2025 The Zaparoo Project Contributors.
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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textCodec(t *testing.T) *Codec {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, RegisterText(reg))
	return NewCodec(Options{Registry: reg})
}

func TestNewTextRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		language string
		wantLang string
	}{
		{name: "english", text: "Hello", language: "en", wantLang: "en"},
		{name: "default language", text: "Hello", language: "", wantLang: "en"},
		{name: "regional language", text: "Bonjour", language: "fr-CA", wantLang: "fr-CA"},
		{name: "unicode", text: "こんにちは", language: "ja", wantLang: "ja"},
		{name: "empty text", text: "", language: "en", wantLang: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := NewTextRecord(tt.text, tt.language)
			require.NoError(t, err)
			assert.Equal(t, TNFWellKnown, rec.TNF)
			assert.Equal(t, TextRecordType, rec.Type)

			c := textCodec(t)
			data, err := c.EncodeMessage([]*Record{rec})
			require.NoError(t, err)

			records, err := c.DecodeMessage(data)
			require.NoError(t, err)
			require.Len(t, records, 1)

			text, err := records[0].AsText()
			require.NoError(t, err)
			assert.Equal(t, tt.text, text.Text)
			assert.Equal(t, tt.wantLang, text.Language)
			assert.False(t, text.UTF16)
		})
	}
}

func TestTextPayloadLayout(t *testing.T) {
	t.Parallel()

	p := &TextPayload{Language: "en", Text: "Hi"}
	data, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 'e', 'n', 'H', 'i'}, data)
}

func TestTextUTF16(t *testing.T) {
	t.Parallel()

	p := &TextPayload{Language: "de", Text: "Grüße", UTF16: true}
	data, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x82, 'd', 'e',
		0x00, 'G', 0x00, 'r', 0x00, 0xFC, 0x00, 0xDF, 0x00, 'e',
	}, data)

	var decoded TextPayload
	require.NoError(t, decoded.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, *p, decoded)

	// A little-endian byte order mark is honoured.
	var le TextPayload
	require.NoError(t, le.UnmarshalPayload(DefaultCodec(), []byte{0x80, 0xFF, 0xFE, 'H', 0x00, 'i', 0x00}))
	assert.Equal(t, "Hi", le.Text)
	assert.Empty(t, le.Language)
}

func TestTextErrors(t *testing.T) {
	t.Parallel()

	_, err := NewTextRecord("x", strings.Repeat("l", 64))
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = (&TextPayload{Language: strings.Repeat("l", 64)}).MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)

	var p TextPayload
	require.ErrorIs(t, p.UnmarshalPayload(DefaultCodec(), nil), ErrIllegalArgument)
	require.ErrorIs(t, p.UnmarshalPayload(DefaultCodec(), []byte{0x05, 'e', 'n'}), ErrIllegalArgument)
}

func TestTextNotBuiltin(t *testing.T) {
	t.Parallel()

	_, err := DecodeMessage([]byte{0xD1, 0x01, 0x03, 'T', 0x00, 'h', 'i'})
	require.ErrorIs(t, err, ErrRecordUnsupported)

	reg := NewRegistry()
	require.NoError(t, RegisterText(reg))
	require.ErrorIs(t, RegisterText(reg), ErrAlreadyRegistered)
}
