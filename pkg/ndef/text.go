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
	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
	"golang.org/x/text/encoding/unicode"
)

// Text record constants.
const (
	TextRecordType    = "T"
	textUTF16Flag     = 0x80
	textLangCodeMask  = 0x3F
	maxLanguageLength = 63 // 6 bits max
	defaultLanguage   = "en"
)

// TextPayload is the body of a Text record. It is not a built-in type;
// call RegisterText to decode Text records with a registry.
type TextPayload struct {
	Language string
	Text     string
	UTF16    bool // true if UTF-16 encoded (rare)
}

// RegisterText adds the Text record type to reg.
func RegisterText(reg *Registry) error {
	return reg.Register(TextRecordType, func() Payload { return &TextPayload{} })
}

// NewTextRecord creates a UTF-8 Text record.
// The language parameter should be an IANA language code (e.g., "en", "en-US");
// empty selects "en".
func NewTextRecord(text, language string) (*Record, error) {
	if language == "" {
		language = defaultLanguage
	}
	if len(language) > maxLanguageLength {
		return nil, errorf("text.new", ErrIllegalArgument, "language code is %d bytes, maximum %d",
			len(language), maxLanguageLength)
	}
	return &Record{
		TNF:     TNFWellKnown,
		Type:    TextRecordType,
		Payload: &TextPayload{Text: text, Language: language},
	}, nil
}

// MarshalPayload encodes [status][language][text]. The status byte carries
// the UTF-16 flag and the language code length. UTF-16 text is written big
// endian without a byte order mark.
func (p *TextPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	const op = "text.encode"

	if len(p.Language) > maxLanguageLength {
		return nil, errorf(op, ErrIllegalArgument, "language code is %d bytes, maximum %d",
			len(p.Language), maxLanguageLength)
	}

	body := []byte(p.Text)
	status := byte(len(p.Language))
	if p.UTF16 {
		status |= textUTF16Flag
		enc, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes(body)
		if err != nil {
			return nil, errorf(op, ErrIllegalArgument, "encode UTF-16: %v", err)
		}
		body = enc
	}

	w := wire.NewWriter(1 + len(p.Language) + len(body))
	w.PutByte(status)
	w.PutBytes([]byte(p.Language))
	w.PutBytes(body)
	return w.Bytes(), nil
}

// UnmarshalPayload decodes the status byte, language and text. UTF-16 text
// honours a leading byte order mark and defaults to big endian.
func (p *TextPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	const op = "text.decode"

	r := wire.NewReader(data)
	status, err := r.Byte()
	if err != nil {
		return truncated(op, err)
	}
	lang, err := r.Next(int(status & textLangCodeMask))
	if err != nil {
		return truncated(op, err)
	}

	isUTF16 := status&textUTF16Flag != 0
	text := r.Rest()
	if isUTF16 {
		dec, decErr := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(text)
		if decErr != nil {
			return errorf(op, ErrIllegalArgument, "decode UTF-16: %v", decErr)
		}
		text = dec
	}

	p.Language = string(lang)
	p.Text = string(text)
	p.UTF16 = isUTF16
	return nil
}

// AsText returns the record's Text payload.
func (r *Record) AsText() (*TextPayload, error) {
	return payloadAs[*TextPayload](r, "record.text")
}
