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

	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
)

// URIRecordType is the well-known type of a URI record.
const URIRecordType = "U"

// uriPrefixes is the identifier code table from the NFC Forum URI RTD.
// Index 0 means no prefix (raw URI).
var uriPrefixes = [...]string{
	"",                           // 0x00 - No prepending
	"http://www.",                // 0x01
	"https://www.",               // 0x02
	"http://",                    // 0x03
	"https://",                   // 0x04
	"tel:",                       // 0x05
	"mailto:",                    // 0x06
	"ftp://anonymous:anonymous@", // 0x07
	"ftp://ftp.",                 // 0x08
	"ftps://",                    // 0x09
	"sftp://",                    // 0x0A
	"smb://",                     // 0x0B
	"nfs://",                     // 0x0C
	"ftp://",                     // 0x0D
	"dav://",                     // 0x0E
	"news:",                      // 0x0F
	"telnet://",                  // 0x10
	"imap:",                      // 0x11
	"rtsp://",                    // 0x12
	"urn:",                       // 0x13
	"pop:",                       // 0x14
	"sip:",                       // 0x15
	"sips:",                      // 0x16
	"tftp:",                      // 0x17
	"btspp://",                   // 0x18
	"btl2cap://",                 // 0x19
	"btgoep://",                  // 0x1A
	"tcpobex://",                 // 0x1B
	"irdaobex://",                // 0x1C
	"file://",                    // 0x1D
	"urn:epc:id:",                // 0x1E
	"urn:epc:tag:",               // 0x1F
	"urn:epc:pat:",               // 0x20
	"urn:epc:raw:",               // 0x21
	"urn:epc:",                   // 0x22
	"urn:nfc:",                   // 0x23
}

// URIIdentifierCodeCount is the number of defined identifier codes.
const URIIdentifierCodeCount = len(uriPrefixes)

// URIPrefix returns the prefix string for an identifier code.
func URIPrefix(code byte) (string, error) {
	if int(code) >= len(uriPrefixes) {
		return "", errorf("uri.get_identifier", ErrIdentifierCodeInvalid, "code 0x%02X", code)
	}
	return uriPrefixes[code], nil
}

// URIIdentifierCode returns the identifier code whose prefix equals prefix
// byte for byte. Partial and prefix matches do not count.
func URIIdentifierCode(prefix string) (byte, error) {
	for i, p := range uriPrefixes {
		if p == prefix {
			return byte(i), nil
		}
	}
	return 0, errorf("uri.set_identifier", ErrIdentifierInvalid, "prefix %q", prefix)
}

// URIPayload is the body of a URI record: an identifier code standing for a
// well-known prefix, and the rest of the URI.
type URIPayload struct {
	Value          []byte
	IdentifierCode byte
}

// NewURIRecord creates a URI record from an identifier code and the URI
// remainder after the prefix.
func NewURIRecord(code byte, value []byte) (*Record, error) {
	p := &URIPayload{Value: value}
	if err := p.SetIdentifierCode(code); err != nil {
		return nil, err
	}
	return &Record{TNF: TNFWellKnown, Type: URIRecordType, Payload: p}, nil
}

// NewURIRecordFromString creates a URI record for a full URI, compressing it
// with the longest matching prefix from the identifier table.
func NewURIRecordFromString(uri string) *Record {
	bestMatch := 0
	bestLen := 0
	for i := len(uriPrefixes) - 1; i >= 1; i-- {
		prefix := uriPrefixes[i]
		if strings.HasPrefix(uri, prefix) && len(prefix) > bestLen {
			bestMatch = i
			bestLen = len(prefix)
		}
	}
	return &Record{
		TNF:  TNFWellKnown,
		Type: URIRecordType,
		Payload: &URIPayload{
			IdentifierCode: byte(bestMatch),
			Value:          wire.CloneOrNil([]byte(uri[bestLen:])),
		},
	}
}

// MarshalPayload encodes [identifier code][value].
func (p *URIPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	out := make([]byte, 1+len(p.Value))
	out[0] = p.IdentifierCode
	copy(out[1:], p.Value)
	return out, nil
}

// UnmarshalPayload splits the identifier code from the value. The code is
// kept even if it is outside the table; Identifier reports that later.
func (p *URIPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	if len(data) < 1 {
		return errorf("uri.decode", ErrIllegalArgument, "payload too short")
	}
	p.IdentifierCode = data[0]
	p.Value = wire.CloneOrNil(data[1:])
	return nil
}

// SetIdentifier sets the identifier code from an exact prefix string.
func (p *URIPayload) SetIdentifier(prefix string) error {
	code, err := URIIdentifierCode(prefix)
	if err != nil {
		return err
	}
	p.IdentifierCode = code
	return nil
}

// SetIdentifierCode sets the identifier code, rejecting codes outside the table.
func (p *URIPayload) SetIdentifierCode(code byte) error {
	if int(code) >= len(uriPrefixes) {
		return errorf("uri.set_identifier_code", ErrIdentifierCodeInvalid, "code 0x%02X", code)
	}
	p.IdentifierCode = code
	return nil
}

// Identifier returns the prefix for the stored identifier code.
func (p *URIPayload) Identifier() (string, error) {
	return URIPrefix(p.IdentifierCode)
}

// URIWithIdentifier returns prefix + value. An identifier code outside the
// table contributes an empty prefix; the value is still returned.
func (p *URIPayload) URIWithIdentifier() string {
	prefix, err := p.Identifier()
	if err != nil {
		logger.Debug().Uint8("code", p.IdentifierCode).Msg("URI identifier code out of range, using empty prefix")
		prefix = ""
	}
	return prefix + string(p.Value)
}

// AsURI returns the record's URI payload.
func (r *Record) AsURI() (*URIPayload, error) {
	return payloadAs[*URIPayload](r, "record.uri")
}
