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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/go-ndefrtd/pkg/brandprotection"
	"github.com/ZaparooProject/go-ndefrtd/pkg/ndef"
)

func printRecords(w io.Writer, records []*ndef.Record, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, rec := range records {
		_, _ = fmt.Fprintf(w, "%s[%d] %s %q", indent, i, rec.TNF, rec.Type)
		if rec.HasID() {
			_, _ = fmt.Fprintf(w, " id=%q", rec.ID)
		}
		_, _ = fmt.Fprintln(w)
		printPayload(w, rec, depth+1)
	}
}

func printPayload(w io.Writer, rec *ndef.Record, depth int) {
	indent := strings.Repeat("  ", depth)
	line := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, indent+format+"\n", args...)
	}

	switch p := rec.Payload.(type) {
	case *ndef.URIPayload:
		line("uri: %s", p.URIWithIdentifier())
	case *ndef.TextPayload:
		line("text (%s): %q", p.Language, p.Text)
	case *ndef.AlternativeCarrierPayload:
		line("power state: %s", p.PowerState)
		line("carrier data reference: %q", p.CarrierDataReference)
		for _, ref := range p.AuxiliaryDataReferences {
			line("auxiliary data reference: %q", ref)
		}
	case *ndef.ErrorPayload:
		line("error: %s data=%X", p.Reason, p.Data)
	case *ndef.HandoverSelectPayload:
		line("version: %s", p.Version())
		printRecords(w, p.LocalRecords(), depth)
	case *ndef.BluetoothPayload:
		line("address: %s", p.DeviceAddressString())
		if p.LocalName != nil {
			line("name: %q", p.LocalName)
		}
		if ids, err := p.ServiceClassUUIDs(); err == nil {
			for _, id := range ids {
				line("service: %s", id)
			}
		}
		printOOBFields(line, p.Additional)
	case *ndef.BLEPayload:
		if p.DeviceAddress != nil {
			line("address: %s", p.DeviceAddress)
		}
		if p.Role != nil {
			line("role: %s", *p.Role)
		}
		if p.LocalName != nil {
			line("name: %q", p.LocalName)
		}
		printOOBFields(line, p.Additional)
	case *brandprotection.Payload:
		if p.Certificate != nil {
			line("certificate subject: %s", p.Certificate.Subject)
			line("certificate issuer: %s", p.Certificate.Issuer)
			line("valid: %s to %s", p.Certificate.NotBefore.UTC().Format("2006-01-02"),
				p.Certificate.NotAfter.UTC().Format("2006-01-02"))
		}
	case *ndef.RawPayload:
		if len(p.Data) > 0 {
			line("data: %X", p.Data)
		}
	default:
		line("payload: %T", p)
	}
}

func printOOBFields(line func(string, ...any), fields []ndef.OOBField) {
	for _, f := range fields {
		line("field 0x%02X: %X", f.Type, f.Data)
	}
}
