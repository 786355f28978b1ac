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
	"fmt"

	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
)

// BLERecordType is the media type of a Bluetooth LE carrier configuration record.
const BLERecordType = "application/vnd.bluetooth.le.oob"

// AD types used by LE out-of-band data.
const (
	ADTypeFlags                         byte = 0x01
	ADTypeCompleteLocalName             byte = 0x09
	ADTypeSecurityManagerTK             byte = 0x10
	ADTypeAppearance                    byte = 0x19
	ADTypeLEDeviceAddress               byte = 0x1B
	ADTypeLERole                        byte = 0x1C
	ADTypeSecureConnectionsConfirmation byte = 0x22
	ADTypeSecureConnectionsRandom       byte = 0x23
)

// LEAddressType says whether an LE device address is public or random.
type LEAddressType byte

// LE address types.
const (
	LEAddressPublic LEAddressType = 0x00
	LEAddressRandom LEAddressType = 0x01
)

func (t LEAddressType) String() string {
	switch t {
	case LEAddressPublic:
		return "public"
	case LEAddressRandom:
		return "random"
	default:
		return fmt.Sprintf("LEAddressType(0x%02X)", byte(t))
	}
}

// LERole is the LE role a device supports for the connection.
type LERole byte

// LE roles.
const (
	LERolePeripheralOnly      LERole = 0x00
	LERoleCentralOnly         LERole = 0x01
	LERolePeripheralPreferred LERole = 0x02
	LERoleCentralPreferred    LERole = 0x03
)

func (r LERole) String() string {
	switch r {
	case LERolePeripheralOnly:
		return "peripheral-only"
	case LERoleCentralOnly:
		return "central-only"
	case LERolePeripheralPreferred:
		return "peripheral-preferred"
	case LERoleCentralPreferred:
		return "central-preferred"
	default:
		return fmt.Sprintf("LERole(0x%02X)", byte(r))
	}
}

const leAddressDataLength = bluetoothAddressLength + 1

// LEDeviceAddress is the 7-byte LE address AD structure. Address is in wire
// order, least significant byte first.
type LEDeviceAddress struct {
	Address [bluetoothAddressLength]byte
	Type    LEAddressType
}

// String formats the address most significant byte first with its type.
func (a LEDeviceAddress) String() string {
	return fmt.Sprintf("%s (%s)", formatBluetoothAddress(a.Address), a.Type)
}

// ParseLEDeviceAddress parses a colon-separated address written most
// significant byte first.
func ParseLEDeviceAddress(s string, typ LEAddressType) (*LEDeviceAddress, error) {
	addr, err := parseBluetoothAddress("ble.parse_address", s)
	if err != nil {
		return nil, err
	}
	return &LEDeviceAddress{Address: addr, Type: typ}, nil
}

// BLEPayload is the body of a Bluetooth LE carrier configuration record: a
// sequence of AD structures led by the device address and role. Structures
// without a named field are kept in Additional in the order they were read.
// A nil named field is absent; an empty non-nil one is a structure without
// data bytes. As with BluetoothPayload, an Additional entry whose type
// matches a nil named field decodes into that field.
type BLEPayload struct {
	DeviceAddress                 *LEDeviceAddress
	Role                          *LERole
	SecurityManagerTK             []byte
	SecureConnectionsConfirmation []byte
	SecureConnectionsRandom       []byte
	Appearance                    []byte
	Flags                         []byte
	LocalName                     []byte
	Additional                    []OOBField
}

// NewBLERecord creates an LE carrier configuration record. id is the value
// Alternative Carrier records use to reference it.
func NewBLERecord(id []byte, p *BLEPayload) (*Record, error) {
	rec := &Record{TNF: TNFMedia, Type: BLERecordType, Payload: p}
	if err := rec.SetID(id); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetRole sets the LE role.
func (p *BLEPayload) SetRole(role LERole) {
	p.Role = &role
}

// MarshalPayload encodes the AD structures, address and role first. It fails
// with ErrInvalidState when either of those is missing.
func (p *BLEPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	const op = "ble.encode"

	if p.DeviceAddress == nil {
		return nil, errorf(op, ErrInvalidState, "LE device address not set")
	}
	if p.Role == nil {
		return nil, errorf(op, ErrInvalidState, "LE role not set")
	}

	w := wire.NewWriter(2*2 + leAddressDataLength + 1)

	addr := make([]byte, 0, leAddressDataLength)
	addr = append(addr, p.DeviceAddress.Address[:]...)
	addr = append(addr, byte(p.DeviceAddress.Type))
	if err := putOOBField(w, op, OOBField{Type: ADTypeLEDeviceAddress, Data: addr}); err != nil {
		return nil, err
	}
	if err := putOOBField(w, op, OOBField{Type: ADTypeLERole, Data: []byte{byte(*p.Role)}}); err != nil {
		return nil, err
	}

	named := []struct {
		data []byte
		typ  byte
	}{
		{typ: ADTypeSecurityManagerTK, data: p.SecurityManagerTK},
		{typ: ADTypeSecureConnectionsConfirmation, data: p.SecureConnectionsConfirmation},
		{typ: ADTypeSecureConnectionsRandom, data: p.SecureConnectionsRandom},
		{typ: ADTypeAppearance, data: p.Appearance},
		{typ: ADTypeFlags, data: p.Flags},
		{typ: ADTypeCompleteLocalName, data: p.LocalName},
	}
	for _, f := range named {
		if err := putOptionalField(w, op, f.typ, f.data); err != nil {
			return nil, err
		}
	}
	for _, f := range p.Additional {
		if err := putOOBField(w, op, f); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// UnmarshalPayload requires the device address and role as the first two AD
// structures, then reads the rest until the payload is used up or a
// zero-length structure ends the significant part.
func (p *BLEPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	const op = "ble.decode"

	r := wire.NewReader(data)
	var out BLEPayload

	addr, err := readLeadingField(r, op, ADTypeLEDeviceAddress, leAddressDataLength)
	if err != nil {
		return err
	}
	out.DeviceAddress = &LEDeviceAddress{Type: LEAddressType(addr[bluetoothAddressLength])}
	copy(out.DeviceAddress.Address[:], addr)

	role, err := readLeadingField(r, op, ADTypeLERole, 1)
	if err != nil {
		return err
	}
	out.SetRole(LERole(role[0]))

	for r.Len() > 0 {
		f, end, readErr := readOOBField(r)
		if readErr != nil {
			return truncated(op, readErr)
		}
		if end {
			break
		}
		out.assign(f)
	}

	*p = out
	return nil
}

func readLeadingField(r *wire.Reader, op string, typ byte, size int) ([]byte, error) {
	f, end, err := readOOBField(r)
	if err != nil {
		return nil, truncated(op, err)
	}
	if end || f.Type != typ {
		return nil, errorf(op, ErrIllegalArgument, "expected AD type 0x%02X at offset %d", typ, r.Offset())
	}
	if len(f.Data) != size {
		return nil, errorf(op, ErrIllegalArgument, "AD type 0x%02X carries %d bytes, want %d", typ, len(f.Data), size)
	}
	return f.Data, nil
}

func (p *BLEPayload) assign(f OOBField) {
	slot := map[byte]*[]byte{
		ADTypeSecurityManagerTK:             &p.SecurityManagerTK,
		ADTypeSecureConnectionsConfirmation: &p.SecureConnectionsConfirmation,
		ADTypeSecureConnectionsRandom:       &p.SecureConnectionsRandom,
		ADTypeAppearance:                    &p.Appearance,
		ADTypeFlags:                         &p.Flags,
		ADTypeCompleteLocalName:             &p.LocalName,
	}[f.Type]
	if slot != nil && *slot == nil {
		*slot = presentData(f.Data)
		return
	}
	p.Additional = append(p.Additional, f)
}

// AsBLE returns the record's LE carrier configuration payload.
func (r *Record) AsBLE() (*BLEPayload, error) {
	return payloadAs[*BLEPayload](r, "record.ble")
}
