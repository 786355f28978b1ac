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
	"encoding/binary"
	"fmt"
	"net"
	"strings"

	"github.com/ZaparooProject/go-ndefrtd/internal/wire"
	"github.com/google/uuid"
)

// BluetoothRecordType is the media type of a Bluetooth BR/EDR carrier
// configuration record.
const BluetoothRecordType = "application/vnd.bluetooth.ep.oob"

// EIR data types used by BR/EDR out-of-band data.
const (
	EIRTypeIncomplete16BitUUIDs     byte = 0x02
	EIRTypeComplete16BitUUIDs       byte = 0x03
	EIRTypeIncomplete32BitUUIDs     byte = 0x04
	EIRTypeComplete32BitUUIDs       byte = 0x05
	EIRTypeIncomplete128BitUUIDs    byte = 0x06
	EIRTypeComplete128BitUUIDs      byte = 0x07
	EIRTypeShortenedLocalName       byte = 0x08
	EIRTypeCompleteLocalName        byte = 0x09
	EIRTypeClassOfDevice            byte = 0x0D
	EIRTypeSimplePairingHash        byte = 0x0E
	EIRTypeSimplePairingRandomizer  byte = 0x0F
	bluetoothAddressLength               = 6
	bluetoothOOBHeaderLength             = 2 + bluetoothAddressLength
	maxBluetoothOOBLength                = 0xFFFF
)

// baseUUID expands 16- and 32-bit Bluetooth UUIDs.
var baseUUID = uuid.MustParse("00000000-0000-1000-8000-00805F9B34FB")

// BluetoothPayload is the body of a Bluetooth BR/EDR carrier configuration
// record: the device address followed by EIR structures. Named fields hold
// the structures this package interprets; everything else is kept in
// Additional in the order it was read. A nil named field is absent; an empty
// non-nil one is a structure without data bytes.
//
// Decode fills a named field from the first structure of its type, so an
// Additional entry whose type matches a nil named field comes back in that
// field after a round trip. Repeats of a named type stay in Additional.
//
// DeviceAddress is stored in wire order, least significant byte first.
type BluetoothPayload struct {
	ServiceClassUUID        *OOBField
	DeviceClass             []byte
	SimplePairingHash       []byte
	SimplePairingRandomizer []byte
	LocalName               []byte
	Additional              []OOBField
	DeviceAddress           [bluetoothAddressLength]byte
}

// NewBluetoothRecord creates a BR/EDR carrier configuration record. id is
// the value Alternative Carrier records use to reference it.
func NewBluetoothRecord(id []byte, p *BluetoothPayload) (*Record, error) {
	rec := &Record{TNF: TNFMedia, Type: BluetoothRecordType, Payload: p}
	if err := rec.SetID(id); err != nil {
		return nil, err
	}
	return rec, nil
}

// MarshalPayload encodes [OOB length: 2 bytes LE][address: 6 bytes]{EIR}*.
// The OOB length counts every byte including itself and is patched in after
// the EIR structures are written.
func (p *BluetoothPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	const op = "bluetooth.encode"

	if p.ServiceClassUUID != nil && !isEIRUUIDType(p.ServiceClassUUID.Type) {
		return nil, errorf(op, ErrIllegalArgument, "service class UUID field has type 0x%02X", p.ServiceClassUUID.Type)
	}

	w := wire.NewWriter(bluetoothOOBHeaderLength)
	lengthOff := w.Reserve(2)
	w.PutBytes(p.DeviceAddress[:])

	named := []struct {
		data []byte
		typ  byte
	}{
		{typ: EIRTypeClassOfDevice, data: p.DeviceClass},
		{typ: EIRTypeSimplePairingHash, data: p.SimplePairingHash},
		{typ: EIRTypeSimplePairingRandomizer, data: p.SimplePairingRandomizer},
	}
	for _, f := range named {
		if err := putOptionalField(w, op, f.typ, f.data); err != nil {
			return nil, err
		}
	}
	if p.ServiceClassUUID != nil {
		if err := putOOBField(w, op, *p.ServiceClassUUID); err != nil {
			return nil, err
		}
	}
	if err := putOptionalField(w, op, EIRTypeCompleteLocalName, p.LocalName); err != nil {
		return nil, err
	}
	for _, f := range p.Additional {
		if err := putOOBField(w, op, f); err != nil {
			return nil, err
		}
	}

	if w.Len() > maxBluetoothOOBLength {
		return nil, errorf(op, ErrIllegalArgument, "OOB data is %d bytes, maximum %d", w.Len(), maxBluetoothOOBLength)
	}
	w.PatchUint16LE(lengthOff, uint16(w.Len())) //nolint:gosec // bounded above
	return w.Bytes(), nil
}

// UnmarshalPayload reads the OOB length and address, then EIR structures
// until the OOB length is used up or a zero-length structure ends the
// significant part. Bytes past the OOB length are ignored.
func (p *BluetoothPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	const op = "bluetooth.decode"

	r := wire.NewReader(data)
	oobLen, err := r.Uint16LE()
	if err != nil {
		return truncated(op, err)
	}
	if int(oobLen) < bluetoothOOBHeaderLength {
		return errorf(op, ErrIllegalArgument, "OOB length %d shorter than header", oobLen)
	}
	if int(oobLen) > len(data) {
		return errorf(op, ErrIllegalArgument, "OOB length %d exceeds payload of %d bytes", oobLen, len(data))
	}

	var out BluetoothPayload
	addr, err := r.Next(bluetoothAddressLength)
	if err != nil {
		return truncated(op, err)
	}
	copy(out.DeviceAddress[:], addr)

	eir := wire.NewReader(data[bluetoothOOBHeaderLength:oobLen])
	for eir.Len() > 0 {
		f, end, readErr := readOOBField(eir)
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

func (p *BluetoothPayload) assign(f OOBField) {
	switch {
	case f.Type == EIRTypeClassOfDevice && p.DeviceClass == nil:
		p.DeviceClass = presentData(f.Data)
	case f.Type == EIRTypeSimplePairingHash && p.SimplePairingHash == nil:
		p.SimplePairingHash = presentData(f.Data)
	case f.Type == EIRTypeSimplePairingRandomizer && p.SimplePairingRandomizer == nil:
		p.SimplePairingRandomizer = presentData(f.Data)
	case isEIRUUIDType(f.Type) && p.ServiceClassUUID == nil:
		field := f
		p.ServiceClassUUID = &field
	case f.Type == EIRTypeCompleteLocalName && p.LocalName == nil:
		p.LocalName = presentData(f.Data)
	default:
		p.Additional = append(p.Additional, f)
	}
}

func isEIRUUIDType(t byte) bool {
	return t >= EIRTypeIncomplete16BitUUIDs && t <= EIRTypeComplete128BitUUIDs
}

// DeviceAddressString formats the address most significant byte first,
// e.g. "00:1B:DC:0F:10:AB".
func (p *BluetoothPayload) DeviceAddressString() string {
	return formatBluetoothAddress(p.DeviceAddress)
}

// SetDeviceAddressString parses a colon-separated address written most
// significant byte first.
func (p *BluetoothPayload) SetDeviceAddressString(s string) error {
	addr, err := parseBluetoothAddress("bluetooth.set_address", s)
	if err != nil {
		return err
	}
	p.DeviceAddress = addr
	return nil
}

// ServiceClassUUIDs expands the service class UUID list to full 128-bit UUIDs.
// 16- and 32-bit entries are expanded against the Bluetooth base UUID.
func (p *BluetoothPayload) ServiceClassUUIDs() ([]uuid.UUID, error) {
	const op = "bluetooth.service_uuids"

	if p.ServiceClassUUID == nil {
		return nil, nil
	}
	f := p.ServiceClassUUID
	var width int
	switch f.Type {
	case EIRTypeIncomplete16BitUUIDs, EIRTypeComplete16BitUUIDs:
		width = 2
	case EIRTypeIncomplete32BitUUIDs, EIRTypeComplete32BitUUIDs:
		width = 4
	case EIRTypeIncomplete128BitUUIDs, EIRTypeComplete128BitUUIDs:
		width = 16
	default:
		return nil, errorf(op, ErrIllegalArgument, "field type 0x%02X is not a UUID list", f.Type)
	}
	if len(f.Data)%width != 0 {
		return nil, errorf(op, ErrIllegalArgument, "%d bytes is not a multiple of %d", len(f.Data), width)
	}

	ids := make([]uuid.UUID, 0, len(f.Data)/width)
	for off := 0; off < len(f.Data); off += width {
		chunk := f.Data[off : off+width]
		id := baseUUID
		switch width {
		case 2:
			binary.BigEndian.PutUint16(id[2:4], binary.LittleEndian.Uint16(chunk))
		case 4:
			binary.BigEndian.PutUint32(id[0:4], binary.LittleEndian.Uint32(chunk))
		default:
			for i := range 16 {
				id[i] = chunk[15-i]
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SetServiceClassUUIDs stores ids as a 128-bit UUID list.
func (p *BluetoothPayload) SetServiceClassUUIDs(complete bool, ids ...uuid.UUID) error {
	if len(ids)*16 > maxOOBFieldData {
		return errorf("bluetooth.set_service_uuids", ErrIllegalArgument, "%d UUIDs do not fit one EIR structure", len(ids))
	}
	typ := EIRTypeIncomplete128BitUUIDs
	if complete {
		typ = EIRTypeComplete128BitUUIDs
	}
	data := make([]byte, 0, len(ids)*16)
	for _, id := range ids {
		for i := 15; i >= 0; i-- {
			data = append(data, id[i])
		}
	}
	p.ServiceClassUUID = &OOBField{Type: typ, Data: data}
	return nil
}

// AsBluetooth returns the record's BR/EDR carrier configuration payload.
func (r *Record) AsBluetooth() (*BluetoothPayload, error) {
	return payloadAs[*BluetoothPayload](r, "record.bluetooth")
}

func formatBluetoothAddress(addr [bluetoothAddressLength]byte) string {
	parts := make([]string, bluetoothAddressLength)
	for i := range bluetoothAddressLength {
		parts[i] = fmt.Sprintf("%02X", addr[bluetoothAddressLength-1-i])
	}
	return strings.Join(parts, ":")
}

func parseBluetoothAddress(op, s string) ([bluetoothAddressLength]byte, error) {
	var addr [bluetoothAddressLength]byte
	hw, err := net.ParseMAC(s)
	if err != nil {
		return addr, errorf(op, ErrIllegalArgument, "address %q: %v", s, err)
	}
	if len(hw) != bluetoothAddressLength {
		return addr, errorf(op, ErrIllegalArgument, "address %q is %d bytes", s, len(hw))
	}
	for i := range bluetoothAddressLength {
		addr[i] = hw[bluetoothAddressLength-1-i]
	}
	return addr, nil
}
