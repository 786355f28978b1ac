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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBluetoothPayload() *BluetoothPayload {
	return &BluetoothPayload{
		DeviceAddress:           [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
		DeviceClass:             []byte{0x0C, 0x02, 0x40},
		SimplePairingHash:       bytes.Repeat([]byte{0x11}, 16),
		SimplePairingRandomizer: bytes.Repeat([]byte{0x22}, 16),
		ServiceClassUUID:        &OOBField{Type: EIRTypeComplete16BitUUIDs, Data: []byte{0x0B, 0x11, 0x0E, 0x11}},
		LocalName:               []byte("Speaker"),
		Additional:              []OOBField{{Type: 0xFF, Data: []byte{0xCA, 0xFE}}},
	}
}

func TestBluetoothEncodeLayout(t *testing.T) {
	t.Parallel()

	p := &BluetoothPayload{
		DeviceAddress: [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
		DeviceClass:   []byte{0x0C, 0x02, 0x40},
		LocalName:     []byte("Hi"),
	}

	data, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)

	want := []byte{
		0x11, 0x00, // OOB length 17
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x04, 0x0D, 0x0C, 0x02, 0x40,
		0x03, 0x09, 'H', 'i',
	}
	assert.Equal(t, want, data)
}

func TestBluetoothOOBLengthMatchesOutput(t *testing.T) {
	t.Parallel()

	for _, p := range []*BluetoothPayload{{}, sampleBluetoothPayload()} {
		data, err := p.MarshalPayload(DefaultCodec())
		require.NoError(t, err)
		assert.Equal(t, len(data), int(binary.LittleEndian.Uint16(data)))
	}
}

func TestBluetoothRoundTrip(t *testing.T) {
	t.Parallel()

	rec, err := NewBluetoothRecord([]byte("0"), sampleBluetoothPayload())
	require.NoError(t, err)

	data, err := EncodeMessage([]*Record{rec})
	require.NoError(t, err)

	records, err := DecodeMessage(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])

	bt, err := records[0].AsBluetooth()
	require.NoError(t, err)
	assert.Equal(t, "06:05:04:03:02:01", bt.DeviceAddressString())
}

func TestBluetoothAddressOnly(t *testing.T) {
	t.Parallel()

	data := []byte{0x08, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	var p BluetoothPayload
	require.NoError(t, p.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, p.DeviceAddress)
	assert.Nil(t, p.DeviceClass)
	assert.Nil(t, p.Additional)

	out, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestBluetoothDecodeStopsAtOOBLength(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x0C, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x03, 0x09, 'H', 'i',
		0x03, 0x08, 'X', 'Y', // beyond the OOB length
	}

	var p BluetoothPayload
	require.NoError(t, p.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, []byte("Hi"), p.LocalName)
	assert.Nil(t, p.Additional)
}

func TestBluetoothDecodeStopsAtZeroLengthEIR(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x10, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x03, 0x09, 'H', 'i',
		0x00,
		0x7F, 0x7F, 0x7F, // padding, not EIR
	}

	var p BluetoothPayload
	require.NoError(t, p.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, []byte("Hi"), p.LocalName)
	assert.Nil(t, p.Additional)
}

func TestBluetoothDuplicateFieldsGoToAdditional(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x16, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x04, 0x0D, 0x01, 0x02, 0x03,
		0x04, 0x0D, 0x04, 0x05, 0x06,
		0x03, 0x08, 'S', 'h',
	}

	var p BluetoothPayload
	require.NoError(t, p.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, p.DeviceClass)
	assert.Equal(t, []OOBField{
		{Type: EIRTypeClassOfDevice, Data: []byte{0x04, 0x05, 0x06}},
		{Type: EIRTypeShortenedLocalName, Data: []byte("Sh")},
	}, p.Additional)
}

func TestBluetoothDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "one byte", data: []byte{0x08}},
		{name: "OOB length below header", data: []byte{0x07, 0x00, 1, 2, 3, 4, 5, 6}},
		{name: "OOB length beyond payload", data: []byte{0x09, 0x00, 1, 2, 3, 4, 5, 6}},
		{name: "short address", data: []byte{0x08, 0x00, 1, 2, 3}},
		{name: "EIR overruns OOB length", data: []byte{0x0B, 0x00, 1, 2, 3, 4, 5, 6, 0x05, 0x09, 'a'}},
		{name: "EIR missing type", data: []byte{0x09, 0x00, 1, 2, 3, 4, 5, 6, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p BluetoothPayload
			require.ErrorIs(t, p.UnmarshalPayload(DefaultCodec(), tt.data), ErrIllegalArgument)
		})
	}
}

func TestBluetoothEncodeErrors(t *testing.T) {
	t.Parallel()

	p := &BluetoothPayload{ServiceClassUUID: &OOBField{Type: EIRTypeCompleteLocalName}}
	_, err := p.MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)

	p = &BluetoothPayload{LocalName: make([]byte, 255)}
	_, err = p.MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)

	p = &BluetoothPayload{}
	for range 300 {
		p.Additional = append(p.Additional, OOBField{Type: 0xFF, Data: make([]byte, 254)})
	}
	_, err = p.MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)
}

func TestBluetoothServiceClassUUIDs(t *testing.T) {
	t.Parallel()

	t.Run("16-bit", func(t *testing.T) {
		t.Parallel()

		p := sampleBluetoothPayload()
		ids, err := p.ServiceClassUUIDs()
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{
			uuid.MustParse("0000110b-0000-1000-8000-00805f9b34fb"),
			uuid.MustParse("0000110e-0000-1000-8000-00805f9b34fb"),
		}, ids)
	})

	t.Run("32-bit", func(t *testing.T) {
		t.Parallel()

		p := &BluetoothPayload{ServiceClassUUID: &OOBField{
			Type: EIRTypeIncomplete32BitUUIDs,
			Data: []byte{0x78, 0x56, 0x34, 0x12},
		}}
		ids, err := p.ServiceClassUUIDs()
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{uuid.MustParse("12345678-0000-1000-8000-00805f9b34fb")}, ids)
	})

	t.Run("128-bit round trip", func(t *testing.T) {
		t.Parallel()

		want := uuid.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e")
		p := &BluetoothPayload{}
		require.NoError(t, p.SetServiceClassUUIDs(true, want))
		assert.Equal(t, EIRTypeComplete128BitUUIDs, p.ServiceClassUUID.Type)
		assert.Equal(t, byte(0x9e), p.ServiceClassUUID.Data[0])

		ids, err := p.ServiceClassUUIDs()
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{want}, ids)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		ids, err := (&BluetoothPayload{}).ServiceClassUUIDs()
		require.NoError(t, err)
		assert.Nil(t, ids)
	})

	t.Run("ragged list", func(t *testing.T) {
		t.Parallel()

		p := &BluetoothPayload{ServiceClassUUID: &OOBField{Type: EIRTypeComplete16BitUUIDs, Data: []byte{1, 2, 3}}}
		_, err := p.ServiceClassUUIDs()
		require.ErrorIs(t, err, ErrIllegalArgument)
	})

	t.Run("too many", func(t *testing.T) {
		t.Parallel()

		ids := make([]uuid.UUID, 16)
		require.ErrorIs(t, (&BluetoothPayload{}).SetServiceClassUUIDs(false, ids...), ErrIllegalArgument)
	})
}

func TestBluetoothDeviceAddressString(t *testing.T) {
	t.Parallel()

	p := &BluetoothPayload{}
	require.NoError(t, p.SetDeviceAddressString("00:1B:DC:0F:10:AB"))
	assert.Equal(t, [6]byte{0xAB, 0x10, 0x0F, 0xDC, 0x1B, 0x00}, p.DeviceAddress)
	assert.Equal(t, "00:1B:DC:0F:10:AB", p.DeviceAddressString())

	require.ErrorIs(t, p.SetDeviceAddressString("not-an-address"), ErrIllegalArgument)
	require.ErrorIs(t, p.SetDeviceAddressString("00:11:22:33:44:55:66:77"), ErrIllegalArgument)
}

func TestBluetoothEmptyNamedFieldsRoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x0E, 0x00, // OOB length 14
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x01, 0x0D, // class of device, no data
		0x01, 0x09, // local name, no data
		0x01, 0xFF, // unnamed, no data
	}

	var p BluetoothPayload
	require.NoError(t, p.UnmarshalPayload(DefaultCodec(), data))
	require.NotNil(t, p.DeviceClass)
	assert.Empty(t, p.DeviceClass)
	require.NotNil(t, p.LocalName)
	assert.Empty(t, p.LocalName)
	assert.Nil(t, p.SimplePairingHash)
	require.Len(t, p.Additional, 1)
	assert.Equal(t, byte(0xFF), p.Additional[0].Type)

	out, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestBluetoothAdditionalNamedTypeDecodesIntoField(t *testing.T) {
	t.Parallel()

	p := &BluetoothPayload{
		DeviceAddress: [6]byte{1, 2, 3, 4, 5, 6},
		Additional:    []OOBField{{Type: EIRTypeCompleteLocalName, Data: []byte("Hi")}},
	}
	data, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)

	var decoded BluetoothPayload
	require.NoError(t, decoded.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, []byte("Hi"), decoded.LocalName)
	assert.Nil(t, decoded.Additional)

	again, err := decoded.MarshalPayload(DefaultCodec())
	require.NoError(t, err)
	assert.Equal(t, data, again, "the bytes are stable even though the field moved")
}
