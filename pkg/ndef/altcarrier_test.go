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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlternativeCarrierEncode(t *testing.T) {
	t.Parallel()

	rec, err := NewAlternativeCarrierRecord(CarrierPowerStateActivating, []byte("0"), []byte("ab"), []byte("c"))
	require.NoError(t, err)

	p, err := rec.AsAlternativeCarrier()
	require.NoError(t, err)

	data, err := p.MarshalPayload(DefaultCodec())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, '0', 0x02, 0x02, 'a', 'b', 0x01, 'c'}, data)

	var decoded AlternativeCarrierPayload
	require.NoError(t, decoded.UnmarshalPayload(DefaultCodec(), data))
	assert.Equal(t, p, &decoded)
}

func TestAlternativeCarrierRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    *AlternativeCarrierPayload
	}{
		{
			name: "no auxiliary references",
			p:    &AlternativeCarrierPayload{PowerState: CarrierPowerStateInactive, CarrierDataReference: []byte("bt")},
		},
		{
			name: "empty carrier reference",
			p:    &AlternativeCarrierPayload{PowerState: CarrierPowerStateUnknown},
		},
		{
			name: "maximum reference length",
			p: &AlternativeCarrierPayload{
				PowerState:              CarrierPowerStateActive,
				CarrierDataReference:    bytes.Repeat([]byte{'r'}, 255),
				AuxiliaryDataReferences: [][]byte{bytes.Repeat([]byte{'x'}, 255)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &Record{TNF: TNFWellKnown, Type: AlternativeCarrierRecordType, Payload: tt.p}
			data, err := EncodeMessage([]*Record{rec})
			require.NoError(t, err)

			records, err := DecodeMessage(data)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, rec, records[0])
		})
	}
}

func TestAlternativeCarrierDecodeMasksCPS(t *testing.T) {
	t.Parallel()

	var p AlternativeCarrierPayload
	require.NoError(t, p.UnmarshalPayload(DefaultCodec(), []byte{0xFD, 0x00, 0x00}))
	assert.Equal(t, CarrierPowerStateActive, p.PowerState)
	assert.Nil(t, p.CarrierDataReference)
	assert.Nil(t, p.AuxiliaryDataReferences)
}

func TestAlternativeCarrierDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "missing reference length", data: []byte{0x01}},
		{name: "reference overruns", data: []byte{0x01, 0x05, 'a'}},
		{name: "missing aux count", data: []byte{0x01, 0x01, 'a'}},
		{name: "aux count overruns", data: []byte{0x01, 0x01, 'a', 0x02, 0x01, 'b'}},
		{name: "aux length overruns", data: []byte{0x01, 0x01, 'a', 0x01, 0x03, 'b'}},
		{name: "trailing bytes", data: []byte{0x01, 0x01, 'a', 0x00, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p AlternativeCarrierPayload
			require.ErrorIs(t, p.UnmarshalPayload(DefaultCodec(), tt.data), ErrIllegalArgument)
		})
	}
}

func TestAlternativeCarrierSetters(t *testing.T) {
	t.Parallel()

	p := &AlternativeCarrierPayload{}
	require.NoError(t, p.SetPowerState(CarrierPowerStateUnknown))
	require.ErrorIs(t, p.SetPowerState(CarrierPowerState(0x04)), ErrIllegalArgument)
	assert.Equal(t, CarrierPowerStateUnknown, p.PowerState)

	require.ErrorIs(t, p.AddAuxiliaryDataReference(make([]byte, 256)), ErrIllegalArgument)
	for range 255 {
		require.NoError(t, p.AddAuxiliaryDataReference([]byte{1}))
	}
	require.ErrorIs(t, p.AddAuxiliaryDataReference([]byte{1}), ErrIllegalArgument)

	_, err := NewAlternativeCarrierRecord(CarrierPowerState(0x09), nil)
	require.ErrorIs(t, err, ErrIllegalArgument)
}

func TestAlternativeCarrierEncodeErrors(t *testing.T) {
	t.Parallel()

	_, err := (&AlternativeCarrierPayload{CarrierDataReference: make([]byte, 256)}).MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = (&AlternativeCarrierPayload{AuxiliaryDataReferences: [][]byte{make([]byte, 300)}}).MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = (&AlternativeCarrierPayload{AuxiliaryDataReferences: make([][]byte, 256)}).MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)

	_, err = (&AlternativeCarrierPayload{PowerState: CarrierPowerState(0x05)}).MarshalPayload(DefaultCodec())
	require.ErrorIs(t, err, ErrIllegalArgument)
}

func TestCarrierPowerStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "activating", CarrierPowerStateActivating.String())
	assert.Equal(t, "CPS(0x07)", CarrierPowerState(0x07).String())
}
