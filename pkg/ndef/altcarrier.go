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

// AlternativeCarrierRecordType is the well-known type of an Alternative Carrier record.
const AlternativeCarrierRecordType = "ac"

// CarrierPowerState is the power state of an alternative carrier.
type CarrierPowerState byte

// Carrier power states.
const (
	CarrierPowerStateInactive   CarrierPowerState = 0x00
	CarrierPowerStateActive     CarrierPowerState = 0x01
	CarrierPowerStateActivating CarrierPowerState = 0x02
	CarrierPowerStateUnknown    CarrierPowerState = 0x03
)

const (
	cpsMask              byte = 0x03
	maxDataReferenceLen       = 255
	maxAuxiliaryRefCount      = 255
)

func (s CarrierPowerState) String() string {
	switch s {
	case CarrierPowerStateInactive:
		return "inactive"
	case CarrierPowerStateActive:
		return "active"
	case CarrierPowerStateActivating:
		return "activating"
	case CarrierPowerStateUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("CPS(0x%02X)", byte(s))
	}
}

// AlternativeCarrierPayload is the body of an Alternative Carrier record.
// CarrierDataReference names the id of the record holding the carrier's
// configuration; auxiliary references name further records.
type AlternativeCarrierPayload struct {
	CarrierDataReference    []byte
	AuxiliaryDataReferences [][]byte
	PowerState              CarrierPowerState
}

// NewAlternativeCarrierRecord creates an Alternative Carrier record.
func NewAlternativeCarrierRecord(cps CarrierPowerState, carrierRef []byte, aux ...[]byte) (*Record, error) {
	p := &AlternativeCarrierPayload{CarrierDataReference: carrierRef}
	if err := p.SetPowerState(cps); err != nil {
		return nil, err
	}
	for _, ref := range aux {
		if err := p.AddAuxiliaryDataReference(ref); err != nil {
			return nil, err
		}
	}
	return &Record{TNF: TNFWellKnown, Type: AlternativeCarrierRecordType, Payload: p}, nil
}

// SetPowerState sets the carrier power state, rejecting undefined values.
func (p *AlternativeCarrierPayload) SetPowerState(cps CarrierPowerState) error {
	if cps > CarrierPowerStateUnknown {
		return errorf("ac.set_cps", ErrIllegalArgument, "carrier power state 0x%02X", byte(cps))
	}
	p.PowerState = cps
	return nil
}

// AddAuxiliaryDataReference appends an auxiliary data reference.
func (p *AlternativeCarrierPayload) AddAuxiliaryDataReference(ref []byte) error {
	if len(ref) > maxDataReferenceLen {
		return errorf("ac.add_aux", ErrIllegalArgument, "reference is %d bytes, maximum %d", len(ref), maxDataReferenceLen)
	}
	if len(p.AuxiliaryDataReferences) >= maxAuxiliaryRefCount {
		return errorf("ac.add_aux", ErrIllegalArgument, "already %d auxiliary references", maxAuxiliaryRefCount)
	}
	p.AuxiliaryDataReferences = append(p.AuxiliaryDataReferences, ref)
	return nil
}

// MarshalPayload encodes
// [cps][carrier ref length][carrier ref][aux count]{[aux length][aux]}*.
func (p *AlternativeCarrierPayload) MarshalPayload(_ *Codec) ([]byte, error) {
	const op = "ac.encode"

	if byte(p.PowerState) > cpsMask {
		return nil, errorf(op, ErrIllegalArgument, "carrier power state 0x%02X out of range", byte(p.PowerState))
	}
	if len(p.CarrierDataReference) > maxDataReferenceLen {
		return nil, errorf(op, ErrIllegalArgument, "carrier data reference is %d bytes, maximum %d",
			len(p.CarrierDataReference), maxDataReferenceLen)
	}
	if len(p.AuxiliaryDataReferences) > maxAuxiliaryRefCount {
		return nil, errorf(op, ErrIllegalArgument, "%d auxiliary references, maximum %d",
			len(p.AuxiliaryDataReferences), maxAuxiliaryRefCount)
	}

	size := 3 + len(p.CarrierDataReference)
	for i, ref := range p.AuxiliaryDataReferences {
		if len(ref) > maxDataReferenceLen {
			return nil, errorf(op, ErrIllegalArgument, "auxiliary reference %d is %d bytes, maximum %d",
				i, len(ref), maxDataReferenceLen)
		}
		size += 1 + len(ref)
	}

	w := wire.NewWriter(size)
	w.PutByte(byte(p.PowerState))
	w.PutByte(byte(len(p.CarrierDataReference)))
	w.PutBytes(p.CarrierDataReference)
	w.PutByte(byte(len(p.AuxiliaryDataReferences)))
	for _, ref := range p.AuxiliaryDataReferences {
		w.PutByte(byte(len(ref)))
		w.PutBytes(ref)
	}
	return w.Bytes(), nil
}

// UnmarshalPayload decodes the layout written by MarshalPayload, reading
// auxiliary references until the declared count is exhausted.
func (p *AlternativeCarrierPayload) UnmarshalPayload(_ *Codec, data []byte) error {
	const op = "ac.decode"

	r := wire.NewReader(data)
	cps, err := r.Byte()
	if err != nil {
		return truncated(op, err)
	}
	refLen, err := r.Byte()
	if err != nil {
		return truncated(op, err)
	}
	ref, err := r.Copy(int(refLen))
	if err != nil {
		return truncated(op, err)
	}
	count, err := r.Byte()
	if err != nil {
		return truncated(op, err)
	}

	var aux [][]byte
	if count > 0 {
		aux = make([][]byte, 0, count)
	}
	for i := range int(count) {
		auxLen, lenErr := r.Byte()
		if lenErr != nil {
			return truncated(op, fmt.Errorf("auxiliary reference %d: %w", i, lenErr))
		}
		auxRef, refErr := r.Copy(int(auxLen))
		if refErr != nil {
			return truncated(op, fmt.Errorf("auxiliary reference %d: %w", i, refErr))
		}
		aux = append(aux, auxRef)
	}
	if r.Len() != 0 {
		return errorf(op, ErrIllegalArgument, "%d trailing bytes", r.Len())
	}

	p.PowerState = CarrierPowerState(cps & cpsMask)
	p.CarrierDataReference = ref
	p.AuxiliaryDataReferences = aux
	return nil
}

// AsAlternativeCarrier returns the record's Alternative Carrier payload.
func (r *Record) AsAlternativeCarrier() (*AlternativeCarrierPayload, error) {
	return payloadAs[*AlternativeCarrierPayload](r, "record.alternative_carrier")
}
