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
	"testing"

	gondef "github.com/hsanjuan/go-ndef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Messages written by github.com/hsanjuan/go-ndef, which the reader stack
// uses today, must decode here and the other way round.

func TestInteropDecodeGoNDEFMessage(t *testing.T) {
	t.Parallel()

	text := gondef.NewTextRecord("hello", "en")
	uri := gondef.NewURIRecord("https://www.zaparoo.org/docs")
	media := gondef.NewMediaRecord(MIMETypeJSON, []byte(`{"launch":"snes/mario.sfc"}`))
	records := []*gondef.Record{text, uri, media}
	for _, r := range records {
		r.SetMB(false)
		r.SetME(false)
	}
	records[0].SetMB(true)
	records[len(records)-1].SetME(true)

	data, err := (&gondef.Message{Records: records}).Marshal()
	require.NoError(t, err)

	c := textCodec(t)
	decoded, err := c.DecodeMessage(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	txt, err := decoded[0].AsText()
	require.NoError(t, err)
	assert.Equal(t, "hello", txt.Text)
	assert.Equal(t, "en", txt.Language)

	u, err := decoded[1].AsURI()
	require.NoError(t, err)
	assert.Equal(t, "https://www.zaparoo.org/docs", u.URIWithIdentifier())

	raw, err := decoded[2].AsRaw()
	require.NoError(t, err)
	assert.Equal(t, MIMETypeJSON, decoded[2].Type)
	assert.Equal(t, []byte(`{"launch":"snes/mario.sfc"}`), raw.Data)
}

func TestInteropEncodeForGoNDEF(t *testing.T) {
	t.Parallel()

	uri := NewURIRecordFromString("https://zaparoo.org")
	media, err := NewMediaRecord(MIMETypeText, []byte("**launch.random:snes"))
	require.NoError(t, err)
	ext, err := NewExternalRecord("zaparoo.org:token", make([]byte, 300))
	require.NoError(t, err)

	data, err := EncodeMessage([]*Record{uri, media, ext})
	require.NoError(t, err)

	var msg gondef.Message
	n, err := msg.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	require.Len(t, msg.Records, 3)

	assert.Equal(t, gondef.NFCForumWellKnownType, msg.Records[0].TNF())
	assert.Equal(t, URIRecordType, msg.Records[0].Type())

	assert.Equal(t, gondef.MediaType, msg.Records[1].TNF())
	assert.Equal(t, MIMETypeText, msg.Records[1].Type())
	payload, err := msg.Records[1].Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("**launch.random:snes"), payload.Marshal())

	assert.Equal(t, gondef.NFCForumExternalType, msg.Records[2].TNF())
	assert.Equal(t, "zaparoo.org:token", msg.Records[2].Type())
	payload, err = msg.Records[2].Payload()
	require.NoError(t, err)
	assert.Len(t, payload.Marshal(), 300)
}
