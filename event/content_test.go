// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mau.fi/keyverification/event"
	"go.mau.fi/keyverification/id"
)

const verificationStartEvent = `{
	"sender": "@alice:example.org",
	"type": "m.key.verification.start",
	"content": {
		"from_device": "BobDevice",
		"transaction_id": "S0meUniqueAndOpaqueString",
		"method": "m.sas.v1",
		"key_agreement_protocols": ["curve25519", "curve25519-hkdf-sha256"],
		"hashes": ["sha256"],
		"message_authentication_codes": ["hkdf-hmac-sha256", "hmac-sha256"],
		"short_authentication_string": ["decimal", "emoji"]
	}
}`

func TestVerificationStartEventContent_Parse(t *testing.T) {
	var evt *event.Event
	err := json.Unmarshal([]byte(verificationStartEvent), &evt)
	require.NoError(t, err)

	assert.Equal(t, id.UserID("@alice:example.org"), evt.Sender)
	assert.Equal(t, event.ToDeviceVerificationStart, evt.Type)
	assert.True(t, evt.Type.IsToDevice())

	err = evt.Content.ParseRaw(evt.Type)
	require.NoError(t, err)

	content := evt.Content.AsVerificationStart()
	assert.Equal(t, id.DeviceID("BobDevice"), content.FromDevice)
	assert.Equal(t, id.VerificationTransactionID("S0meUniqueAndOpaqueString"), content.GetTransactionID())
	assert.Equal(t, event.VerificationMethodSAS, content.Method)
	assert.Equal(t, []event.KeyAgreementProtocol{
		event.KeyAgreementProtocolCurve25519,
		event.KeyAgreementProtocolCurve25519HKDFSHA256,
	}, content.KeyAgreementProtocols)
	assert.Equal(t, []event.VerificationHashMethod{event.VerificationHashMethodSHA256}, content.Hashes)
	assert.Equal(t, []event.MACMethod{event.MACMethodHKDFHMACSHA256, event.MACMethodHMACSHA256}, content.MessageAuthenticationCodes)
	assert.Equal(t, []event.SASMethod{event.SASMethodDecimal, event.SASMethodEmoji}, content.ShortAuthenticationString)
}

const verificationStartEventUnknownMethod = `{
	"sender": "@alice:example.org",
	"type": "m.key.verification.start",
	"content": {
		"from_device": "BobDevice",
		"transaction_id": "S0meUniqueAndOpaqueString",
		"method": "m.cursed.v1"
	}
}`

func TestVerificationStartEventContent_ParseUnknownMethod(t *testing.T) {
	var evt *event.Event
	err := json.Unmarshal([]byte(verificationStartEventUnknownMethod), &evt)
	require.NoError(t, err)

	err = evt.Content.ParseRaw(evt.Type)
	assert.ErrorIs(t, err, event.ErrUnknownVariant)
}

const verificationRequestMessageEvent = `{
	"sender": "@alice:example.org",
	"type": "m.room.message",
	"origin_server_ts": 1587252684192,
	"event_id": "$143273582443PhrSn:example.org",
	"room_id": "!jEsUZKDJdhlrceRyVU:example.org",
	"content": {
		"msgtype": "m.key.verification.request",
		"body": "Alice is requesting to verify your device, but your client does not support verification, so you may need to use a different verification method.",
		"from_device": "AliceDevice",
		"methods": ["m.sas.v1"],
		"to": "@bob:example.org"
	}
}`

func TestVerificationRequestEventContentFromMessage(t *testing.T) {
	var evt *event.Event
	err := json.Unmarshal([]byte(verificationRequestMessageEvent), &evt)
	require.NoError(t, err)
	assert.Equal(t, event.EventMessage, evt.Type)

	err = evt.Content.ParseRaw(evt.Type)
	require.NoError(t, err)
	assert.Equal(t, event.MsgVerificationRequest, evt.Content.AsMessage().MsgType)

	request := event.VerificationRequestEventContentFromMessage(evt)
	assert.Equal(t, id.VerificationTransactionID("$143273582443PhrSn:example.org"), request.TransactionID)
	assert.Equal(t, id.DeviceID("AliceDevice"), request.FromDevice)
	assert.Equal(t, []event.VerificationMethod{event.VerificationMethodSAS}, request.Methods)
	assert.Equal(t, int64(1587252684192), request.Timestamp.UnixMilli())
}

const inRoomVerificationReadyEvent = `{
	"sender": "@bob:example.org",
	"type": "m.key.verification.ready",
	"origin_server_ts": 1587252685000,
	"event_id": "$ready:example.org",
	"room_id": "!jEsUZKDJdhlrceRyVU:example.org",
	"content": {
		"from_device": "BobDevice",
		"methods": ["m.sas.v1"],
		"m.relates_to": {
			"rel_type": "m.reference",
			"event_id": "$143273582443PhrSn:example.org"
		}
	}
}`

func TestVerificationReadyEventContent_ParseInRoom(t *testing.T) {
	var evt *event.Event
	err := json.Unmarshal([]byte(inRoomVerificationReadyEvent), &evt)
	require.NoError(t, err)

	// The type string is shared with the to-device variant, so the class
	// guess has to be corrected for events that arrived in a room.
	assert.Equal(t, event.ToDeviceEventType, evt.Type.Class)
	evt.MarkInRoom()
	assert.Equal(t, event.InRoomVerificationReady, evt.Type)

	err = evt.Content.ParseRaw(evt.Type)
	require.NoError(t, err)

	content := evt.Content.AsVerificationReady()
	assert.Equal(t, id.DeviceID("BobDevice"), content.FromDevice)
	assert.Empty(t, content.GetTransactionID())
	rel := content.OptionalGetRelatesTo()
	require.NotNil(t, rel)
	assert.Equal(t, id.EventID("$143273582443PhrSn:example.org"), rel.GetReferenceID())
}

const verificationMacEvent = `{
	"sender": "@alice:example.org",
	"type": "m.key.verification.mac",
	"content": {
		"transaction_id": "S0meUniqueAndOpaqueString",
		"keys": "Y29tbWl0bWVudA",
		"mac": {
			"ed25519:ABCDEF": "dGVzdGtleQ"
		}
	}
}`

func TestVerificationMacEventContent_Parse(t *testing.T) {
	var evt *event.Event
	err := json.Unmarshal([]byte(verificationMacEvent), &evt)
	require.NoError(t, err)

	err = evt.Content.ParseRaw(evt.Type)
	require.NoError(t, err)

	content := evt.Content.AsVerificationMac()
	assert.Equal(t, []byte("commitment"), []byte(content.Keys))
	require.Contains(t, content.MAC, id.KeyID("ed25519:ABCDEF"))
	assert.Equal(t, []byte("testkey"), []byte(content.MAC[id.KeyID("ed25519:ABCDEF")]))

	algorithm, keyID := id.KeyID("ed25519:ABCDEF").Parse()
	assert.Equal(t, id.KeyAlgorithmEd25519, algorithm)
	assert.Equal(t, "ABCDEF", keyID)
}

func TestVerificationAcceptEventContent_Serialize(t *testing.T) {
	content := &event.VerificationAcceptEventContent{
		ToDeviceVerificationEvent: event.ToDeviceVerificationEvent{
			TransactionID: "S0meUniqueAndOpaqueString",
		},
		Commitment:                []byte("commitment"),
		Hash:                      event.VerificationHashMethodSHA256,
		KeyAgreementProtocol:      event.KeyAgreementProtocolCurve25519HKDFSHA256,
		MessageAuthenticationCode: event.MACMethodHKDFHMACSHA256,
		ShortAuthenticationString: []event.SASMethod{event.SASMethodDecimal, event.SASMethodEmoji},
	}
	serialized, err := json.Marshal(content)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"transaction_id": "S0meUniqueAndOpaqueString",
		"commitment": "Y29tbWl0bWVudA",
		"hash": "sha256",
		"key_agreement_protocol": "curve25519-hkdf-sha256",
		"message_authentication_code": "hkdf-hmac-sha256",
		"short_authentication_string": ["decimal", "emoji"]
	}`, string(serialized))

	var deserialized event.VerificationAcceptEventContent
	require.NoError(t, json.Unmarshal(serialized, &deserialized))
	assert.Equal(t, content.Commitment, deserialized.Commitment)
	assert.Equal(t, content.KeyAgreementProtocol, deserialized.KeyAgreementProtocol)
}

const verificationCancelEventExtraFields = `{
	"sender": "@alice:example.org",
	"type": "m.key.verification.cancel",
	"content": {
		"transaction_id": "S0meUniqueAndOpaqueString",
		"code": "m.user",
		"reason": "User rejected the key verification request",
		"com.example.extra": {"hello": "world"}
	}
}`

func TestContent_UnknownFieldsSurviveReserialization(t *testing.T) {
	var evt *event.Event
	err := json.Unmarshal([]byte(verificationCancelEventExtraFields), &evt)
	require.NoError(t, err)
	require.NoError(t, evt.Content.ParseRaw(evt.Type))

	content := evt.Content.AsVerificationCancel()
	assert.Equal(t, event.VerificationCancelCodeUser, content.Code)

	serialized, err := json.Marshal(&evt.Content)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"transaction_id": "S0meUniqueAndOpaqueString",
		"code": "m.user",
		"reason": "User rejected the key verification request",
		"com.example.extra": {"hello": "world"}
	}`, string(serialized))
}

func TestContent_ParseRawErrors(t *testing.T) {
	var content event.Content
	require.NoError(t, content.UnmarshalJSON([]byte(`{"transaction_id": "foo"}`)))

	err := content.ParseRaw(event.NewEventType("m.dummy"))
	require.Error(t, err)
	assert.True(t, event.IsUnsupportedContentType(err))

	require.NoError(t, content.ParseRaw(event.ToDeviceVerificationDone))
	assert.ErrorIs(t, content.ParseRaw(event.ToDeviceVerificationDone), event.ErrContentAlreadyParsed)
}
