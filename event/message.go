// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event

import (
	"go.mau.fi/keyverification/id"
)

// MessageType is the sub-type of a m.room.message event.
// https://spec.matrix.org/v1.10/client-server-api/#mroommessage-msgtypes
type MessageType string

func (mt MessageType) String() string {
	return string(mt)
}

const (
	MsgText                MessageType = "m.text"
	MsgNotice              MessageType = "m.notice"
	MsgVerificationRequest MessageType = "m.key.verification.request"
)

// MessageEventContent represents the content of a m.room.message event.
//
// In-room verification requests are m.room.message events with the msgtype
// m.key.verification.request, so this also contains the fields of those.
// The body is a fallback for clients that don't understand verification
// requests.
//
// https://spec.matrix.org/v1.10/client-server-api/#mroommessage
type MessageEventContent struct {
	MsgType MessageType `json:"msgtype,omitempty"`
	Body    string      `json:"body"`

	RelatesTo *RelatesTo `json:"m.relates_to,omitempty"`

	// Fields for verification requests
	FromDevice id.DeviceID          `json:"from_device,omitempty"`
	Methods    []VerificationMethod `json:"methods,omitempty"`
	To         id.UserID            `json:"to,omitempty"`
}

func (content *MessageEventContent) GetRelatesTo() *RelatesTo {
	if content.RelatesTo == nil {
		content.RelatesTo = &RelatesTo{}
	}
	return content.RelatesTo
}

func (content *MessageEventContent) OptionalGetRelatesTo() *RelatesTo {
	return content.RelatesTo
}

func (content *MessageEventContent) SetRelatesTo(rel *RelatesTo) {
	content.RelatesTo = rel
}
