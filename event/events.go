// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event

import (
	"go.mau.fi/keyverification/id"
)

// Event represents a single Matrix event.
type Event struct {
	Sender    id.UserID  `json:"sender,omitempty"`           // The user ID of the sender of the event
	Type      Type       `json:"type"`                       // The event type
	Timestamp int64      `json:"origin_server_ts,omitempty"` // The unix timestamp when this message was sent by the origin server
	ID        id.EventID `json:"event_id,omitempty"`         // The unique ID of this event
	RoomID    id.RoomID  `json:"room_id,omitempty"`          // The room the event was sent to. Not present on to-device events
	Content   Content    `json:"content"`                    // The JSON content of the event.

	ToUserID   id.UserID   `json:"to_user_id,omitempty"`   // The user ID that the to-device event was sent to. Only present in MSC2409 appservice transactions.
	ToDeviceID id.DeviceID `json:"to_device_id,omitempty"` // The device ID that the to-device event was sent to. Only present in MSC2409 appservice transactions.
}

// MarkInRoom flips the class of the event's type to MessageEventType.
// The verification event types share their type strings between the
// to-device and in-room variants, and JSON parsing guesses to-device, so
// sync code has to call this on events that arrived in a room.
func (evt *Event) MarkInRoom() {
	if evt.Type.Class == ToDeviceEventType {
		evt.Type.Class = MessageEventType
	}
}
