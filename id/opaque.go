// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package id

import (
	"go.mau.fi/util/random"
)

// A UserID is a string starting with @ that references a specific user.
// https://spec.matrix.org/v1.10/appendices/#user-identifiers
type UserID string

// A RoomID is a string starting with ! that references a specific room.
// https://spec.matrix.org/v1.10/appendices/#room-ids
type RoomID string

// An EventID is a string starting with $ that references a specific event.
// https://spec.matrix.org/v1.10/appendices/#event-ids
type EventID string

// A DeviceID is an arbitrary string that references a specific device.
type DeviceID string

// A VerificationTransactionID is an arbitrary string that identifies a single
// interactive device verification flow. For in-room verification, it is the
// event ID of the m.key.verification.request message.
type VerificationTransactionID string

// NewVerificationTransactionID generates a transaction ID for starting a new
// interactive device verification flow over to-device events.
func NewVerificationTransactionID() VerificationTransactionID {
	return VerificationTransactionID(random.String(32))
}

func (userID UserID) String() string {
	return string(userID)
}

func (roomID RoomID) String() string {
	return string(roomID)
}

func (eventID EventID) String() string {
	return string(eventID)
}

func (deviceID DeviceID) String() string {
	return string(deviceID)
}

func (transactionID VerificationTransactionID) String() string {
	return string(transactionID)
}
