// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event

import (
	"encoding/json"
	"strings"
)

type TypeClass int

func (tc TypeClass) Name() string {
	switch tc {
	case MessageEventType:
		return "message"
	case ToDeviceEventType:
		return "to-device"
	default:
		return "unknown"
	}
}

const (
	// Normal message events
	MessageEventType TypeClass = iota
	// Device-to-device events
	ToDeviceEventType
	// Unknown events
	UnknownEventType
)

type Type struct {
	Type  string
	Class TypeClass
}

func NewEventType(name string) Type {
	evtType := Type{Type: name}
	evtType.Class = evtType.GuessClass()
	return evtType
}

func (et *Type) IsToDevice() bool {
	return et.Class == ToDeviceEventType
}

func (et *Type) IsCustom() bool {
	return !strings.HasPrefix(et.Type, "m.")
}

// GuessClass returns the most likely class for the type string. The in-room
// variants of the verification events share their type strings with the
// to-device variants, so this guesses to-device; sync code that receives an
// event with a room ID has to flip the class itself.
func (et *Type) GuessClass() TypeClass {
	switch et.Type {
	case EventMessage.Type:
		return MessageEventType
	case ToDeviceVerificationRequest.Type, ToDeviceVerificationReady.Type, ToDeviceVerificationStart.Type,
		ToDeviceVerificationAccept.Type, ToDeviceVerificationKey.Type, ToDeviceVerificationMAC.Type,
		ToDeviceVerificationCancel.Type, ToDeviceVerificationDone.Type:
		return ToDeviceEventType
	default:
		return UnknownEventType
	}
}

func (et *Type) UnmarshalJSON(data []byte) error {
	err := json.Unmarshal(data, &et.Type)
	if err != nil {
		return err
	}
	et.Class = et.GuessClass()
	return nil
}

func (et *Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(&et.Type)
}

func (et Type) String() string {
	return et.Type
}

func (et Type) Repr() string {
	return et.Class.Name() + " " + et.Type
}

// Message events
var (
	EventMessage = Type{"m.room.message", MessageEventType}
)

// Device-to-device verification events
var (
	ToDeviceVerificationRequest = Type{"m.key.verification.request", ToDeviceEventType}
	ToDeviceVerificationReady   = Type{"m.key.verification.ready", ToDeviceEventType}
	ToDeviceVerificationStart   = Type{"m.key.verification.start", ToDeviceEventType}
	ToDeviceVerificationAccept  = Type{"m.key.verification.accept", ToDeviceEventType}
	ToDeviceVerificationKey     = Type{"m.key.verification.key", ToDeviceEventType}
	ToDeviceVerificationMAC     = Type{"m.key.verification.mac", ToDeviceEventType}
	ToDeviceVerificationCancel  = Type{"m.key.verification.cancel", ToDeviceEventType}
	ToDeviceVerificationDone    = Type{"m.key.verification.done", ToDeviceEventType}
)

// In-room verification events. The request is missing from this list, as
// in-room verification requests are sent as m.room.message events with the
// msgtype m.key.verification.request.
var (
	InRoomVerificationReady  = Type{"m.key.verification.ready", MessageEventType}
	InRoomVerificationStart  = Type{"m.key.verification.start", MessageEventType}
	InRoomVerificationAccept = Type{"m.key.verification.accept", MessageEventType}
	InRoomVerificationKey    = Type{"m.key.verification.key", MessageEventType}
	InRoomVerificationMAC    = Type{"m.key.verification.mac", MessageEventType}
	InRoomVerificationCancel = Type{"m.key.verification.cancel", MessageEventType}
	InRoomVerificationDone   = Type{"m.key.verification.done", MessageEventType}
)
