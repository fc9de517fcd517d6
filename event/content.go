// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TypeMap is a mapping from event type to the content struct type.
// This is used by Content.ParseRaw() for creating the correct type of struct.
var TypeMap = map[Type]reflect.Type{
	EventMessage: reflect.TypeOf(MessageEventContent{}),

	ToDeviceVerificationRequest: reflect.TypeOf(VerificationRequestEventContent{}),
	ToDeviceVerificationReady:   reflect.TypeOf(VerificationReadyEventContent{}),
	ToDeviceVerificationStart:   reflect.TypeOf(VerificationStartEventContent{}),
	ToDeviceVerificationAccept:  reflect.TypeOf(VerificationAcceptEventContent{}),
	ToDeviceVerificationKey:     reflect.TypeOf(VerificationKeyEventContent{}),
	ToDeviceVerificationMAC:     reflect.TypeOf(VerificationMacEventContent{}),
	ToDeviceVerificationCancel:  reflect.TypeOf(VerificationCancelEventContent{}),
	ToDeviceVerificationDone:    reflect.TypeOf(VerificationDoneEventContent{}),

	InRoomVerificationReady:  reflect.TypeOf(VerificationReadyEventContent{}),
	InRoomVerificationStart:  reflect.TypeOf(VerificationStartEventContent{}),
	InRoomVerificationAccept: reflect.TypeOf(VerificationAcceptEventContent{}),
	InRoomVerificationKey:    reflect.TypeOf(VerificationKeyEventContent{}),
	InRoomVerificationMAC:    reflect.TypeOf(VerificationMacEventContent{}),
	InRoomVerificationCancel: reflect.TypeOf(VerificationCancelEventContent{}),
	InRoomVerificationDone:   reflect.TypeOf(VerificationDoneEventContent{}),
}

// Content stores the content of an event.
//
// By default, the content is only stored as raw JSON. Call ParseRaw with the
// correct event type to parse the content into a struct, which you can then
// access from Parsed or via the AsX helper functions.
type Content struct {
	VeryRaw json.RawMessage
	Raw     map[string]any
	Parsed  any
}

var ErrContentAlreadyParsed = errors.New("content is already parsed")

func (content *Content) UnmarshalJSON(data []byte) error {
	content.VeryRaw = data
	return json.Unmarshal(data, &content.Raw)
}

func (content *Content) MarshalJSON() ([]byte, error) {
	if content.Parsed == nil {
		if content.Raw != nil {
			return json.Marshal(content.Raw)
		} else if content.VeryRaw != nil {
			return content.VeryRaw, nil
		}
		return []byte("null"), nil
	}
	data, err := json.Marshal(content.Parsed)
	if err != nil {
		return nil, err
	}
	// Carry over raw fields that the parsed struct doesn't have, so that
	// unrecognized fields survive a parse-reserialize cycle.
	for key, value := range content.Raw {
		path := rawPath(key)
		if !gjson.GetBytes(data, path).Exists() {
			data, err = sjson.SetBytes(data, path, value)
			if err != nil {
				return nil, err
			}
		}
	}
	return data, nil
}

// rawPath escapes a JSON object key for use as a gjson/sjson path, so that
// keys like m.relates_to aren't treated as nested paths.
func rawPath(key string) string {
	return strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`).Replace(key)
}

func IsUnsupportedContentType(err error) bool {
	return strings.HasPrefix(err.Error(), "unsupported content type ")
}

func (content *Content) ParseRaw(evtType Type) error {
	if content.Parsed != nil {
		return ErrContentAlreadyParsed
	}
	structType, ok := TypeMap[evtType]
	if !ok {
		return fmt.Errorf("unsupported content type %s", evtType.Repr())
	}
	content.Parsed = reflect.New(structType).Interface()
	return json.Unmarshal(content.VeryRaw, &content.Parsed)
}

// Helper cast functions below

func (content *Content) AsMessage() *MessageEventContent {
	casted, ok := content.Parsed.(*MessageEventContent)
	if !ok {
		return &MessageEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationRequest() *VerificationRequestEventContent {
	casted, ok := content.Parsed.(*VerificationRequestEventContent)
	if !ok {
		return &VerificationRequestEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationReady() *VerificationReadyEventContent {
	casted, ok := content.Parsed.(*VerificationReadyEventContent)
	if !ok {
		return &VerificationReadyEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationStart() *VerificationStartEventContent {
	casted, ok := content.Parsed.(*VerificationStartEventContent)
	if !ok {
		return &VerificationStartEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationAccept() *VerificationAcceptEventContent {
	casted, ok := content.Parsed.(*VerificationAcceptEventContent)
	if !ok {
		return &VerificationAcceptEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationKey() *VerificationKeyEventContent {
	casted, ok := content.Parsed.(*VerificationKeyEventContent)
	if !ok {
		return &VerificationKeyEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationMac() *VerificationMacEventContent {
	casted, ok := content.Parsed.(*VerificationMacEventContent)
	if !ok {
		return &VerificationMacEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationCancel() *VerificationCancelEventContent {
	casted, ok := content.Parsed.(*VerificationCancelEventContent)
	if !ok {
		return &VerificationCancelEventContent{}
	}
	return casted
}
func (content *Content) AsVerificationDone() *VerificationDoneEventContent {
	casted, ok := content.Parsed.(*VerificationDoneEventContent)
	if !ok {
		return &VerificationDoneEventContent{}
	}
	return casted
}
