// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event

import (
	"go.mau.fi/keyverification/id"
)

type RelationType string

const (
	RelReference RelationType = "m.reference"
)

// RelatesTo is the m.relates_to field of an event. The in-room verification
// events use a reference relation pointing at the verification request to tie
// the messages of one flow together.
type RelatesTo struct {
	Type    RelationType `json:"rel_type,omitempty"`
	EventID id.EventID   `json:"event_id,omitempty"`
}

type Relatable interface {
	GetRelatesTo() *RelatesTo
	OptionalGetRelatesTo() *RelatesTo
	SetRelatesTo(rel *RelatesTo)
}

func (rel *RelatesTo) GetReferenceID() id.EventID {
	if rel == nil || rel.Type != RelReference {
		return ""
	}
	return rel.EventID
}
