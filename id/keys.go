// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package id

import (
	"strings"
)

// KeyAlgorithm is the identifier of a device key signing or encryption algorithm.
// https://spec.matrix.org/v1.10/client-server-api/#key-algorithms
type KeyAlgorithm string

const (
	KeyAlgorithmCurve25519       KeyAlgorithm = "curve25519"
	KeyAlgorithmEd25519          KeyAlgorithm = "ed25519"
	KeyAlgorithmSignedCurve25519 KeyAlgorithm = "signed_curve25519"
)

func (alg KeyAlgorithm) String() string {
	return string(alg)
}

// A KeyID is a string formatted as <algorithm>:<key ID> that is used as the
// key in device key and MAC mappings.
type KeyID string

func NewKeyID(algorithm KeyAlgorithm, keyID string) KeyID {
	return KeyID(string(algorithm) + ":" + keyID)
}

func (keyID KeyID) Parse() (KeyAlgorithm, string) {
	algorithm, id, _ := strings.Cut(string(keyID), ":")
	return KeyAlgorithm(algorithm), id
}

func (keyID KeyID) String() string {
	return string(keyID)
}
