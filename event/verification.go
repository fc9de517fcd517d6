// Copyright (c) 2024 Tulir Asokan
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package event

import (
	"errors"
	"fmt"
	"time"

	"go.mau.fi/util/jsonbytes"
	"go.mau.fi/util/jsontime"

	"go.mau.fi/keyverification/id"
)

// ErrUnknownVariant is returned when parsing a verification enum from a
// string that isn't one of the known wire values. The wire values are
// case-sensitive, so this is also returned for wrong-case input.
var ErrUnknownVariant = errors.New("unknown value")

// VerificationMethod is a method for interactively verifying that two
// devices have the same cross-signing and device keys.
// https://spec.matrix.org/v1.10/client-server-api/#key-verification-framework
type VerificationMethod string

const (
	VerificationMethodSAS VerificationMethod = "m.sas.v1"
)

func ParseVerificationMethod(s string) (VerificationMethod, error) {
	switch method := VerificationMethod(s); method {
	case VerificationMethodSAS:
		return method, nil
	default:
		return "", fmt.Errorf("%w %q for verification method", ErrUnknownVariant, s)
	}
}

func (vm VerificationMethod) String() string {
	return string(vm)
}

func (vm VerificationMethod) MarshalText() ([]byte, error) {
	return []byte(vm), nil
}

func (vm *VerificationMethod) UnmarshalText(data []byte) error {
	parsed, err := ParseVerificationMethod(string(data))
	if err != nil {
		return err
	}
	*vm = parsed
	return nil
}

// KeyAgreementProtocol is a key agreement protocol for deriving the shared
// secret of a SAS verification.
type KeyAgreementProtocol string

const (
	KeyAgreementProtocolCurve25519           KeyAgreementProtocol = "curve25519"
	KeyAgreementProtocolCurve25519HKDFSHA256 KeyAgreementProtocol = "curve25519-hkdf-sha256"
)

func ParseKeyAgreementProtocol(s string) (KeyAgreementProtocol, error) {
	switch proto := KeyAgreementProtocol(s); proto {
	case KeyAgreementProtocolCurve25519, KeyAgreementProtocolCurve25519HKDFSHA256:
		return proto, nil
	default:
		return "", fmt.Errorf("%w %q for key agreement protocol", ErrUnknownVariant, s)
	}
}

func (kap KeyAgreementProtocol) String() string {
	return string(kap)
}

func (kap KeyAgreementProtocol) MarshalText() ([]byte, error) {
	return []byte(kap), nil
}

func (kap *KeyAgreementProtocol) UnmarshalText(data []byte) error {
	parsed, err := ParseKeyAgreementProtocol(string(data))
	if err != nil {
		return err
	}
	*kap = parsed
	return nil
}

// VerificationHashMethod is a hash algorithm used for the commitment of a
// SAS verification.
type VerificationHashMethod string

const (
	VerificationHashMethodSHA256 VerificationHashMethod = "sha256"
)

func ParseVerificationHashMethod(s string) (VerificationHashMethod, error) {
	switch hash := VerificationHashMethod(s); hash {
	case VerificationHashMethodSHA256:
		return hash, nil
	default:
		return "", fmt.Errorf("%w %q for hash method", ErrUnknownVariant, s)
	}
}

func (vhm VerificationHashMethod) String() string {
	return string(vhm)
}

func (vhm VerificationHashMethod) MarshalText() ([]byte, error) {
	return []byte(vhm), nil
}

func (vhm *VerificationHashMethod) UnmarshalText(data []byte) error {
	parsed, err := ParseVerificationHashMethod(string(data))
	if err != nil {
		return err
	}
	*vhm = parsed
	return nil
}

// MACMethod is a message authentication code construction used for verifying
// the device keys at the end of a SAS verification.
type MACMethod string

const (
	MACMethodHKDFHMACSHA256 MACMethod = "hkdf-hmac-sha256"
	MACMethodHMACSHA256     MACMethod = "hmac-sha256"
)

func ParseMACMethod(s string) (MACMethod, error) {
	switch mac := MACMethod(s); mac {
	case MACMethodHKDFHMACSHA256, MACMethodHMACSHA256:
		return mac, nil
	default:
		return "", fmt.Errorf("%w %q for MAC method", ErrUnknownVariant, s)
	}
}

func (mm MACMethod) String() string {
	return string(mm)
}

func (mm MACMethod) MarshalText() ([]byte, error) {
	return []byte(mm), nil
}

func (mm *MACMethod) UnmarshalText(data []byte) error {
	parsed, err := ParseMACMethod(string(data))
	if err != nil {
		return err
	}
	*mm = parsed
	return nil
}

// SASMethod is a way of representing the short authentication string to the
// user for comparison.
type SASMethod string

const (
	SASMethodDecimal SASMethod = "decimal"
	SASMethodEmoji   SASMethod = "emoji"
)

func ParseSASMethod(s string) (SASMethod, error) {
	switch sas := SASMethod(s); sas {
	case SASMethodDecimal, SASMethodEmoji:
		return sas, nil
	default:
		return "", fmt.Errorf("%w %q for SAS method", ErrUnknownVariant, s)
	}
}

func (sm SASMethod) String() string {
	return string(sm)
}

func (sm SASMethod) MarshalText() ([]byte, error) {
	return []byte(sm), nil
}

func (sm *SASMethod) UnmarshalText(data []byte) error {
	parsed, err := ParseSASMethod(string(data))
	if err != nil {
		return err
	}
	*sm = parsed
	return nil
}

// VerificationCancelCode is a machine-readable reason for cancelling a
// verification flow. Unlike the other enums in this package, the set of
// cancel codes is open: peers may send custom codes and a cancellation must
// never fail to parse, so there's no validating parse function for these.
type VerificationCancelCode string

const (
	VerificationCancelCodeUser                 VerificationCancelCode = "m.user"
	VerificationCancelCodeTimeout              VerificationCancelCode = "m.timeout"
	VerificationCancelCodeUnknownTransaction   VerificationCancelCode = "m.unknown_transaction"
	VerificationCancelCodeUnknownMethod        VerificationCancelCode = "m.unknown_method"
	VerificationCancelCodeUnexpectedMessage    VerificationCancelCode = "m.unexpected_message"
	VerificationCancelCodeKeyMismatch          VerificationCancelCode = "m.key_mismatch"
	VerificationCancelCodeUserMismatch         VerificationCancelCode = "m.user_mismatch"
	VerificationCancelCodeInvalidMessage       VerificationCancelCode = "m.invalid_message"
	VerificationCancelCodeAccepted             VerificationCancelCode = "m.accepted"
	VerificationCancelCodeMismatchedCommitment VerificationCancelCode = "m.mismatched_commitment"
	VerificationCancelCodeMismatchedSAS        VerificationCancelCode = "m.mismatched_sas"
)

func (vcc VerificationCancelCode) String() string {
	return string(vcc)
}

// VerificationTransactionable is an event content that is tied to a specific
// verification flow by an explicit transaction ID.
type VerificationTransactionable interface {
	GetTransactionID() id.VerificationTransactionID
	SetTransactionID(id.VerificationTransactionID)
}

// ToDeviceVerificationEvent contains the fields shared by all of the
// verification events when they're sent as to-device events.
type ToDeviceVerificationEvent struct {
	// TransactionID is an opaque identifier for the verification flow. It
	// must be unique with respect to the devices involved.
	TransactionID id.VerificationTransactionID `json:"transaction_id,omitempty"`
}

func (ve *ToDeviceVerificationEvent) GetTransactionID() id.VerificationTransactionID {
	return ve.TransactionID
}

func (ve *ToDeviceVerificationEvent) SetTransactionID(transactionID id.VerificationTransactionID) {
	ve.TransactionID = transactionID
}

// InRoomVerificationEvent contains the fields shared by all of the
// verification events when they're sent as in-room events. The transaction ID
// is not present in-room; the flow is identified by a reference relation to
// the event ID of the verification request instead.
type InRoomVerificationEvent struct {
	RelatesTo *RelatesTo `json:"m.relates_to,omitempty"`
}

func (ve *InRoomVerificationEvent) GetRelatesTo() *RelatesTo {
	if ve.RelatesTo == nil {
		ve.RelatesTo = &RelatesTo{}
	}
	return ve.RelatesTo
}

func (ve *InRoomVerificationEvent) OptionalGetRelatesTo() *RelatesTo {
	return ve.RelatesTo
}

func (ve *InRoomVerificationEvent) SetRelatesTo(rel *RelatesTo) {
	ve.RelatesTo = rel
}

// VerificationRequestEventContent represents the content of an
// m.key.verification.request to-device event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationrequest
type VerificationRequestEventContent struct {
	ToDeviceVerificationEvent
	// FromDevice is the device ID which is initiating the request.
	FromDevice id.DeviceID `json:"from_device"`
	// Methods is a list of the verification methods supported by the sender.
	Methods []VerificationMethod `json:"methods"`
	// Timestamp is the time at which the request was made.
	Timestamp jsontime.UnixMilli `json:"timestamp,omitempty"`
}

// VerificationRequestEventContentFromMessage converts an m.room.message event
// with the msgtype m.key.verification.request to the equivalent to-device
// event content, using the event ID as the transaction ID.
func VerificationRequestEventContentFromMessage(evt *Event) *VerificationRequestEventContent {
	content := evt.Content.AsMessage()
	return &VerificationRequestEventContent{
		ToDeviceVerificationEvent: ToDeviceVerificationEvent{
			TransactionID: id.VerificationTransactionID(evt.ID),
		},
		FromDevice: content.FromDevice,
		Methods:    content.Methods,
		Timestamp:  jsontime.UM(time.UnixMilli(evt.Timestamp)),
	}
}

// VerificationReadyEventContent represents the content of an
// m.key.verification.ready event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationready
type VerificationReadyEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
	// FromDevice is the device ID which accepted the request.
	FromDevice id.DeviceID `json:"from_device"`
	// Methods is a list of the verification methods supported by the sender.
	Methods []VerificationMethod `json:"methods"`
}

// VerificationStartEventContent represents the content of an
// m.key.verification.start event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationstart
type VerificationStartEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
	// FromDevice is the device ID which is initiating the process.
	FromDevice id.DeviceID `json:"from_device"`
	// Method is the verification method to use.
	Method VerificationMethod `json:"method"`
	// NextMethod is the verification method to use after scanning a QR code.
	// Only present if this event's method is m.reciprocate.v1.
	NextMethod VerificationMethod `json:"next_method,omitempty"`
	// Hashes are the hash methods the sending device understands.
	Hashes []VerificationHashMethod `json:"hashes,omitempty"`
	// KeyAgreementProtocols is the list of key agreement protocols the
	// sending device understands.
	KeyAgreementProtocols []KeyAgreementProtocol `json:"key_agreement_protocols,omitempty"`
	// MessageAuthenticationCodes is a list of the MAC methods that the
	// sending device understands.
	MessageAuthenticationCodes []MACMethod `json:"message_authentication_codes,omitempty"`
	// ShortAuthenticationString is a list of SAS methods the sending device
	// (and the sender's client) understands.
	ShortAuthenticationString []SASMethod `json:"short_authentication_string,omitempty"`
}

// VerificationAcceptEventContent represents the content of an
// m.key.verification.accept event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationaccept
type VerificationAcceptEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
	// Commitment is the hash of the unpadded base64 representation of QB,
	// concatenated with the canonical JSON representation of the content of
	// the m.key.verification.start message.
	Commitment jsonbytes.UnpaddedBytes `json:"commitment"`
	// Hash is the hash method the device is choosing to use.
	Hash VerificationHashMethod `json:"hash"`
	// KeyAgreementProtocol is the key agreement protocol the device is
	// choosing to use.
	KeyAgreementProtocol KeyAgreementProtocol `json:"key_agreement_protocol"`
	// MessageAuthenticationCode is the MAC method the device is choosing to
	// use.
	MessageAuthenticationCode MACMethod `json:"message_authentication_code"`
	// ShortAuthenticationString is a list of SAS methods both devices (and
	// both users' clients) understand.
	ShortAuthenticationString []SASMethod `json:"short_authentication_string"`
}

// VerificationKeyEventContent represents the content of an
// m.key.verification.key event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationkey
type VerificationKeyEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
	// Key is the device's ephemeral public key.
	Key jsonbytes.UnpaddedBytes `json:"key"`
}

// VerificationMacEventContent represents the content of an
// m.key.verification.mac event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationmac
type VerificationMacEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
	// Keys is the MAC of the comma-separated, sorted list of key IDs given
	// in the MAC property.
	Keys jsonbytes.UnpaddedBytes `json:"keys"`
	// MAC is a map of the key ID to the MAC of the key, using the algorithm
	// in the verification process.
	MAC map[id.KeyID]jsonbytes.UnpaddedBytes `json:"mac"`
}

// VerificationCancelEventContent represents the content of an
// m.key.verification.cancel event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationcancel
type VerificationCancelEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
	// Code is the error code for why the process/request was cancelled by
	// the user.
	Code VerificationCancelCode `json:"code"`
	// Reason is a human readable description of the code.
	Reason string `json:"reason"`
}

// VerificationDoneEventContent represents the content of an
// m.key.verification.done event.
// https://spec.matrix.org/v1.10/client-server-api/#mkeyverificationdone
type VerificationDoneEventContent struct {
	ToDeviceVerificationEvent
	InRoomVerificationEvent
}
