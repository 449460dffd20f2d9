package boundary

import (
	goerrors "errors"

	"github.com/kochabx/ecies/core/crypto/ecies"
	"github.com/kochabx/ecies/errors"
)

// ErrCallFailed is the only error a collapsed boundary returns.
var ErrCallFailed = goerrors.New("ecies: call failed")

// Kind classifies a boundary failure.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidKey
	KindDecode
	KindMalformedEnvelope
	KindAuthenticationFailure
	KindEncryptionFailure
	KindEntropyFailure
	KindInternal
)

var kindNames = [...]string{
	KindNone:                  "ok",
	KindInvalidKey:            "invalid_key",
	KindDecode:                "decode_error",
	KindMalformedEnvelope:     "malformed_envelope",
	KindAuthenticationFailure: "authentication_failure",
	KindEncryptionFailure:     "encryption_failure",
	KindEntropyFailure:        "entropy_failure",
	KindInternal:              "internal",
}

var kindMessages = [...]string{
	KindInvalidKey:            "invalid key",
	KindDecode:                "input could not be decoded",
	KindMalformedEnvelope:     "malformed ciphertext",
	KindAuthenticationFailure: "decryption failed",
	KindEncryptionFailure:     "encryption failed",
	KindEntropyFailure:        "random source unavailable",
	KindInternal:              "internal error",
}

var kindCodes = [...]int{
	KindInvalidKey:            errors.CodeInvalidKey,
	KindDecode:                errors.CodeDecode,
	KindMalformedEnvelope:     errors.CodeMalformedEnvelope,
	KindAuthenticationFailure: errors.CodeAuthenticationFailure,
	KindEncryptionFailure:     errors.CodeEncryptionFailure,
	KindEntropyFailure:        errors.CodeEntropyFailure,
	KindInternal:              errors.CodeInternal,
}

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInternal]
	}
	return kindNames[k]
}

// Code returns the structured error code for k, 0 for KindNone.
func (k Kind) Code() int {
	if k < 0 || int(k) >= len(kindCodes) {
		return errors.CodeInternal
	}
	return kindCodes[k]
}

// KindOf classifies err. nil is KindNone; anything unrecognised is
// KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case goerrors.Is(err, ErrDecode):
		return KindDecode
	case goerrors.Is(err, ecies.ErrMalformedEnvelope):
		return KindMalformedEnvelope
	case goerrors.Is(err, ecies.ErrAuthenticationFailure):
		return KindAuthenticationFailure
	case goerrors.Is(err, ecies.ErrInvalidKey):
		return KindInvalidKey
	case goerrors.Is(err, ecies.ErrEntropyFailure):
		return KindEntropyFailure
	case goerrors.Is(err, ecies.ErrEncryptionFailure):
		return KindEncryptionFailure
	}

	// Errors already converted by a detailed boundary.
	var coded *errors.Error
	if goerrors.As(err, &coded) {
		for k, code := range kindCodes {
			if code != 0 && code == coded.Code {
				return Kind(k)
			}
		}
	}

	return KindInternal
}

// report converts an internal error according to the policy. Detailed errors
// carry the kind as code and metadata and keep err as cause so errors.Is
// still matches engine sentinels.
func report(op string, err error, detail bool) error {
	if err == nil {
		return nil
	}
	if !detail {
		return ErrCallFailed
	}
	if op == OpDecrypt && (goerrors.Is(err, ecies.ErrInvalidEphemeralKey) || goerrors.Is(err, ecies.ErrAuthenticationFailure)) {
		// a tampered ephemeral key reads the same as a wrong secret key
		err = ecies.ErrAuthenticationFailure
	}

	kind := KindOf(err)
	return errors.New(kind.Code(), "%s", kindMessages[kind]).
		WithMetadata(map[string]string{"op": op, "kind": kind.String()}).
		WithCause(err)
}
