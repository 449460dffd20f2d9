package ecies

import "errors"

// Key-related errors
var (
	// ErrInvalidKey indicates malformed or out-of-range key material
	ErrInvalidKey = errors.New("ecies: invalid key")

	// ErrPrivateKeyEmpty indicates that the private key is nil or destroyed
	ErrPrivateKeyEmpty = wrapKind(ErrInvalidKey, "private key is empty")

	// ErrPublicKeyEmpty indicates that the public key is nil
	ErrPublicKeyEmpty = wrapKind(ErrInvalidKey, "public key is empty")
)

// Encryption/Decryption errors
var (
	// ErrEncryptionFailure indicates a cipher or key derivation failure
	ErrEncryptionFailure = errors.New("ecies: encryption failed")

	// ErrMalformedEnvelope indicates that the envelope is too short or structurally invalid
	ErrMalformedEnvelope = errors.New("ecies: malformed envelope")

	// ErrInvalidEphemeralKey indicates that the envelope's ephemeral key is
	// not a canonical encoding of a curve point. It matches ErrMalformedEnvelope.
	ErrInvalidEphemeralKey = wrapKind(ErrMalformedEnvelope, "invalid ephemeral public key")

	// ErrAuthenticationFailure indicates that the authentication tag did not verify.
	// A wrong recipient key and a tampered envelope both end here.
	ErrAuthenticationFailure = errors.New("ecies: authentication failed")
)

// Environment errors
var (
	// ErrEntropyFailure indicates that the random source could not be read
	ErrEntropyFailure = errors.New("ecies: entropy source unavailable")

	// ErrInvalidConfig indicates an unsupported engine configuration
	ErrInvalidConfig = errors.New("ecies: invalid config")
)

// kindError keeps a specific message while matching its kind with errors.Is.
type kindError struct {
	kind error
	msg  string
}

func wrapKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string {
	return "ecies: " + e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}
