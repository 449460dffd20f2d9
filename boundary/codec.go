package boundary

import (
	"encoding/base64"
	"encoding/hex"
	goerrors "errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/kochabx/ecies/core/crypto/ecies"
)

// ErrDecode is returned when hex or base64 text does not decode to the
// expected shape.
var ErrDecode = goerrors.New("boundary: decode error")

const (
	// SecretKeyHexLen is the length of an encoded secret key.
	SecretKeyHexLen = 2 * ecies.SecretKeySize

	// PublicKeyHexLen is the length of an encoded (compressed) public key.
	PublicKeyHexLen = 2 * ecies.CompressedPublicKeyBytes
)

// EncodeSecretKey returns the 64-character lowercase hex form of priv.
func EncodeSecretKey(priv *ecies.PrivateKey) string {
	b := priv.Bytes()
	defer wipe(b)
	return hex.EncodeToString(b)
}

// DecodeSecretKey parses a 64-character hex secret key. Upper-case digits
// are accepted. Text that is not hex or has the wrong length yields ErrDecode;
// a scalar outside [1, n-1] yields ecies.ErrInvalidKey.
func DecodeSecretKey(s string) (*ecies.PrivateKey, error) {
	if len(s) != SecretKeyHexLen {
		return nil, fmt.Errorf("%w: secret key must be %d hex characters, got %d", ErrDecode, SecretKeyHexLen, len(s))
	}

	b, err := hex.DecodeString(s)
	defer wipe(b)
	if err != nil {
		return nil, fmt.Errorf("%w: secret key is not hex", ErrDecode)
	}

	return ecies.ParsePrivateKey(b)
}

// EncodePublicKey returns the 66-character hex form of the compressed point.
func EncodePublicKey(pub *ecies.PublicKey) string {
	return pub.Hex(true)
}

// DecodePublicKey parses a hex public key in compressed (66 characters) or
// uncompressed (130 characters) SEC1 form.
func DecodePublicKey(s string) (*ecies.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not hex", ErrDecode)
	}
	if len(b) != ecies.CompressedPublicKeyBytes && len(b) != ecies.PublicKeyBytes {
		return nil, fmt.Errorf("%w: public key must be %d or %d bytes, got %d",
			ErrDecode, ecies.CompressedPublicKeyBytes, ecies.PublicKeyBytes, len(b))
	}

	return ecies.ParsePublicKey(b)
}

// EncodeCiphertext returns the standard padded base64 form of an envelope.
func EncodeCiphertext(envelope []byte) string {
	return base64.StdEncoding.EncodeToString(envelope)
}

// DecodeCiphertext parses standard padded base64. URL-safe alphabets,
// missing padding and embedded line breaks are rejected.
func DecodeCiphertext(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("%w: ciphertext contains line breaks", ErrDecode)
	}

	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not standard base64", ErrDecode)
	}
	return b, nil
}

// wipe zeroes decoded secret material.
func wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
