package ecies

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/google/uuid"
)

// keyNamespace scopes public key fingerprints produced by PublicKey.ID.
var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kochabx/ecies#public-key"))

// PublicKey is a point on secp256k1.
type PublicKey struct {
	key *btcec.PublicKey
}

// Bytes returns the public key in SEC1 encoding.
// If compressed is true, returns 33 bytes (0x02/0x03 + X).
// If compressed is false, returns 65 bytes (0x04 + X + Y).
func (pub *PublicKey) Bytes(compressed bool) []byte {
	if pub == nil || pub.key == nil {
		return nil
	}
	if compressed {
		return pub.key.SerializeCompressed()
	}
	return pub.key.SerializeUncompressed()
}

// Hex returns the public key in hexadecimal encoding.
func (pub *PublicKey) Hex(compressed bool) string {
	return hex.EncodeToString(pub.Bytes(compressed))
}

// ID returns a stable fingerprint of the key (a name-based UUID over the
// compressed encoding). It identifies a key in logs without exposing it.
func (pub *PublicKey) ID() string {
	if pub == nil || pub.key == nil {
		return ""
	}
	return uuid.NewSHA1(keyNamespace, pub.key.SerializeCompressed()).String()
}

// Equals compares two public keys using constant-time comparison.
func (pub *PublicKey) Equals(other *PublicKey) bool {
	if pub == nil || other == nil {
		return pub == other
	}
	if pub.key == nil || other.key == nil {
		return false
	}
	return subtle.ConstantTimeCompare(pub.Bytes(false), other.Bytes(false)) == 1
}

// ParsePublicKey parses a 33-byte compressed or 65-byte uncompressed SEC1
// point and checks that it lies on the curve.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != CompressedPublicKeyBytes && len(b) != PublicKeyBytes {
		return nil, fmt.Errorf("%w: public key must be %d or %d bytes, got %d",
			ErrInvalidKey, CompressedPublicKeyBytes, PublicKeyBytes, len(b))
	}

	// btcec also takes the 0x06/0x07 hybrid form, which would give one point
	// three valid encodings.
	switch {
	case len(b) == CompressedPublicKeyBytes && b[0] != CompressedEvenTag && b[0] != CompressedOddTag,
		len(b) == PublicKeyBytes && b[0] != UncompressedPointTag:
		return nil, fmt.Errorf("%w: unsupported point prefix 0x%02x", ErrInvalidKey, b[0])
	}

	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return &PublicKey{key: key}, nil
}

// sharedPoint computes priv·pub.
func sharedPoint(priv *PrivateKey, pub *PublicKey) (*btcec.PublicKey, error) {
	if priv == nil || priv.key == nil {
		return nil, ErrPrivateKeyEmpty
	}
	if pub == nil || pub.key == nil {
		return nil, ErrPublicKeyEmpty
	}

	var point, result btcec.JacobianPoint
	pub.key.AsJacobian(&point)
	btcec.ScalarMultNonConst(&priv.key.Key, &point, &result)
	result.ToAffine()

	if result.X.IsZero() && result.Y.IsZero() {
		return nil, fmt.Errorf("%w: shared point is at infinity", ErrInvalidKey)
	}

	return btcec.NewPublicKey(&result.X, &result.Y), nil
}

func serializePoint(point *btcec.PublicKey, compressed bool) []byte {
	if compressed {
		return point.SerializeCompressed()
	}
	return point.SerializeUncompressed()
}
