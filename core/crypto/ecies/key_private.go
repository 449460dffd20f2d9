package ecies

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/kochabx/ecies/core/crypto/ecies/internal"
)

// PrivateKey is a secp256k1 secret scalar together with its public point.
type PrivateKey struct {
	publicKey *PublicKey
	key       *btcec.PrivateKey
}

// Public returns the public key corresponding to this private key.
func (priv *PrivateKey) Public() *PublicKey {
	if priv == nil {
		return nil
	}
	return priv.publicKey
}

// Bytes returns the 32-byte big-endian scalar. The caller owns the returned
// slice and should wipe it once done.
func (priv *PrivateKey) Bytes() []byte {
	if priv == nil || priv.key == nil {
		return nil
	}
	return priv.key.Serialize()
}

// ECDH returns the uncompressed shared point priv·pub. The result should not
// be used directly as a symmetric key.
func (priv *PrivateKey) ECDH(pub *PublicKey) ([]byte, error) {
	point, err := sharedPoint(priv, pub)
	if err != nil {
		return nil, err
	}
	return point.SerializeUncompressed(), nil
}

// Equals compares two private keys in constant time.
func (priv *PrivateKey) Equals(other *PrivateKey) bool {
	if priv == nil || other == nil {
		return priv == other
	}
	if priv.key == nil || other.key == nil {
		return priv.key == other.key
	}

	a, b := priv.key.Serialize(), other.key.Serialize()
	defer internal.Wipe(a)
	defer internal.Wipe(b)
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Destroy clears the scalar. The key must not be used afterwards.
func (priv *PrivateKey) Destroy() {
	if priv == nil || priv.key == nil {
		return
	}
	priv.key.Zero()
	priv.key = nil
}

// ParsePrivateKey parses a 32-byte big-endian scalar. The scalar must lie in
// [1, n-1] where n is the curve order.
func ParsePrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != SecretKeySize {
		return nil, fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrInvalidKey, SecretKeySize, len(b))
	}

	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(b)
	zero := scalar.IsZero()
	scalar.Zero()
	if overflow || zero {
		return nil, fmt.Errorf("%w: secret scalar out of range", ErrInvalidKey)
	}

	key, pub := btcec.PrivKeyFromBytes(b)
	return &PrivateKey{
		publicKey: &PublicKey{key: pub},
		key:       key,
	}, nil
}

// DerivePublicKey parses a serialized secret key and returns its public key.
// It is deterministic: equal inputs yield equal outputs.
func DerivePublicKey(secret []byte) (*PublicKey, error) {
	priv, err := ParsePrivateKey(secret)
	if err != nil {
		return nil, err
	}
	defer priv.Destroy()

	return priv.Public(), nil
}

// generatePrivateKey draws scalars from r until one is in range. Read errors
// are not retried.
func generatePrivateKey(r io.Reader) (*PrivateKey, error) {
	var buf [SecretKeySize]byte
	defer internal.Wipe(buf[:])

	for range maxKeyDraws {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEntropyFailure, err)
		}

		priv, err := ParsePrivateKey(buf[:])
		if err == nil {
			return priv, nil
		}
	}

	return nil, fmt.Errorf("%w: no valid scalar after %d draws", ErrEntropyFailure, maxKeyDraws)
}

// GenerateKey generates a new key pair with the default engine.
func GenerateKey() (*PrivateKey, error) {
	return defaultEngine.GenerateKey()
}
