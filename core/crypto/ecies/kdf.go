package ecies

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/kochabx/ecies/core/crypto/ecies/internal"
)

// deriveKey derives the AEAD key with HKDF-SHA256 over
// ephemeralPublicKey || sharedPoint, with no salt and no info.
func deriveKey(ephemeralPublicKey, sharedPoint []byte) ([]byte, error) {
	ikm := getScratch(len(ephemeralPublicKey) + len(sharedPoint))
	ikm = append(ikm, ephemeralPublicKey...)
	ikm = append(ikm, sharedPoint...)
	defer putScratch(ikm)

	kdfReader := hkdf.New(sha256.New, ikm, nil, nil)

	key := make([]byte, SymmetricKeySize)
	if _, err := io.ReadFull(kdfReader, key); err != nil {
		return nil, fmt.Errorf("%w: key derivation: %v", ErrEncryptionFailure, err)
	}

	return key, nil
}

// encapsulate is the sender side: it derives the envelope key from a fresh
// ephemeral secret and the recipient's public key.
func (e *Engine) encapsulate(ephemeral *PrivateKey, recipient *PublicKey) ([]byte, error) {
	point, err := sharedPoint(ephemeral, recipient)
	if err != nil {
		return nil, err
	}

	compressed := e.config.HKDFKeyCompressed
	shared := serializePoint(point, compressed)
	defer internal.Wipe(shared)

	return deriveKey(ephemeral.Public().Bytes(compressed), shared)
}

// decapsulate is the recipient side: it derives the same key from the
// ephemeral public key carried in the envelope. raw is that key as it
// appears on the wire and goes into the KDF unchanged when its encoding
// matches the configured one.
func (e *Engine) decapsulate(raw []byte, ephemeral *PublicKey, recipient *PrivateKey) ([]byte, error) {
	point, err := sharedPoint(recipient, ephemeral)
	if err != nil {
		return nil, err
	}

	compressed := e.config.HKDFKeyCompressed
	shared := serializePoint(point, compressed)
	defer internal.Wipe(shared)

	if compressed != (len(raw) == CompressedPublicKeyBytes) {
		raw = ephemeral.Bytes(compressed)
	}
	return deriveKey(raw, shared)
}
