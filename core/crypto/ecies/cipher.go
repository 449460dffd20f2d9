package ecies

import (
	"errors"
	"fmt"
	"io"

	"github.com/kochabx/ecies/core/crypto/ecies/internal"
)

// Encrypt seals plaintext to the recipient with the default engine.
func Encrypt(recipientPublicKey *PublicKey, plaintext []byte) ([]byte, error) {
	return defaultEngine.Encrypt(recipientPublicKey, plaintext)
}

// Decrypt opens an envelope produced by Encrypt with the default engine.
func Decrypt(privateKey *PrivateKey, ciphertext []byte) ([]byte, error) {
	return defaultEngine.Decrypt(privateKey, ciphertext)
}

// Encrypt seals plaintext to the recipient.
//
// The encryption process:
//  1. Generate an ephemeral key pair
//  2. Derive the AEAD key with HKDF-SHA256 over the ephemeral key and the shared point
//  3. Draw a random nonce
//  4. Seal the plaintext
//  5. Return: [ephemeral_public_key || nonce || tag || ciphertext]
//
// An empty plaintext is valid and yields an envelope of exactly Overhead bytes.
func (e *Engine) Encrypt(recipientPublicKey *PublicKey, plaintext []byte) ([]byte, error) {
	if recipientPublicKey == nil || recipientPublicKey.key == nil {
		return nil, ErrPublicKeyEmpty
	}

	ephemeralKey, err := e.GenerateKey()
	if err != nil {
		return nil, err
	}
	defer ephemeralKey.Destroy()

	key, err := e.encapsulate(ephemeralKey, recipientPublicKey)
	if err != nil {
		return nil, err
	}
	defer internal.Wipe(key)

	aead, err := e.newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailure, err)
	}

	ephemeralPubKey := ephemeralKey.Public().Bytes(e.config.EphemeralKeyCompressed)
	nonceSize := aead.NonceSize()
	headerSize := len(ephemeralPubKey) + nonceSize + TagSize

	result := make([]byte, headerSize+len(plaintext))
	offset := copy(result, ephemeralPubKey)

	nonce := result[offset : offset+nonceSize]
	if _, err := io.ReadFull(e.random, nonce); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %v", ErrEntropyFailure, err)
	}
	offset += nonceSize

	// Seal emits ciphertext||tag; the envelope carries tag||ciphertext.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	if len(sealed) != len(plaintext)+TagSize {
		return nil, fmt.Errorf("%w: unexpected sealed length %d", ErrEncryptionFailure, len(sealed))
	}
	offset += copy(result[offset:], sealed[len(plaintext):])
	copy(result[offset:], sealed[:len(plaintext)])

	return result, nil
}

// Decrypt opens an envelope produced by Encrypt under the same Config.
//
// Inputs shorter than Overhead fail with ErrMalformedEnvelope. An ephemeral
// key that is not a canonical encoding of a curve point fails with
// ErrInvalidEphemeralKey, which also matches ErrMalformedEnvelope. Any failed
// tag check, whether
// caused by tampering or by the wrong recipient key, fails with
// ErrAuthenticationFailure.
func (e *Engine) Decrypt(privateKey *PrivateKey, ciphertext []byte) ([]byte, error) {
	if privateKey == nil || privateKey.key == nil {
		return nil, ErrPrivateKeyEmpty
	}

	ephemeralSize := e.config.ephemeralKeySize()
	nonceSize := e.config.NonceLength
	if len(ciphertext) < ephemeralSize+nonceSize+TagSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d",
			ErrMalformedEnvelope, ephemeralSize+nonceSize+TagSize, len(ciphertext))
	}

	offset := 0
	ephemeralBytes := ciphertext[offset : offset+ephemeralSize]
	ephemeralPublicKey, err := ParsePublicKey(ephemeralBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEphemeralKey, err)
	}
	offset += ephemeralSize

	nonce := ciphertext[offset : offset+nonceSize]
	offset += nonceSize

	tag := ciphertext[offset : offset+TagSize]
	offset += TagSize

	encryptedData := ciphertext[offset:]

	key, err := e.decapsulate(ephemeralBytes, ephemeralPublicKey, privateKey)
	if err != nil {
		if errors.Is(err, ErrInvalidKey) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEphemeralKey, err)
		}
		return nil, err
	}
	defer internal.Wipe(key)

	aead, err := e.newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailure, err)
	}

	ciphertextWithTag := getScratch(len(encryptedData) + len(tag))
	ciphertextWithTag = append(ciphertextWithTag, encryptedData...)
	ciphertextWithTag = append(ciphertextWithTag, tag...)
	defer putScratch(ciphertextWithTag)

	plaintext, err := aead.Open(nil, nonce, ciphertextWithTag, nil)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}
