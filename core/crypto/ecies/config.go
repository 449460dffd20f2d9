package ecies

import "fmt"

// Cipher names the authenticated symmetric cipher used inside the envelope.
type Cipher string

const (
	// CipherAESGCM is AES-256-GCM. It is the default.
	CipherAESGCM Cipher = "aes-256-gcm"

	// CipherXChaCha20Poly1305 is XChaCha20-Poly1305 with a 24-byte nonce.
	CipherXChaCha20Poly1305 Cipher = "xchacha20-poly1305"
)

// Config selects the envelope parameters. Both parties of an exchange must
// use the same Config; it is not recorded in the envelope.
type Config struct {
	// Cipher selects the AEAD. Empty means CipherAESGCM.
	Cipher Cipher `json:"cipher" mapstructure:"cipher" validate:"omitempty,oneof=aes-256-gcm xchacha20-poly1305"`

	// NonceLength is the AEAD nonce size in bytes. Zero picks the cipher default
	// (16 for AES-GCM, 24 for XChaCha20-Poly1305).
	NonceLength int `json:"nonce_length" mapstructure:"nonce_length" validate:"omitempty,oneof=12 16 24"`

	// EphemeralKeyCompressed writes the ephemeral public key as 33 bytes instead of 65.
	EphemeralKeyCompressed bool `json:"ephemeral_key_compressed" mapstructure:"ephemeral_key_compressed"`

	// HKDFKeyCompressed feeds compressed points into the key derivation.
	HKDFKeyCompressed bool `json:"hkdf_key_compressed" mapstructure:"hkdf_key_compressed"`
}

// DefaultConfig returns the configuration compatible with the reference
// secp256k1 ECIES wire format: uncompressed points, AES-256-GCM, 16-byte nonce.
func DefaultConfig() Config {
	return Config{
		Cipher:      CipherAESGCM,
		NonceLength: AESGCMNonceSize,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.Cipher == "" {
		c.Cipher = CipherAESGCM
	}
	if c.NonceLength == 0 {
		switch c.Cipher {
		case CipherXChaCha20Poly1305:
			c.NonceLength = XChaCha20NonceSize
		default:
			c.NonceLength = AESGCMNonceSize
		}
	}
	return c
}

// Validate reports whether the configuration, after defaults, is usable.
func (c Config) Validate() error {
	c = c.withDefaults()

	switch c.Cipher {
	case CipherAESGCM:
		if c.NonceLength != AESGCMNonceSize && c.NonceLength != AESGCMStandardNonceSize {
			return fmt.Errorf("%w: aes-256-gcm nonce length must be %d or %d, got %d",
				ErrInvalidConfig, AESGCMNonceSize, AESGCMStandardNonceSize, c.NonceLength)
		}
	case CipherXChaCha20Poly1305:
		if c.NonceLength != XChaCha20NonceSize {
			return fmt.Errorf("%w: xchacha20-poly1305 nonce length must be %d, got %d",
				ErrInvalidConfig, XChaCha20NonceSize, c.NonceLength)
		}
	default:
		return fmt.Errorf("%w: unsupported cipher %q", ErrInvalidConfig, c.Cipher)
	}

	return nil
}

// ephemeralKeySize is the encoded size of the ephemeral key inside an envelope.
func (c Config) ephemeralKeySize() int {
	if c.EphemeralKeyCompressed {
		return CompressedPublicKeyBytes
	}
	return PublicKeyBytes
}

// Overhead returns the number of bytes an envelope adds to its plaintext.
func (c Config) Overhead() int {
	c = c.withDefaults()
	return c.ephemeralKeySize() + c.NonceLength + TagSize
}
