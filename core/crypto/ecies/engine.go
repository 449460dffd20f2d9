package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Engine performs ECIES operations under one immutable Config.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	config Config
	random io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom replaces crypto/rand as the entropy source. The reader must be
// safe for concurrent use if the engine is shared.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.random = r
		}
	}
}

// New creates an Engine. Zero fields of config take their defaults.
func New(config Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: config.withDefaults(),
		random: rand.Reader,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// defaultEngine backs the package-level helpers.
var defaultEngine = Default()

// Default returns an Engine using DefaultConfig and crypto/rand.
func Default() *Engine {
	return &Engine{
		config: DefaultConfig(),
		random: rand.Reader,
	}
}

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() Config {
	return e.config
}

// GenerateKey generates a new key pair.
func (e *Engine) GenerateKey() (*PrivateKey, error) {
	return generatePrivateKey(e.random)
}

// newAEAD builds the configured AEAD around key.
func (e *Engine) newAEAD(key []byte) (cipher.AEAD, error) {
	switch e.config.Cipher {
	case CipherXChaCha20Poly1305:
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create XChaCha20-Poly1305: %v", err)
		}
		return aead, nil
	default:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %v", err)
		}
		aead, err := cipher.NewGCMWithNonceSize(block, e.config.NonceLength)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %v", err)
		}
		return aead, nil
	}
}
