// Package boundary adapts the ECIES engine to a foreign-call surface: text
// encodings for keys and envelopes, a uniform error policy and explicit
// ownership of buffers handed to the host.
package boundary

import (
	"time"

	"github.com/kochabx/ecies/config"
	"github.com/kochabx/ecies/core/crypto/ecies"
	"github.com/kochabx/ecies/log"
	"github.com/kochabx/ecies/metrics"
)

// Operation names used in logs, metrics and error metadata.
const (
	OpGenerateSecretKey = "generate_secret_key"
	OpDerivePublicKey   = "public_key_from"
	OpEncrypt           = "encrypt"
	OpDecrypt           = "decrypt"
)

// Adapter exposes the four boundary operations over text and byte values.
// It is immutable after New and safe for concurrent use.
type Adapter struct {
	engine  *ecies.Engine
	detail  bool
	logger  *log.Logger
	metrics *metrics.Boundary
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithEngine sets the engine. The default is ecies.Default().
func WithEngine(engine *ecies.Engine) Option {
	return func(a *Adapter) {
		if engine != nil {
			a.engine = engine
		}
	}
}

// WithErrorDetail selects the detailed error policy: failures are returned
// as *errors.Error carrying a per-kind code. Otherwise every failure is
// ErrCallFailed.
func WithErrorDetail(detail bool) Option {
	return func(a *Adapter) {
		a.detail = detail
	}
}

// WithLogger sets the logger. Calls are logged at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *metrics.Boundary) Option {
	return func(a *Adapter) {
		a.metrics = m
	}
}

// New creates an Adapter with the collapsed error policy and the default
// engine unless overridden.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		engine: ecies.Default(),
		logger: log.G,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromSettings builds the engine from s and applies the boundary policy.
// opts are applied last.
func NewFromSettings(s config.Settings, opts ...Option) (*Adapter, error) {
	engine, err := ecies.New(s.Engine)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithEngine(engine),
		WithErrorDetail(s.Boundary.ErrorDetail),
	}
	return New(append(base, opts...)...), nil
}

// NewFromFile loads settings from path, builds a logger from their log
// section and returns an Adapter that logs through it. Callers that replace
// a process-wide adapter usually install the logger globally as well.
func NewFromFile(path string, opts ...Option) (*Adapter, *log.Logger, error) {
	s, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger, err := log.NewFromConfig(s.Log)
	if err != nil {
		return nil, nil, err
	}

	a, err := NewFromSettings(s, append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		logger.Close()
		return nil, nil, err
	}
	return a, logger, nil
}

// Engine returns the underlying engine.
func (a *Adapter) Engine() *ecies.Engine {
	return a.engine
}

// GenerateSecretKey returns a fresh secret key as 64 lowercase hex characters.
func (a *Adapter) GenerateSecretKey() (string, error) {
	start := time.Now()

	priv, err := a.engine.GenerateKey()
	if err != nil {
		return "", a.finish(OpGenerateSecretKey, start, nil, err)
	}
	defer priv.Destroy()

	secret := EncodeSecretKey(priv)
	return secret, a.finish(OpGenerateSecretKey, start, priv.Public(), nil)
}

// DerivePublicKey returns the compressed public key, in hex, for a hex
// secret key.
func (a *Adapter) DerivePublicKey(secretHex string) (string, error) {
	start := time.Now()

	priv, err := DecodeSecretKey(secretHex)
	if err != nil {
		return "", a.finish(OpDerivePublicKey, start, nil, err)
	}
	defer priv.Destroy()

	pub := priv.Public()
	return EncodePublicKey(pub), a.finish(OpDerivePublicKey, start, pub, nil)
}

// Encrypt seals plaintext to a hex public key and returns the envelope in
// standard base64. plaintext is read, never modified or retained.
func (a *Adapter) Encrypt(publicHex string, plaintext []byte) (string, error) {
	start := time.Now()

	pub, err := DecodePublicKey(publicHex)
	if err != nil {
		return "", a.finish(OpEncrypt, start, nil, err)
	}

	envelope, err := a.engine.Encrypt(pub, plaintext)
	if err != nil {
		return "", a.finish(OpEncrypt, start, pub, err)
	}

	return EncodeCiphertext(envelope), a.finish(OpEncrypt, start, pub, nil)
}

// Decrypt opens a base64 envelope with a hex secret key. No plaintext is
// returned unless the tag verifies. A wrong key and a tampered envelope
// fail identically under both policies. The detailed policy still reports
// text that does not decode and envelopes shorter than the fixed overhead
// as such, since neither depends on the key.
func (a *Adapter) Decrypt(secretHex, ciphertextB64 string) ([]byte, error) {
	start := time.Now()

	priv, err := DecodeSecretKey(secretHex)
	if err != nil {
		return nil, a.finish(OpDecrypt, start, nil, err)
	}
	defer priv.Destroy()

	envelope, err := DecodeCiphertext(ciphertextB64)
	if err != nil {
		return nil, a.finish(OpDecrypt, start, priv.Public(), err)
	}

	plaintext, err := a.engine.Decrypt(priv, envelope)
	if err != nil {
		return nil, a.finish(OpDecrypt, start, priv.Public(), err)
	}

	return plaintext, a.finish(OpDecrypt, start, priv.Public(), nil)
}

// finish records the call and applies the error policy. Only the operation,
// the outcome and the public key fingerprint are logged.
func (a *Adapter) finish(op string, start time.Time, pub *ecies.PublicKey, err error) error {
	elapsed := time.Since(start)
	kind := KindOf(err)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = kind.String()
	}
	a.metrics.Observe(op, outcome, elapsed)

	event := a.logger.Debug().
		Str("op", op).
		Str("outcome", outcome).
		Dur("elapsed", elapsed)
	if pub != nil {
		event = event.Str("key_id", pub.ID())
	}
	event.Msg("boundary call")

	return report(op, err, a.detail)
}
