package boundary

import (
	"bytes"
	goerrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/ecies/config"
	"github.com/kochabx/ecies/core/crypto/ecies"
	"github.com/kochabx/ecies/errors"
	"github.com/kochabx/ecies/log"
	"github.com/kochabx/ecies/metrics"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func newKeyPair(t *testing.T, a *Adapter) (string, string) {
	t.Helper()
	secret, err := a.GenerateSecretKey()
	require.NoError(t, err)
	public, err := a.DerivePublicKey(secret)
	require.NoError(t, err)
	return secret, public
}

func TestAdapterRoundTrip(t *testing.T) {
	a := New(WithLogger(log.Nop()))

	k1, p1 := newKeyPair(t, a)
	k2, _ := newKeyPair(t, a)

	assert.Len(t, k1, SecretKeyHexLen)
	assert.Equal(t, strings.ToLower(k1), k1)
	assert.Len(t, p1, PublicKeyHexLen)

	c, err := a.Encrypt(p1, []byte("hello"))
	require.NoError(t, err)

	m, err := a.Decrypt(k1, c)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), m)

	m, err = a.Decrypt(k2, c)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrCallFailed)
}

func TestAdapterEmptyMessage(t *testing.T) {
	a := New(WithLogger(log.Nop()))
	k, p := newKeyPair(t, a)

	c, err := a.Encrypt(p, nil)
	require.NoError(t, err)

	m, err := a.Decrypt(k, c)
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestAdapterUncompressedPublicKey(t *testing.T) {
	a := New(WithLogger(log.Nop()))

	pub, err := DecodePublicKey(generatorHex)
	require.NoError(t, err)

	c, err := a.Encrypt(generatorUncompHex, []byte("to the generator"))
	require.NoError(t, err)

	m, err := a.Decrypt(oneSecretHex, c)
	require.NoError(t, err)
	assert.Equal(t, "to the generator", string(m))

	derived, err := a.DerivePublicKey(oneSecretHex)
	require.NoError(t, err)
	assert.Equal(t, EncodePublicKey(pub), derived)
}

func TestAdapterCollapsedPolicy(t *testing.T) {
	a := New(WithLogger(log.Nop()))
	k, p := newKeyPair(t, a)

	c, err := a.Encrypt(p, []byte("payload"))
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
	}{
		{"derive bad hex", func() error { _, err := a.DerivePublicKey("zz"); return err }},
		{"derive zero", func() error { _, err := a.DerivePublicKey(strings.Repeat("0", 64)); return err }},
		{"encrypt bad key", func() error { _, err := a.Encrypt("02abcd", []byte("x")); return err }},
		{"decrypt bad base64", func() error { _, err := a.Decrypt(k, "not base64!"); return err }},
		{"decrypt short", func() error { _, err := a.Decrypt(k, "AAAA"); return err }},
		{"decrypt bad secret", func() error { _, err := a.Decrypt(curveOrderHex, c); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, ErrCallFailed, tt.call())
		})
	}
}

func TestAdapterDetailedPolicy(t *testing.T) {
	a := New(WithLogger(log.Nop()), WithErrorDetail(true))
	k, p := newKeyPair(t, a)

	c, err := a.Encrypt(p, []byte("payload"))
	require.NoError(t, err)

	_, err = a.DerivePublicKey("zz")
	assert.Equal(t, errors.CodeDecode, errors.Code(err))

	_, err = a.DerivePublicKey(curveOrderHex)
	assert.Equal(t, errors.CodeInvalidKey, errors.Code(err))
	assert.ErrorIs(t, err, ecies.ErrInvalidKey)

	_, err = a.Encrypt("02"+strings.Repeat("ff", 32), []byte("x"))
	assert.Equal(t, errors.CodeInvalidKey, errors.Code(err))

	_, err = a.Decrypt(k, "AAAA")
	assert.Equal(t, errors.CodeMalformedEnvelope, errors.Code(err))

	_, err = a.Decrypt(k, "AAA")
	assert.Equal(t, errors.CodeDecode, errors.Code(err))

	_, err = a.Decrypt(oneSecretHex, c)
	assert.Equal(t, errors.CodeAuthenticationFailure, errors.Code(err))
	assert.True(t, errors.IsCallerError(errors.Code(err)))
}

func TestAdapterWrongKeyAndTamperIndistinguishable(t *testing.T) {
	tamper := map[string]func([]byte){
		"last byte":        func(b []byte) { b[len(b)-1] ^= 0x01 },
		"nonce":            func(b []byte) { b[ecies.PublicKeyBytes] ^= 0x80 },
		"ephemeral prefix": func(b []byte) { b[0] ^= 0x01 },
		"ephemeral hybrid": func(b []byte) { b[0] = 0x06 },
		"ephemeral x":      func(b []byte) { b[1] ^= 0x01 },
	}

	for _, detail := range []bool{false, true} {
		a := New(WithLogger(log.Nop()), WithErrorDetail(detail))
		k1, p1 := newKeyPair(t, a)
		k2, _ := newKeyPair(t, a)

		c, err := a.Encrypt(p1, []byte("secret message"))
		require.NoError(t, err)

		_, wrongKey := a.Decrypt(k2, c)
		require.Error(t, wrongKey)

		for name, fn := range tamper {
			envelope, err := DecodeCiphertext(c)
			require.NoError(t, err)
			fn(envelope)

			_, err = a.Decrypt(k1, EncodeCiphertext(envelope))
			require.Error(t, err, name)
			assert.Equal(t, wrongKey.Error(), err.Error(), name)
			assert.Equal(t, KindOf(wrongKey), KindOf(err), name)
		}

		if detail {
			assert.Equal(t, errors.CodeAuthenticationFailure, errors.Code(wrongKey))
		}
	}
}

func TestAdapterEntropyFailure(t *testing.T) {
	engine, err := ecies.New(ecies.DefaultConfig(), ecies.WithRandom(failingReader{}))
	require.NoError(t, err)

	a := New(WithEngine(engine), WithErrorDetail(true), WithLogger(log.Nop()))

	secret, err := a.GenerateSecretKey()
	assert.Empty(t, secret)
	assert.Equal(t, errors.CodeEntropyFailure, errors.Code(err))
	assert.False(t, errors.IsCallerError(errors.Code(err)))

	_, err = a.Encrypt(generatorHex, []byte("x"))
	assert.ErrorIs(t, err, ecies.ErrEntropyFailure)
}

func TestAdapterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewBoundary(reg)
	a := New(WithLogger(log.Nop()), WithMetrics(m))

	k, p := newKeyPair(t, a)
	c, err := a.Encrypt(p, []byte("hello"))
	require.NoError(t, err)
	_, err = a.Decrypt(k, c)
	require.NoError(t, err)
	_, err = a.Decrypt(oneSecretHex, c)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(OpGenerateSecretKey, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(OpDerivePublicKey, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(OpEncrypt, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(OpDecrypt, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(OpDecrypt, "authentication_failure")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.Duration))
}

func TestAdapterLogsNoSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriter(&buf, log.WithLevel(zerolog.DebugLevel))
	a := New(WithLogger(logger))

	k, p := newKeyPair(t, a)
	c, err := a.Encrypt(p, []byte("attack at dawn"))
	require.NoError(t, err)
	_, err = a.Decrypt(k, c)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"op":"encrypt"`)
	assert.Contains(t, out, `"key_id"`)
	assert.NotContains(t, out, k)
	assert.NotContains(t, out, "attack at dawn")
	assert.NotContains(t, out, c)
}

func TestNewFromSettings(t *testing.T) {
	s := config.Default()
	s.Engine.Cipher = ecies.CipherXChaCha20Poly1305
	s.Engine.NonceLength = ecies.XChaCha20NonceSize
	s.Boundary.ErrorDetail = true

	a, err := NewFromSettings(s, WithLogger(log.Nop()))
	require.NoError(t, err)
	assert.Equal(t, ecies.CipherXChaCha20Poly1305, a.Engine().Config().Cipher)

	_, err = a.DerivePublicKey("zz")
	assert.Equal(t, errors.CodeDecode, errors.Code(err))

	s.Engine.NonceLength = 7
	_, err = NewFromSettings(s)
	assert.True(t, goerrors.Is(err, ecies.ErrInvalidConfig))
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ecies.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
engine:
  nonce_length: 12
boundary:
  error_detail: true
log:
  output: discard
`), 0o600))

	a, logger, err := NewFromFile(file, WithErrorDetail(false))
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer logger.Close()

	assert.Equal(t, ecies.AESGCMStandardNonceSize, a.Engine().Config().NonceLength)
	_, err = a.DerivePublicKey("zz")
	assert.Same(t, ErrCallFailed, err)

	_, _, err = NewFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, errors.CodeInvalidConfig, errors.Code(err))
}

func TestAdapterConcurrent(t *testing.T) {
	a := New(WithLogger(log.Nop()))
	k, p := newKeyPair(t, a)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := a.Encrypt(p, []byte("concurrent"))
			if !assert.NoError(t, err) {
				return
			}
			m, err := a.Decrypt(k, c)
			assert.NoError(t, err)
			assert.Equal(t, "concurrent", string(m))
		}()
	}
	wg.Wait()
}
