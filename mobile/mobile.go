// Package mobile exposes the ECIES boundary to managed runtimes through
// gomobile bindings:
//
//	gomobile bind -target=android ./mobile
//
// Results are copied into the host runtime and need no release. Every
// cryptographic failure is reported as the same error.
package mobile

import (
	"sync/atomic"

	"github.com/kochabx/ecies/boundary"
	"github.com/kochabx/ecies/log"
	"github.com/kochabx/ecies/metrics"
)

var current atomic.Pointer[boundary.Adapter]

func init() {
	current.Store(boundary.New(boundary.WithMetrics(callMetrics())))
}

func callMetrics() *metrics.Boundary {
	return metrics.NewBoundary(metrics.Prom.Registry())
}

// Init loads settings from configPath, or defaults and ECIES_* environment
// variables when it is empty, and replaces the engine and the global logger
// used by later calls. Configuration errors are returned as they are.
func Init(configPath string) error {
	_, err := call("init", func(*boundary.Adapter) (bool, error) {
		a, logger, err := boundary.NewFromFile(configPath,
			boundary.WithErrorDetail(false),
			boundary.WithMetrics(callMetrics()),
		)
		if err != nil {
			return false, err
		}

		log.SetGlobalLogger(logger)
		current.Store(a)
		return true, nil
	})
	return err
}

// GenerateSecretKey returns a new secret key as 64 hex characters.
func GenerateSecretKey() (string, error) {
	return call(boundary.OpGenerateSecretKey, func(a *boundary.Adapter) (string, error) {
		return a.GenerateSecretKey()
	})
}

// DerivePublicKeyFrom returns the compressed public key for a hex secret key.
func DerivePublicKeyFrom(secret string) (string, error) {
	return call(boundary.OpDerivePublicKey, func(a *boundary.Adapter) (string, error) {
		return a.DerivePublicKey(secret)
	})
}

// EncryptMessage encrypts the UTF-8 bytes of message to a hex public key
// and returns a base64 envelope.
func EncryptMessage(pub, message string) (string, error) {
	return EncryptBytes(pub, []byte(message))
}

// DecryptMessage decrypts a base64 envelope and returns the plaintext as a
// string.
func DecryptMessage(secret, ciphertext string) (string, error) {
	plaintext, err := DecryptBytes(secret, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptBytes encrypts message to a hex public key.
func EncryptBytes(pub string, message []byte) (string, error) {
	return call(boundary.OpEncrypt, func(a *boundary.Adapter) (string, error) {
		return a.Encrypt(pub, message)
	})
}

// DecryptBytes decrypts a base64 envelope with a hex secret key.
func DecryptBytes(secret, ciphertext string) ([]byte, error) {
	return call(boundary.OpDecrypt, func(a *boundary.Adapter) ([]byte, error) {
		return a.Decrypt(secret, ciphertext)
	})
}
