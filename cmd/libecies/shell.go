package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/kochabx/ecies/boundary"
	"github.com/kochabx/ecies/log"
	"github.com/kochabx/ecies/metrics"
)

var (
	ledger  = boundary.NewLedger(cAllocator{})
	adapter atomic.Pointer[boundary.Adapter]

	registerOnce sync.Once
	callMetrics  *metrics.Boundary
)

func init() {
	adapter.Store(boundary.New(boundary.WithMetrics(boundaryMetrics())))
}

func boundaryMetrics() *metrics.Boundary {
	registerOnce.Do(func() {
		reg := metrics.Prom.Registry()
		callMetrics = metrics.NewBoundary(reg)
		if err := metrics.RegisterOutstanding(reg, func() float64 {
			return float64(ledger.Outstanding())
		}); err != nil {
			log.Warn().Err(err).Msg("outstanding buffer gauge not registered")
		}
	})
	return callMetrics
}

// initialize replaces the adapter with one built from the settings file.
// The host gets failures as NULL, so the policy is always collapsed.
func initialize(path string) (err error) {
	defer recoverCall("init", &err)

	a, logger, err := boundary.NewFromFile(path,
		boundary.WithErrorDetail(false),
		boundary.WithMetrics(boundaryMetrics()),
	)
	if err != nil {
		log.Error().Err(err).Msg("init adapter")
		return err
	}

	log.SetGlobalLogger(logger)
	adapter.Store(a)
	return nil
}

func generateSecretKey() (p unsafe.Pointer) {
	defer recoverCall(boundary.OpGenerateSecretKey, nil)

	secret, err := adapter.Load().GenerateSecretKey()
	if err != nil {
		return nil
	}
	return hand(boundary.OpGenerateSecretKey, []byte(secret))
}

func publicKeyFrom(secretHex string) (p unsafe.Pointer) {
	defer recoverCall(boundary.OpDerivePublicKey, nil)

	public, err := adapter.Load().DerivePublicKey(secretHex)
	if err != nil {
		return nil
	}
	return handString(boundary.OpDerivePublicKey, public)
}

func encrypt(publicHex string, message []byte) (p unsafe.Pointer) {
	defer recoverCall(boundary.OpEncrypt, nil)

	envelope, err := adapter.Load().Encrypt(publicHex, message)
	if err != nil {
		return nil
	}
	return handString(boundary.OpEncrypt, envelope)
}

func decrypt(secretHex, ciphertextB64 string) (p unsafe.Pointer, n int) {
	defer recoverCall(boundary.OpDecrypt, nil)

	plaintext, err := adapter.Load().Decrypt(secretHex, ciphertextB64)
	if err != nil {
		return nil, 0
	}
	return hand(boundary.OpDecrypt, plaintext), len(plaintext)
}

func release(p unsafe.Pointer) {
	defer recoverCall("free", nil)

	if err := ledger.Release(p); err != nil {
		log.Warn().Err(err).Msg("release refused")
	}
}

func outstanding() int {
	return ledger.Outstanding()
}

// hand copies data into a caller-owned buffer. data is wiped afterwards.
func hand(op string, data []byte) unsafe.Pointer {
	defer clear(data)

	p, err := ledger.Hand(data)
	if err != nil {
		log.Error().Str("op", op).Err(err).Msg("hand result")
		return nil
	}
	return p
}

func handString(op string, s string) unsafe.Pointer {
	p, err := ledger.HandString(s)
	if err != nil {
		log.Error().Str("op", op).Err(err).Msg("hand result")
		return nil
	}
	return p
}

// recoverCall turns a panic into a failed call. When errp is set it receives
// boundary.ErrCallFailed.
func recoverCall(op string, errp *error) {
	if r := recover(); r != nil {
		log.Error().Str("op", op).Interface("panic", r).Msg("recovered panic")
		if errp != nil {
			*errp = boundary.ErrCallFailed
		}
	}
}
