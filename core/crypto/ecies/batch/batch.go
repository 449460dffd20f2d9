// Package batch runs independent ECIES operations over a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/kochabx/ecies/core/crypto/ecies"
)

// Pool fans encrypt and decrypt calls, or any indexed work given to Run, out
// to a fixed number of goroutines. Items share nothing but the engine.
type Pool struct {
	engine *ecies.Engine
	pool   *ants.Pool
}

// New creates a Pool of the given size. A size <= 0 uses GOMAXPROCS.
// A nil engine uses ecies.Default().
func New(engine *ecies.Engine, size int) (*Pool, error) {
	if engine == nil {
		engine = ecies.Default()
	}
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}

	pool, err := ants.NewPool(size, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("batch: create pool: %w", err)
	}

	return &Pool{engine: engine, pool: pool}, nil
}

// EncryptAll seals every plaintext to pub. The result has the same order as
// the input. On failure it returns the error of the lowest failing index.
func (p *Pool) EncryptAll(ctx context.Context, pub *ecies.PublicKey, plaintexts [][]byte) ([][]byte, error) {
	out := make([][]byte, len(plaintexts))
	err := p.Run(ctx, len(plaintexts), func(i int) (err error) {
		out[i], err = p.engine.Encrypt(pub, plaintexts[i])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecryptAll opens every envelope with priv, preserving order.
func (p *Pool) DecryptAll(ctx context.Context, priv *ecies.PrivateKey, ciphertexts [][]byte) ([][]byte, error) {
	out := make([][]byte, len(ciphertexts))
	err := p.Run(ctx, len(ciphertexts), func(i int) (err error) {
		out[i], err = p.engine.Decrypt(priv, ciphertexts[i])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Release stops the pool. Calls made after Release fail.
func (p *Pool) Release() {
	p.pool.Release()
}

// Run calls fn(i) for every i in [0, n) on the pool and waits for all of
// them. fn owns slot i of whatever it writes to. Cancellation stops
// scheduling; items already submitted run to completion. The error of the
// lowest failing index is returned.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int) error) error {
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = fn(i)
		})
		if err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("batch: submit: %w", err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("batch item %d: %w", i, err)
		}
	}

	return nil
}
