package mobile

import (
	"github.com/kochabx/ecies/boundary"
	"github.com/kochabx/ecies/log"
)

// call runs fn against the current adapter. A panic is logged and returned
// as boundary.ErrCallFailed so it never unwinds into the host runtime.
func call[T any](op string, fn func(*boundary.Adapter) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("op", op).Interface("panic", r).Msg("panic found in call")

			var zero T
			result, err = zero, boundary.ErrCallFailed
		}
	}()

	return fn(current.Load())
}
