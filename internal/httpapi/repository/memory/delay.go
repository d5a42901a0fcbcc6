// Package memory implements the repository contracts over mutex-guarded
// in-process slices seeded from embedded JSON. It stands in for a real
// backend: every call takes a context and can simulate network latency,
// so callers exercise the same asynchronous paths either way.
package memory

import (
	"context"
	"math/rand"
	"time"
)

// Delay is invoked at the top of every store operation to emulate a
// network round trip. It must return early with ctx.Err() when the
// context is cancelled mid-wait.
type Delay func(ctx context.Context) error

// NoDelay resolves immediately. The default for tests.
func NoDelay(ctx context.Context) error {
	return ctx.Err()
}

// SimulatedLatency sleeps a uniformly random duration in [min, max).
func SimulatedLatency(min, max time.Duration) Delay {
	return func(ctx context.Context) error {
		d := min
		if max > min {
			d += time.Duration(rand.Int63n(int64(max - min)))
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
}
