// Package ready waits for a freshly opened backend to answer before it is handed out
package ready

import (
	"context"
	"time"

	perr "claimboard/internal/platform/errors"
)

// Backoff bounds Wait's retry loop
type Backoff struct {
	Attempts int
	Start    time.Duration
	Ceiling  time.Duration
	Timeout  time.Duration // per ping
}

// Default gives a starting backend roughly half a minute
var Default = Backoff{Attempts: 20, Start: 150 * time.Millisecond, Ceiling: 2 * time.Second, Timeout: 3 * time.Second}

// Wait calls ping until it succeeds, doubling the pause between attempts up to b.Ceiling
// name labels the error when every attempt fails or ctx ends first
func Wait(ctx context.Context, name string, ping func(context.Context) error, b Backoff) error {
	var last error
	pause := b.Start
	for i := 0; i < b.Attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, b.Timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return perr.Wrapf(last, perr.ErrorCodeUnavailable, "%s: gave up waiting", name)
		case <-time.After(pause):
		}
		pause = min(pause*2, b.Ceiling)
	}
	return perr.Wrapf(last, perr.ErrorCodeUnavailable, "%s: no answer after %d pings", name, b.Attempts)
}
