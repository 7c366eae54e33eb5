package service

import (
	"context"
	"time"

	"claimboard/internal/platform/logger"
)

// Expirer deletes expired dedup markers in batches
type Expirer interface {
	SweepExpired(ctx context.Context, limit int) (int64, error)
}

// Sweeper reclaims expired markers for stores without native key expiry
type Sweeper struct {
	ex    Expirer
	batch int
	log   *logger.Logger
}

// NewSweeper returns a sweeper deleting at most batch markers per statement
func NewSweeper(ex Expirer, batch int) *Sweeper {
	if ex == nil {
		panic("claims: sweeper requires an expirer")
	}
	if batch <= 0 {
		batch = 1000
	}
	return &Sweeper{ex: ex, batch: batch, log: logger.Named("claims-sweeper")}
}

// Drain sweeps until a batch comes back short and returns the total removed
func (s *Sweeper) Drain(ctx context.Context) (int64, error) {
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := s.ex.SweepExpired(ctx, s.batch)
		total += n
		if err != nil {
			return total, err
		}
		if n < int64(s.batch) {
			return total, nil
		}
	}
}

// Run drains once per tick until ctx is done; sweep errors are logged and retried next tick
func (s *Sweeper) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			n, err := s.Drain(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.log.Error().Err(err).Int64("removed", n).Msg("sweep failed")
				continue
			}
			if n > 0 {
				s.log.Info().Int64("removed", n).Msg("expired markers removed")
			}
		}
	}
}
