package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"claimboard/internal/platform/config"
	"claimboard/internal/platform/logger"
	"claimboard/internal/platform/store"

	claimsrepo "claimboard/internal/services/claims/repo"
	claimssvc "claimboard/internal/services/claims/service"
)

func main() {
	_ = godotenv.Load()

	var (
		fEvery = flag.Duration("every", time.Minute, "pause between sweeps")
		fBatch = flag.Int("batch", 5000, "max markers deleted per statement")
		fOnce  = flag.Bool("once", false, "sweep until clean then exit")
	)
	flag.Parse()

	root := config.New()
	l := logger.Named("sweeper")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := store.ConfigFromEnv(root, "sweeper")
	if !cfg.PG.Enabled {
		l.Info().Msg("markers expire natively outside postgres, nothing to sweep")
		return
	}
	// the sweeper only needs postgres
	cfg.CH.Enabled, cfg.KV.Enabled = false, false

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	markers := claimsrepo.NewPG().Bind(st.PG)
	sw := claimssvc.NewSweeper(markers, *fBatch)

	if *fOnce {
		n, err := sw.Drain(ctx)
		if err != nil {
			l.Panic().Err(err).Msg("sweep failed")
		}
		l.Info().Int64("removed", n).Msg("sweep complete")
		return
	}

	l.Info().Dur("every", *fEvery).Int("batch", *fBatch).Msg("sweeper started")
	if err := sw.Run(ctx, *fEvery); err != nil && ctx.Err() == nil {
		l.Panic().Err(err).Msg("sweeper stopped")
	}
}
