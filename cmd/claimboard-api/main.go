// @title         Claimboard API
// @version       0.1.0
// @description   Claim event ingest, leaderboard and operator endpoints
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"claimboard/internal/platform/config"
	"claimboard/internal/platform/logger"
	phttp "claimboard/internal/platform/net/http"
	"claimboard/internal/platform/store"

	"claimboard/internal/services/api"
	claimsmod "claimboard/internal/services/claims/module"
	claimsrepo "claimboard/internal/services/claims/repo"
	lbrepo "claimboard/internal/services/leaderboard/repo"
	ledgerrepo "claimboard/internal/services/ledger/repo"
	memrepo "claimboard/internal/services/members/repo"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if apiCfg.MayBool("AUTOMIGRATE", true) {
		migrate(ctx, st, l)
	}

	// reads CORE_API_PORT, CORE_API_READ_HEADER_TIMEOUT, CORE_API_DRAIN
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Claims:         claimsmod.FromConfig(root),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// migrate creates tables for whichever sql backends are enabled
func migrate(ctx context.Context, st *store.Store, l *logger.Logger) {
	if st.PG != nil {
		for name, fn := range map[string]func(context.Context, store.RowQuerier) error{
			"claims":      claimsrepo.Migrate,
			"leaderboard": lbrepo.Migrate,
			"members":     memrepo.Migrate,
		} {
			if err := fn(ctx, st.PG); err != nil {
				l.Panic().Err(err).Str("schema", name).Msg("migrate failed")
			}
		}
	}
	if st.CH != nil {
		if err := ledgerrepo.Migrate(ctx, st.CH); err != nil {
			l.Panic().Err(err).Str("schema", "ledger").Msg("migrate failed")
		}
	}
}
