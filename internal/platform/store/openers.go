package store

import (
	"context"

	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/logger"
	chx "claimboard/internal/platform/store/ch"
	"claimboard/internal/platform/store/kv"
	"claimboard/internal/platform/store/pg"
	"claimboard/internal/platform/store/ready"

	"github.com/jackc/pgx/v5"
)

// openPG builds the pool and only hands it out once the database answers
func openPG(ctx context.Context, cfg Config, log logger.Logger) (SQL, error) {
	var tracer pgx.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.NewTracer(log, cfg.PG.SlowQuery)
	}
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  "claimboard-" + cfg.AppName,
		Tracer:   tracer,
	})
	if err != nil {
		return nil, err
	}
	if err := ready.Wait(ctx, "pg", pool.Ping, ready.Default); err != nil {
		pool.Close()
		return nil, err
	}
	return pgSQL{pool: pool}, nil
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.CH.ClientName,
		ClientTag:  cfg.CH.ClientTag,
		Role:       cfg.AppName,
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "clickhouse")
	}
	return chSeam{c}, nil
}

// openKV picks the key value driver; redis is pinged before it is handed out
func openKV(ctx context.Context, cfg Config, log logger.Logger) (KV, error) {
	switch cfg.KV.Driver {
	case KVDriverMemory:
		log.Warn().Msg("kv: in process memory store; state is lost on restart and not shared")
		return kv.NewMemory(cfg.KV.Janitor), nil
	case KVDriverRedis, "":
		r, err := kv.OpenRedis(ctx, kv.RedisConfig{
			Addr:        cfg.KV.Addr,
			Password:    cfg.KV.Password,
			DB:          cfg.KV.DB,
			DialTimeout: cfg.KV.DialTimeout,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, perr.InvalidArgf("kv: unknown driver %q", cfg.KV.Driver)
	}
}
