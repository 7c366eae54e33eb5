package store

import (
	"strings"
	"time"

	"claimboard/internal/platform/config"
)

// Backends selectable with CLAIMBOARD_STORE
const (
	BackendRedis    = "redis"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// ConfigFromEnv assembles a Config from the SERVICE_* env groups
// CLAIMBOARD_STORE picks where scores, markers and members live; clickhouse is enabled by its DSN alone
func ConfigFromEnv(root config.Conf, appName string) Config {
	backend := strings.ToLower(root.MayEnum("CLAIMBOARD_STORE", BackendRedis, BackendRedis, BackendMemory, BackendPostgres))
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	kvCfg := root.Prefix("SERVICE_REDIS_")

	cfg := Config{
		AppName: appName,
		CH: CHConfig{
			URL:        chCfg.MayString("DBURL", ""),
			ClientName: "claimboard",
			ClientTag:  appName,
		},
	}
	cfg.CH.Enabled = cfg.CH.URL != ""

	switch backend {
	case BackendPostgres:
		cfg.PG = PGConfig{
			Enabled:   true,
			URL:       pgCfg.MustString("DBURL"),
			MaxConns:  int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQuery: pgCfg.MayDuration("SLOW_QUERY", 500*time.Millisecond),
			LogSQL:    pgCfg.MayBool("LOG_SQL", false),
		}
	case BackendMemory:
		cfg.KV = KVConfig{Enabled: true, Driver: KVDriverMemory, Janitor: root.MayDuration("CLAIMBOARD_MEMORY_JANITOR", time.Minute)}
	default:
		cfg.KV = KVConfig{
			Enabled:     true,
			Driver:      KVDriverRedis,
			Addr:        kvCfg.MayString("ADDR", "localhost:6379"),
			Password:    kvCfg.MayString("PASSWORD", ""),
			DB:          kvCfg.MayInt("DB", 0),
			DialTimeout: kvCfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		}
	}
	return cfg
}
