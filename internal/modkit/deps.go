package modkit

import (
	"claimboard/internal/platform/config"
	"claimboard/internal/platform/logger"
	"claimboard/internal/platform/store"
)

// Deps are the shared seams handed to every module
// any store may be nil; modules pick the first backend they can use
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  store.SQL
	CH  store.Clickhouse
	KV  store.KV
}
