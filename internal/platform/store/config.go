package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
	KV KVConfig
}

// PGConfig configures postgres connectivity and statement logging
type PGConfig struct {
	Enabled   bool
	URL       string
	MaxConns  int32
	LogSQL    bool
	SlowQuery time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// KV drivers
const (
	KVDriverRedis  = "redis"
	KVDriverMemory = "memory"
)

// KVConfig configures the key value seam
// Driver is "redis" or "memory"; memory ignores the connection fields
type KVConfig struct {
	Enabled     bool
	Driver      string
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	Janitor     time.Duration // memory driver expiry sweep
}
