package module

import "claimboard/internal/platform/config"

// Options controls the ingest surface
type Options struct {
	Token string
	RPS   float64
	Burst int
}

// FromConfig reads with INGEST_ prefix under the api config
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("INGEST_")
	return Options{
		Token: c.MayString("TOKEN", ""),
		RPS:   c.MayFloat64("RPS", 50),
		Burst: c.MayInt("BURST", 100),
	}
}
