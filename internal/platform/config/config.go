// Package config reads service settings from prefixed environment variables
// Bad optional values log a warning and keep the default; bad required values panic
package config

import (
	"strconv"
	"strings"
	"time"

	"claimboard/internal/platform/config/raw"
	"claimboard/internal/platform/logger"
)

// Conf is a prefixed view over the environment; modules nest their own prefix
type Conf struct{ env raw.Conf }

func New() Conf { return Conf{env: raw.New()} }

// Prefix nests p, e.g. New().Prefix("CLAIMS_")
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.env.Key(k) }

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v, ok := c.env.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// may parses key with parse, keeping def when unset or unparsable
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

func (c Conf) MayUint64(key string, def uint64) uint64 {
	return may(c, key, def, "uint64", func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) })
}

func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration takes Go duration syntax, e.g. 250ms or 24h
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits on commas and drops blank items; all blank means def
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the allowed spelling of the value, matched case insensitively
// A value outside allowed panics since it is always a deployment mistake
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
