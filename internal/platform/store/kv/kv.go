// Package kv provides key value clients for counters and expiring markers
// Redis is the shared backend; Memory is a single process stand in with the same semantics
package kv

import (
	"context"
	"time"

	perr "claimboard/internal/platform/errors"
)

// Client is the surface both backends implement
type Client interface {
	// HIncrBy atomically adds delta to field in hash key and returns the new value
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	// HGet reads one hash field; ok is false when key or field is absent
	HGet(ctx context.Context, key, field string) (val string, ok bool, err error)
	// HGetAll reads a whole hash; a missing key is an empty map
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// SetNX stores value only when key is absent, with expiry ttl
	// it reports whether this call created the key
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Get reads a string key
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	// Set stores a string key; ttl <= 0 means no expiry
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Exists reports whether key is present
	Exists(ctx context.Context, key string) (bool, error)
	// Del removes keys and returns how many existed
	Del(ctx context.Context, keys ...string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrWrongType is returned when a string op hits a hash or the reverse
var ErrWrongType = perr.New(perr.ErrorCodeConflict, "kv: operation against a key holding the wrong kind of value")

func unavailable(err error, op string) error {
	if err == nil {
		return nil
	}
	return perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv %s failed", op)
}
