package kv

import (
	"context"
	"errors"
	"strings"
	"time"

	perr "claimboard/internal/platform/errors"
	"claimboard/internal/platform/store/ready"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the redis client
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Redis implements Client over go-redis
type Redis struct {
	c redis.UniversalClient
}

var _ Client = (*Redis)(nil)

// OpenRedis builds a client and pings it with a short bounded retry
func OpenRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, perr.InvalidArgf("kv: redis addr is empty")
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	c := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dial,
	})

	if err := ready.Wait(ctx, "redis", func(ctx context.Context) error { return c.Ping(ctx).Err() }, ready.Backoff{
		Attempts: 10,
		Start:    100 * time.Millisecond,
		Ceiling:  2 * time.Second,
		Timeout:  dial,
	}); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &Redis{c: c}, nil
}

// NewRedis wraps an existing client, used by tests against miniredis
func NewRedis(c redis.UniversalClient) *Redis { return &Redis{c: c} }

// HIncrBy implements Client
func (r *Redis) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	n, err := r.c.HIncrBy(ctx, key, field, delta).Result()
	if err != nil {
		return 0, r.mapErr(err, "hincrby")
	}
	return n, nil
}

// HGet implements Client
func (r *Redis) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := r.c.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, r.mapErr(err, "hget")
	}
	return v, true, nil
}

// HGetAll implements Client
func (r *Redis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := r.c.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, r.mapErr(err, "hgetall")
	}
	return m, nil
}

// SetNX implements Client with a single SET key value NX EX
func (r *Redis) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := r.c.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, r.mapErr(err, "setnx")
	}
	return ok, nil
}

// Get implements Client
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, r.mapErr(err, "get")
	}
	return v, true, nil
}

// Set implements Client
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.mapErr(r.c.Set(ctx, key, value, ttl).Err(), "set")
}

// Exists implements Client
func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.c.Exists(ctx, key).Result()
	if err != nil {
		return false, r.mapErr(err, "exists")
	}
	return n > 0, nil
}

// Del implements Client
func (r *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := r.c.Del(ctx, keys...).Result()
	if err != nil {
		return 0, r.mapErr(err, "del")
	}
	return n, nil
}

// Ping implements Client
func (r *Redis) Ping(ctx context.Context) error {
	return r.mapErr(r.c.Ping(ctx).Err(), "ping")
}

// Close implements Client
func (r *Redis) Close() error { return r.c.Close() }

func (r *Redis) mapErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if strings.HasPrefix(err.Error(), "WRONGTYPE") {
		return ErrWrongType
	}
	return unavailable(err, op)
}
