package kv

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory implements Client in process
// string keys live in go-cache so expiry and Add keep its semantics;
// hashes share the same cache and are mutated under mu
type Memory struct {
	c  *cache.Cache
	mu sync.Mutex
}

var _ Client = (*Memory)(nil)

type hash map[string]string

// NewMemory builds an in process client; janitor sweeps expired keys every cleanup
func NewMemory(cleanup time.Duration) *Memory {
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Memory{c: cache.New(cache.NoExpiration, cleanup)}
}

func expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return cache.NoExpiration
	}
	return ttl
}

// HIncrBy implements Client
func (m *Memory) HIncrBy(_ context.Context, key, field string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := hash{}
	if v, ok := m.c.Get(key); ok {
		existing, isHash := v.(hash)
		if !isHash {
			return 0, ErrWrongType
		}
		h = existing
	}
	var cur int64
	if s, ok := h[field]; ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, ErrWrongType
		}
		cur = n
	}
	cur += delta
	h[field] = strconv.FormatInt(cur, 10)
	m.c.Set(key, h, cache.NoExpiration)
	return cur, nil
}

// HGet implements Client
func (m *Memory) HGet(_ context.Context, key, field string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	h, isHash := v.(hash)
	if !isHash {
		return "", false, ErrWrongType
	}
	s, ok := h[field]
	return s, ok, nil
}

// HGetAll implements Client
func (m *Memory) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]string{}
	v, ok := m.c.Get(key)
	if !ok {
		return out, nil
	}
	h, isHash := v.(hash)
	if !isHash {
		return nil, ErrWrongType
	}
	for k, s := range h {
		out[k] = s
	}
	return out, nil
}

// SetNX implements Client with go-cache Add, which is atomic under the cache lock
func (m *Memory) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	if err := m.c.Add(key, value, expiry(ttl)); err != nil {
		return false, nil
	}
	return true, nil
}

// Get implements Client
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, ErrWrongType
	}
	return s, true, nil
}

// Set implements Client
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.c.Set(key, value, expiry(ttl))
	return nil
}

// Exists implements Client
func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.c.Get(key)
	return ok, nil
}

// Del implements Client
func (m *Memory) Del(_ context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, k := range keys {
		if _, ok := m.c.Get(k); ok {
			m.c.Delete(k)
			n++
		}
	}
	return n, nil
}

// Ping implements Client
func (m *Memory) Ping(context.Context) error { return nil }

// Close drops every key
func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}
