// Package cache stores generated artifacts. Track layouts are never cached.
//
// [FileCache] backs the CLI and [RedisCache] the HTTP server; [NullCache]
// turns caching off. Keys come from a [Keyer] over content hashes, so an
// edited project or a new viewport always misses and nothing is invalidated
// by hand.
package cache

import (
	"context"
	"time"
)

const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry. A miss is
// ok=false with a nil error. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetOrCompute returns the cached value for key, or calls compute and stores
// its result. A failing backend only costs the recomputation. The boolean
// reports a hit.
func GetOrCompute(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}

// NullCache misses on every Get and drops every Set. It serves --no-cache
// and is the runner's default backend.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)      { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                   { return nil }
func (NullCache) Close() error                                           { return nil }

var _ Cache = NullCache{}
