package beacon

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/driftlock/timevault/internal/chain"
)

// RedisCachingClient fronts a Client with a Redis-backed cache of produced
// round signatures, mirroring the teacher's internal/plugin/cache/redis
// cache-in-front-of-store layering. Beacon round signatures are immutable
// once produced, so entries never expire once written; error responses
// (RoundNotYet included) are never cached.
type RedisCachingClient struct {
	inner  Client
	rdb    *redis.Client
	prefix string
}

// NewRedisCachingClient wraps inner with a Redis cache reached via rdb,
// namespacing keys under prefix (e.g. "timevault:beacon:sig:").
func NewRedisCachingClient(inner Client, rdb *redis.Client, prefix string) *RedisCachingClient {
	return &RedisCachingClient{inner: inner, rdb: rdb, prefix: prefix}
}

func (r *RedisCachingClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	return r.inner.ChainInfo(ctx)
}

func (r *RedisCachingClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	key := r.cacheKey(round)
	if cached, err := r.rdb.Get(ctx, key).Result(); err == nil {
		decoded, decodeErr := base64.StdEncoding.DecodeString(cached)
		if decodeErr == nil {
			return decoded, nil
		}
	}

	sig, err := r.inner.Signature(ctx, round)
	if err != nil {
		return nil, err
	}

	// Round signatures never change once produced; cache without a TTL.
	r.rdb.Set(ctx, key, base64.StdEncoding.EncodeToString(sig), 0)
	return sig, nil
}

func (r *RedisCachingClient) cacheKey(round uint64) string {
	return fmt.Sprintf("%s%d", r.prefix, round)
}

// LoadFromURL connects to a Redis instance at url (e.g.
// "redis://localhost:6379/0"), the same entrypoint shape as the teacher's
// registrycache.LoadFromURL helper.
func LoadFromURL(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
