// Package rediscache implements cache.VerdictCache on top of Redis.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"phishnet/pkg/domain"
	"time"

	"github.com/go-faster/jx"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces verdict keys.
const KeyPrefix = "phishnet:verdict:"

// Options configure the Redis connection.
type Options struct {
	// URL is a redis:// or rediss:// connection string.
	URL string
	// TTL is how long a verdict stays cached.
	TTL time.Duration
	// PoolSize is the maximum number of socket connections; 0 keeps the go-redis default.
	PoolSize int
	// DialTimeout bounds establishing new connections.
	DialTimeout time.Duration
	// ReadTimeout bounds socket reads.
	ReadTimeout time.Duration
}

// Redis stores JSON encoded verdicts under the model fingerprint and a hash of the URL.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, opts Options) (*Redis, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis url: %w", err)
	}
	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.DialTimeout > 0 {
		redisOpts.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("could not ping redis: %w", err)
	}

	return NewWithClient(client, opts.TTL), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Key returns the Redis key used for URL under model.
func Key(model, URL string) string {
	sum := sha256.Sum256([]byte(URL))

	return KeyPrefix + model + ":" + hex.EncodeToString(sum[:])
}

// Get implements cache.VerdictCache.
func (r *Redis) Get(ctx context.Context, model, URL string) (*domain.Verdict, error) {
	b, err := r.client.Get(ctx, Key(model, URL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get cached verdict: %w", err)
	}

	v := &domain.Verdict{}
	if err := v.Decode(jx.DecodeBytes(b)); err != nil {
		return nil, fmt.Errorf("could not decode cached verdict: %w", err)
	}

	return v, nil
}

// Set implements cache.VerdictCache.
func (r *Redis) Set(ctx context.Context, model, URL string, verdict *domain.Verdict) error {
	e := jx.Encoder{}
	verdict.Encode(&e)

	if err := r.client.Set(ctx, Key(model, URL), e.Bytes(), r.ttl).Err(); err != nil {
		return fmt.Errorf("could not cache verdict: %w", err)
	}

	return nil
}

// Close implements cache.VerdictCache.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("could not close redis client: %w", err)
	}

	return nil
}
