package keystore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a store backed by Redis, for clients that want device state
// to roam between machines. The client should be obtained from
// pkg/redisconn.Open.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures the Redis-backed store.
type RedisOption func(*Redis)

// WithPrefix sets a key prefix for all operations. Keys are stored as
// "{prefix}:{key}", useful for namespacing a shared Redis instance.
// Default: "locallink".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis creates a Redis-backed store.
//
// Example:
//
//	client := redisconn.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	s := keystore.NewRedis(client, keystore.WithPrefix("locallink:dev"))
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: "locallink"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get retrieves a record by key.
// Returns ErrNotFound if the record does not exist.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// Set stores a record with no expiration: session and cart records live
// until explicitly purged, matching browser local storage semantics.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefixedKey(key), value, 0).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Delete removes a record. Deleting a missing record is a no-op.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefixedKey(key)).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Close is a no-op: the Redis client is shared and owned by the caller.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) prefixedKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}
