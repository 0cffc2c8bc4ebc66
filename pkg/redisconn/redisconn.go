package redisconn

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
	opTimeout     time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:      5,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		dialTimeout:   5 * time.Second,
		opTimeout:     3 * time.Second,
	}
}

// WithPoolSize sets the maximum number of connections in the pool.
// Default: 5.
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithRetry configures connection retry behavior. The interval grows
// linearly with each attempt.
// Default: 3 attempts, 2 second base interval.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithDialTimeout sets the timeout for establishing new connections.
// Default: 5 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithOperationTimeout sets the read and write timeout for commands.
// Default: 3 seconds.
func WithOperationTimeout(d time.Duration) Option {
	return func(o *options) {
		o.opTimeout = d
	}
}

// Open creates a Redis client and verifies connectivity before
// returning it. Supports redis:// and rediss:// (TLS) URL schemes.
//
// Example:
//
//	client, err := redisconn.Open(ctx, cfg.RedisURL,
//	    redisconn.WithRetry(5, time.Second),
//	)
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	redisOpts.PoolSize = o.poolSize
	redisOpts.DialTimeout = o.dialTimeout
	redisOpts.ReadTimeout = o.opTimeout
	redisOpts.WriteTimeout = o.opTimeout

	attempts := max(o.retryAttempts, 1)
	for i := range attempts {
		client := redis.NewClient(redisOpts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}

	return nil, ErrConnectFailed
}

// Healthcheck returns a probe validating Redis connectivity, shaped as
// func(context.Context) error for reuse in readiness checks.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
