// Package cache wraps Redis for the match query cache. The cache is an
// optimization, never a dependency: when Redis is unreachable every
// operation degrades to a miss or a no-op and scoring continues
// straight from Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL  = 10 * time.Minute
	pingTimeout = 2 * time.Second
)

// Key prefixes for cached query results. Invalidation deletes by these
// prefixes, so every cached read must live under one of them.
const (
	TopMatchesPrefix = "matches:top:"
	InsightsPrefix   = "matches:insights:"
)

type Redis struct {
	client *redis.Client
	logger *log.Logger

	warned atomic.Bool
}

// NewRedis connects using REDIS_HOST / REDIS_PORT / REDIS_PASSWORD.
// A failed ping yields a disabled instance rather than an error.
func NewRedis(logger *log.Logger) *Redis {
	if logger == nil {
		logger = log.Default()
	}

	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Printf("[Cache] Redis unavailable, running without cache: %v", err)
		_ = client.Close()
		return &Redis{logger: logger}
	}

	return &Redis{client: client, logger: logger}
}

func (r *Redis) disabled() bool {
	return r == nil || r.client == nil
}

// warnOnce logs the first runtime failure; after that the cache goes
// quiet so a Redis outage does not flood the logs.
func (r *Redis) warnOnce(err error) {
	if r == nil {
		return
	}
	if r.warned.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis error, requests bypass cache: %v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.disabled() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON reports (false, nil) on a miss or when the cache is disabled.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.disabled() {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnOnce(err)
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.disabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.disabled() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

// InvalidateMatchQueries drops every cached top-match list and insights
// aggregate. Called after any write that changes stored match scores.
func (r *Redis) InvalidateMatchQueries(ctx context.Context) error {
	if r.disabled() {
		return nil
	}

	var firstErr error
	for _, prefix := range []string{TopMatchesPrefix, InsightsPrefix} {
		if err := r.deleteByPattern(ctx, prefix+"*"); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Redis) deleteByPattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.logger.Printf("[Cache] delete failed key=%s err=%v", key, err)
		}
	}
	return iter.Err()
}
